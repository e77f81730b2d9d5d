// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// LoadRegistry reads and schema-validates a catalog file.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates raw catalog JSON against the schema and decodes it.
func Parse(data []byte) (*ActivityRegistry, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := reg.Check(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate checks raw JSON against the catalog schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Check enforces the rules the schema cannot express: activity names are unique.
// It also re-checks roster uniqueness for catalogs built in code.
func (r *ActivityRegistry) Check() error {
	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if a.Name == "" {
			return fmt.Errorf("activity with empty name")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate activity %q", a.Name)
		}
		seen[a.Name] = true

		if a.MaxParticipants < 0 {
			return fmt.Errorf("activity %q: max_participants must not be negative", a.Name)
		}
		emails := make(map[string]bool, len(a.Participants))
		for _, p := range a.Participants {
			if emails[p] {
				return fmt.Errorf("activity %q: duplicate participant %q", a.Name, p)
			}
			emails[p] = true
		}
	}
	return nil
}

// SaveRegistry writes the catalog as indented JSON.
func SaveRegistry(path string, reg *ActivityRegistry) error {
	if err := reg.Check(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
