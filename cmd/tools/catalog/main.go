// cmd/tools/catalog/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mergington-activities/internal/activities"
	"mergington-activities/pkg/registry"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	exportPath := exportCmd.String("path", "configs/activities.json", "Path to write the catalog to")
	exportVersion := exportCmd.String("version", "1.0.0", "Catalog version")

	addPath := addCmd.String("path", "configs/activities.json", "Path to catalog file")
	name := addCmd.String("name", "", "Activity name (e.g., Robotics Club)")
	description := addCmd.String("description", "", "Description")
	schedule := addCmd.String("schedule", "", "Schedule (e.g., Saturdays, 10:00 AM - 12:00 PM)")
	maxParticipants := addCmd.Int("max", 0, "Maximum participants")
	participants := addCmd.String("participants", "", "Comma separated initial participant emails")

	updatePath := updateCmd.String("path", "configs/activities.json", "Path to catalog file")
	updateName := updateCmd.String("name", "", "Activity name to update")
	field := updateCmd.String("field", "", "Field to update (description, schedule, max_participants)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", "configs/activities.json", "Path to catalog file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		err = exportDefault(*exportPath, *exportVersion)
		if err == nil {
			fmt.Printf("Exported built-in catalog to %s\n", *exportPath)
		}

	case "add":
		addCmd.Parse(os.Args[2:])
		if *name == "" || *description == "" || *schedule == "" {
			fmt.Println("Error: name, description and schedule are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		err = addActivity(*addPath, registry.Activity{
			Name:            *name,
			Description:     *description,
			Schedule:        *schedule,
			MaxParticipants: *maxParticipants,
			Participants:    splitEmails(*participants),
		})
		if err == nil {
			fmt.Printf("Added activity: %s\n", *name)
		}

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *updateName == "" || *field == "" {
			fmt.Println("Error: name and field are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err = updateActivity(*updatePath, *updateName, *field, *value)
		if err == nil {
			fmt.Printf("Updated activity %s, field %s to %s\n", *updateName, *field, *value)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		var count int
		count, err = validateCatalog(*validatePath)
		if err == nil {
			fmt.Printf("Catalog validation passed. Found %d activities.\n", count)
		}

	default:
		help()
		return
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func exportDefault(path, version string) error {
	cat := activities.CatalogFromSeed(activities.DefaultSeed(), version, time.Now().UTC().Format(time.RFC3339))
	return save(path, cat)
}

func addActivity(path string, activity registry.Activity) error {
	cat, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		cat = &registry.ActivityRegistry{Version: "1.0.0", Activities: []registry.Activity{}}
	}

	for _, existing := range cat.Activities {
		if existing.Name == activity.Name {
			return fmt.Errorf("activity %q already exists", activity.Name)
		}
	}

	cat.Activities = append(cat.Activities, activity)
	cat.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return save(path, cat)
}

func updateActivity(path, name, field, value string) error {
	cat, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	var target *registry.Activity
	for i := range cat.Activities {
		if cat.Activities[i].Name == name {
			target = &cat.Activities[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("activity %q not found", name)
	}

	switch field {
	case "description":
		target.Description = value
	case "schedule":
		target.Schedule = value
	case "max_participants":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid max_participants value: %q", value)
		}
		target.MaxParticipants = n
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	cat.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	return save(path, cat)
}

func validateCatalog(path string) (int, error) {
	cat, err := registry.LoadRegistry(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}
	if _, err := activities.SeedFromCatalog(cat); err != nil {
		return 0, err
	}
	return len(cat.Activities), nil
}

func save(path string, cat *registry.ActivityRegistry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := registry.SaveRegistry(path, cat); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

func splitEmails(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func help() {
	fmt.Println(`
Usage: catalog <command> [flags]

Commands:
  export    Write the built-in activity catalog to a file
  add       Add a new activity to a catalog file
  update    Update a field of an existing activity
  validate  Validate a catalog file
  help      Show this help message

Examples:
  catalog export -path configs/activities.json
  catalog add -name "Robotics Club" -description "Build and program robots" -schedule "Saturdays, 10:00 AM - 12:00 PM" -max 12
  catalog update -name "Chess Club" -field max_participants -value 16
  catalog validate -path configs/activities.json

Use 'catalog <command> -h' for more information about a command.`)
}
