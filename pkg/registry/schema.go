// pkg/registry/schema.go
package registry

// ActivityRegistry is the on-disk seed catalog for the activities service.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// catalogSchema is the JSON schema every catalog file must satisfy.
var catalogSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"version", "activities"},
	"properties": map[string]interface{}{
		"version":     map[string]interface{}{"type": "string", "minLength": 1},
		"lastUpdated": map[string]interface{}{"type": "string"},
		"activities": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []interface{}{"name", "description", "schedule", "max_participants", "participants"},
				"properties": map[string]interface{}{
					"name":             map[string]interface{}{"type": "string", "minLength": 1},
					"description":      map[string]interface{}{"type": "string"},
					"schedule":         map[string]interface{}{"type": "string"},
					"max_participants": map[string]interface{}{"type": "integer", "minimum": 0},
					"participants": map[string]interface{}{
						"type":        "array",
						"uniqueItems": true,
						"items":       map[string]interface{}{"type": "string", "minLength": 1},
					},
				},
			},
		},
	},
}
