package activities

import (
	"fmt"

	"mergington-activities/internal/models"
	"mergington-activities/pkg/registry"
)

// DefaultSeed returns the built-in Mergington High School catalog. Every call
// returns fresh slices.
func DefaultSeed() map[string]models.Activity {
	return map[string]models.Activity{
		"Chess Club": {
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		"Programming Class": {
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		"Gym Class": {
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		"Basketball Team": {
			Description:     "Competitive basketball team and practice",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"alex@mergington.edu"},
		},
		"Tennis Club": {
			Description:     "Learn tennis skills and participate in matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:00 PM",
			MaxParticipants: 8,
			Participants:    []string{"jordan@mergington.edu", "casey@mergington.edu"},
		},
		"Drama Club": {
			Description:     "Perform in theatrical productions and improve acting skills",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 25,
			Participants:    []string{"avery@mergington.edu"},
		},
		"Art Studio": {
			Description:     "Explore painting, drawing, and various art techniques",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"morgan@mergington.edu", "riley@mergington.edu"},
		},
		"Debate Team": {
			Description:     "Develop argumentation and public speaking skills",
			Schedule:        "Mondays, 4:00 PM - 5:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"taylor@mergington.edu"},
		},
		"Science Club": {
			Description:     "Explore scientific experiments and discoveries",
			Schedule:        "Fridays, 4:00 PM - 5:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"jordan@mergington.edu", "alex@mergington.edu"},
		},
	}
}

// SeedFromCatalog converts a validated catalog file into registry seed data.
func SeedFromCatalog(cat *registry.ActivityRegistry) (map[string]models.Activity, error) {
	if err := cat.Check(); err != nil {
		return nil, err
	}
	seed := make(map[string]models.Activity, len(cat.Activities))
	for _, a := range cat.Activities {
		if _, dup := seed[a.Name]; dup {
			return nil, fmt.Errorf("duplicate activity %q", a.Name)
		}
		participants := make([]string, len(a.Participants))
		copy(participants, a.Participants)
		seed[a.Name] = models.Activity{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		}
	}
	return seed, nil
}

// CatalogFromSeed is the inverse of SeedFromCatalog, with activities sorted by name.
func CatalogFromSeed(seed map[string]models.Activity, version, lastUpdated string) *registry.ActivityRegistry {
	cat := &registry.ActivityRegistry{
		Version:     version,
		LastUpdated: lastUpdated,
		Activities:  make([]registry.Activity, 0, len(seed)),
	}
	for _, name := range sortedNames(seed) {
		a := seed[name].Clone()
		cat.Activities = append(cat.Activities, registry.Activity{
			Name:            name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    a.Participants,
		})
	}
	return cat
}

// LoadSeed returns the catalog at path, or the built-in seed when path is empty.
func LoadSeed(path string) (map[string]models.Activity, error) {
	if path == "" {
		return DefaultSeed(), nil
	}
	cat, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load seed catalog %s: %w", path, err)
	}
	seed, err := SeedFromCatalog(cat)
	if err != nil {
		return nil, fmt.Errorf("seed catalog %s: %w", path, err)
	}
	return seed, nil
}
