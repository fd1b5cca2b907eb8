package seeder

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Fixture struct {
	Employees      []EmployeeFixture      `yaml:"employees"`
	Skills         []SkillFixture         `yaml:"skills"`
	Projects       []ProjectFixture       `yaml:"projects"`
	Collaborations []CollaborationFixture `yaml:"collaborations"`
}

type EmployeeFixture struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Age          int      `yaml:"age"`
	Skills       []string `yaml:"skills"`
	Available    *bool    `yaml:"available"`
	PastProjects []string `yaml:"past_projects"`
}

type SkillFixture struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	Level      string `yaml:"level"`
	EmployeeID string `yaml:"employee"`
}

type ProjectFixture struct {
	ID             string   `yaml:"id"`
	RequiredSkills []string `yaml:"required_skills"`
	TeamSize       int      `yaml:"team_size"`
	Description    string   `yaml:"description"`
	Status         string   `yaml:"status"`
}

type CollaborationFixture struct {
	Pair          [2]string `yaml:"pair"`
	Count         int       `yaml:"count"`
	SuccessRate   float64   `yaml:"success_rate"`
	Compatibility float64   `yaml:"compatibility"`
}

// ParseFixture decodes a YAML fixture. Unknown keys are rejected.
func ParseFixture(data []byte) (Fixture, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Fixture{}, errors.New("seeder: fixture is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return Fixture{}, fmt.Errorf("seeder: decode fixture: %w", err)
	}
	return f, nil
}

func LoadFixtureFile(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("seeder: read %s: %w", path, err)
	}
	f, err := ParseFixture(data)
	if err != nil {
		return Fixture{}, fmt.Errorf("seeder: %s: %w", path, err)
	}
	return f, nil
}
