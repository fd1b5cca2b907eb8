package seeder

import _ "embed"

//go:embed fixtures/default.yaml
var defaultFixture []byte

// DefaultFixture is the sample data set shipped with the binary.
func DefaultFixture() (Fixture, error) {
	return ParseFixture(defaultFixture)
}

// Defaults returns the seeders for f in dependency order: skills need their
// employees to exist.
func Defaults(f Fixture) []Seeder {
	return []Seeder{
		EmployeesSeeder{Items: f.Employees},
		SkillsSeeder{Items: f.Skills},
		ProjectsSeeder{Items: f.Projects},
		CollaborationsSeeder{Items: f.Collaborations},
	}
}
