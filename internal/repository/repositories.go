package repository

import "go.uber.org/zap"

type Repositories struct {
	Store          RecordStore
	Employees      EmployeeRepository
	Skills         SkillRepository
	Projects       ProjectRepository
	Collaborations CollaborationRepository
	Assignments    AssignmentRepository
}

func NewRepositories(store RecordStore, log *zap.Logger) Repositories {
	return Repositories{
		Store:          store,
		Employees:      NewRecordEmployeeRepository(store, log),
		Skills:         NewRecordSkillRepository(store, log),
		Projects:       NewRecordProjectRepository(store, log),
		Collaborations: NewRecordCollaborationRepository(store, log),
		Assignments:    NewRecordAssignmentRepository(store, log),
	}
}
