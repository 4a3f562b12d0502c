package domain

import (
	"strings"
	"time"
)

// ProjectStatusActive is the status every new project starts with.
const ProjectStatusActive = "Active"

// Project groups a manager's tasks. Tasks refer to projects by name through
// their metadata rather than by ID.
type Project struct {
	ID          int64     `json:"projectId"`
	Name        string    `json:"projectName"`
	Description string    `json:"description"`
	ManagerID   string    `json:"managerId"`
	ManagerName string    `json:"managerName"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewProject builds an active project for manager.
func NewProject(manager *Manager, name, description string, now time.Time) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("projectName", "cannot be empty", ErrValidation)
	}
	if manager == nil {
		return nil, NewValidationError("managerId", "cannot be empty", ErrValidation)
	}
	return &Project{
		Name:        name,
		Description: description,
		ManagerID:   manager.ID,
		ManagerName: manager.Name,
		Status:      ProjectStatusActive,
		CreatedAt:   now,
	}, nil
}

// SameName reports whether two project names collide, ignoring case.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Clone returns a copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
