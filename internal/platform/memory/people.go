package memory

import (
	"context"
	"fmt"

	"github.com/pmsdemo/pms-api/internal/domain"
	"github.com/pmsdemo/pms-api/internal/store"
)

// EmployeeStore implements store.EmployeeStore.
type EmployeeStore struct {
	db *DB
}

var _ store.EmployeeStore = (*EmployeeStore)(nil)

// List implements store.EmployeeStore.
func (s *EmployeeStore) List(ctx context.Context) ([]*domain.Employee, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Employee, 0, len(s.db.employees))
	for _, e := range s.db.employees {
		out = append(out, e.Clone())
	}
	return out, nil
}

// GetByID implements store.EmployeeStore.
func (s *EmployeeStore) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.db.employees[i].Clone(), nil
	}
	return nil, store.ErrEmployeeNotFound
}

// Create implements store.EmployeeStore.
func (s *EmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	if err := employee.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.indexLocked(employee.ID) >= 0 {
		return store.ErrEmployeeExists
	}
	s.db.employees = append(s.db.employees, employee.Clone())
	return s.db.commitLocked(ctx, "employee", "create")
}

// Update implements store.EmployeeStore.
func (s *EmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	if err := employee.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i := s.indexLocked(employee.ID)
	if i < 0 {
		return store.ErrEmployeeNotFound
	}
	s.db.employees[i] = employee.Clone()
	return s.db.commitLocked(ctx, "employee", "update")
}

func (s *EmployeeStore) indexLocked(id string) int {
	for i, e := range s.db.employees {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// ManagerStore implements store.ManagerStore.
type ManagerStore struct {
	db *DB
}

var _ store.ManagerStore = (*ManagerStore)(nil)

// List implements store.ManagerStore.
func (s *ManagerStore) List(ctx context.Context) ([]*domain.Manager, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]*domain.Manager, 0, len(s.db.managers))
	for _, m := range s.db.managers {
		out = append(out, m.Clone())
	}
	return out, nil
}

// GetByID implements store.ManagerStore.
func (s *ManagerStore) GetByID(ctx context.Context, id string) (*domain.Manager, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, m := range s.db.managers {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	return nil, store.ErrManagerNotFound
}

// Create implements store.ManagerStore.
func (s *ManagerStore) Create(ctx context.Context, manager *domain.Manager) error {
	if err := manager.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, m := range s.db.managers {
		if m.ID == manager.ID {
			return store.ErrManagerExists
		}
	}
	s.db.managers = append(s.db.managers, manager.Clone())
	return s.db.commitLocked(ctx, "manager", "create")
}
