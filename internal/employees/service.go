package employees

import (
	"context"
	"errors"
	"strings"
)

// Service wraps the employee business rules over the repository.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns employees matching the filters.
func (s *Service) List(ctx context.Context, filters Filters) ([]Employee, error) {
	return s.repo.List(ctx, filters)
}

// Departments returns the distinct sorted department names.
func (s *Service) Departments(ctx context.Context) ([]string, error) {
	return s.repo.Departments(ctx)
}

// Counts returns the dashboard totals.
func (s *Service) Counts(ctx context.Context) (Counts, error) {
	return s.repo.Counts(ctx)
}

// Get returns a single employee.
func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	if id <= 0 {
		return Employee{}, errors.New("invalid employee ID")
	}
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new employee.
func (s *Service) Create(ctx context.Context, emp Employee) (Employee, error) {
	emp = normalize(emp)
	if err := validate(emp); err != nil {
		return Employee{}, err
	}
	return s.repo.Create(ctx, emp)
}

// Update validates and overwrites all mutable fields of an existing employee.
func (s *Service) Update(ctx context.Context, id int64, emp Employee) error {
	if id <= 0 {
		return errors.New("invalid employee ID")
	}
	emp = normalize(emp)
	if err := validate(emp); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, emp)
}

// Delete removes an employee record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("invalid employee ID")
	}
	return s.repo.Delete(ctx, id)
}

func normalize(e Employee) Employee {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Department = strings.TrimSpace(e.Department)
	e.Title = strings.TrimSpace(e.Title)
	e.Manager = strings.TrimSpace(e.Manager)
	return e
}
