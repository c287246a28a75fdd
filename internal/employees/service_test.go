package employees_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovatech/hr-portal/internal/employees"
	"github.com/innovatech/hr-portal/internal/shared"
)

type stubRepo struct {
	employees map[int64]employees.Employee
	nextID    int64
	created   *employees.Employee
	updated   *employees.Employee
}

func newStubRepo() *stubRepo {
	return &stubRepo{employees: make(map[int64]employees.Employee), nextID: 1}
}

func (s *stubRepo) List(ctx context.Context, filters employees.Filters) ([]employees.Employee, error) {
	var result []employees.Employee
	for _, e := range s.employees {
		if filters.Department != "" && e.Department != filters.Department {
			continue
		}
		if filters.Active != nil && e.Active != *filters.Active {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (s *stubRepo) Departments(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var departments []string
	for _, e := range s.employees {
		if _, ok := seen[e.Department]; !ok {
			seen[e.Department] = struct{}{}
			departments = append(departments, e.Department)
		}
	}
	return departments, nil
}

func (s *stubRepo) Counts(ctx context.Context) (employees.Counts, error) {
	var c employees.Counts
	for _, e := range s.employees {
		c.Total++
		if e.Active {
			c.Active++
		} else {
			c.Inactive++
		}
	}
	return c, nil
}

func (s *stubRepo) Get(ctx context.Context, id int64) (employees.Employee, error) {
	e, ok := s.employees[id]
	if !ok {
		return employees.Employee{}, shared.ErrNotFound
	}
	return e, nil
}

func (s *stubRepo) Create(ctx context.Context, emp employees.Employee) (employees.Employee, error) {
	for _, existing := range s.employees {
		if existing.Email == emp.Email {
			return employees.Employee{}, shared.ErrDuplicateEmail
		}
	}
	emp.ID = s.nextID
	s.nextID++
	s.employees[emp.ID] = emp
	s.created = &emp
	return emp, nil
}

func (s *stubRepo) Update(ctx context.Context, id int64, emp employees.Employee) error {
	if _, ok := s.employees[id]; !ok {
		return shared.ErrNotFound
	}
	emp.ID = id
	s.employees[id] = emp
	s.updated = &emp
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.employees[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.employees, id)
	return nil
}

func TestCreateTrimsFields(t *testing.T) {
	repo := newStubRepo()
	service := employees.NewService(repo)

	created, err := service.Create(context.Background(), employees.Employee{
		Name:       "  Ada Lovelace ",
		Email:      " ada@corp.test ",
		Department: " Engineering",
		Title:      " Engineer ",
		Manager:    " Grace ",
		Active:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.Equal(t, "ada@corp.test", created.Email)
	assert.Equal(t, "Engineering", created.Department)
	assert.Equal(t, "Engineer", created.Title)
	assert.Equal(t, "Grace", created.Manager)
}

func TestCreateRequiresFields(t *testing.T) {
	repo := newStubRepo()
	service := employees.NewService(repo)

	_, err := service.Create(context.Background(), employees.Employee{
		Name:  "   ",
		Email: "ada@corp.test",
	})
	assert.ErrorIs(t, err, employees.ErrRequiredFields)
	assert.Nil(t, repo.created)
}

func TestCreateDuplicateEmailPassthrough(t *testing.T) {
	repo := newStubRepo()
	service := employees.NewService(repo)

	_, err := service.Create(context.Background(), employees.Employee{
		Name: "Ada", Email: "ada@corp.test", Department: "Engineering", Active: true,
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), employees.Employee{
		Name: "Other", Email: "ada@corp.test", Department: "Sales", Active: true,
	})
	assert.ErrorIs(t, err, shared.ErrDuplicateEmail)
}

func TestUpdateValidates(t *testing.T) {
	repo := newStubRepo()
	service := employees.NewService(repo)

	created, err := service.Create(context.Background(), employees.Employee{
		Name: "Ada", Email: "ada@corp.test", Department: "Engineering", Active: true,
	})
	require.NoError(t, err)

	err = service.Update(context.Background(), created.ID, employees.Employee{
		Name: "Ada", Email: "", Department: "Engineering",
	})
	assert.ErrorIs(t, err, employees.ErrRequiredFields)

	err = service.Update(context.Background(), created.ID, employees.Employee{
		Name: " Ada L ", Email: "ada@corp.test", Department: "Engineering", Active: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada L", repo.updated.Name)
	assert.False(t, repo.updated.Active)
}

func TestUpdateMissingEmployee(t *testing.T) {
	service := employees.NewService(newStubRepo())

	err := service.Update(context.Background(), 99, employees.Employee{
		Name: "Ada", Email: "ada@corp.test", Department: "Engineering",
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGetRejectsNonPositiveID(t *testing.T) {
	service := employees.NewService(newStubRepo())

	_, err := service.Get(context.Background(), 0)
	require.Error(t, err)
	_, err = service.Get(context.Background(), -3)
	require.Error(t, err)
}

func TestDeleteMissingEmployee(t *testing.T) {
	service := employees.NewService(newStubRepo())

	err := service.Delete(context.Background(), 12)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
