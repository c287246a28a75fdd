package employees_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovatech/hr-portal/internal/employees"
	"github.com/innovatech/hr-portal/internal/shared"
	_ "github.com/innovatech/hr-portal/testing"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, employees.Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, employees.NewRepository(mock)
}

func employeeRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "email", "department", "title", "manager", "active"})
}

func TestListNoFilters(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM employees WHERE 1=1 ORDER BY id`).
		WillReturnRows(employeeRows().
			AddRow(int64(1), "Ada", "ada@corp.test", "Engineering", "Engineer", "Grace", true).
			AddRow(int64(2), "Bob", "bob@corp.test", "Sales", "", "", false))

	list, err := repo.List(context.Background(), employees.Filters{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ada", list[0].Name)
	assert.False(t, list[1].Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListWithFilters(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	active := true
	mock.ExpectQuery(`AND department = \$1 AND active = \$2 ORDER BY id`).
		WithArgs("Engineering", true).
		WillReturnRows(employeeRows().
			AddRow(int64(1), "Ada", "ada@corp.test", "Engineering", "Engineer", "", true))

	list, err := repo.List(context.Background(), employees.Filters{Department: "Engineering", Active: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartments(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`SELECT DISTINCT department FROM employees`).
		WillReturnRows(pgxmock.NewRows([]string{"department"}).AddRow("Engineering").AddRow("Sales"))

	departments, err := repo.Departments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering", "Sales"}, departments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCounts(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER`).
		WillReturnRows(pgxmock.NewRows([]string{"total", "active", "inactive"}).AddRow(5, 3, 2))

	counts, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, employees.Counts{Total: 5, Active: 3, Inactive: 2}, counts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`FROM employees WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(employeeRows())

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsID(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs("Ada", "ada@corp.test", "Engineering", "Engineer", "Grace", true).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	created, err := repo.Create(context.Background(), employees.Employee{
		Name:       "Ada",
		Email:      "ada@corp.test",
		Department: "Engineering",
		Title:      "Engineer",
		Manager:    "Grace",
		Active:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO employees`).
		WithArgs("Ada", "ada@corp.test", "Engineering", "", "", true).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})

	_, err := repo.Create(context.Background(), employees.Employee{
		Name:       "Ada",
		Email:      "ada@corp.test",
		Department: "Engineering",
		Active:     true,
	})
	assert.ErrorIs(t, err, shared.ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotFound(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectExec(`UPDATE employees SET`).
		WithArgs("Ada", "ada@corp.test", "Engineering", "", "", true, int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), 42, employees.Employee{
		Name:       "Ada",
		Email:      "ada@corp.test",
		Department: "Engineering",
		Active:     true,
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDuplicateEmail(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectExec(`UPDATE employees SET`).
		WithArgs("Ada", "taken@corp.test", "Engineering", "", "", true, int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})

	err := repo.Update(context.Background(), 1, employees.Employee{
		Name:       "Ada",
		Email:      "taken@corp.test",
		Department: "Engineering",
		Active:     true,
	})
	assert.ErrorIs(t, err, shared.ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM employees WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNotFound(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM employees WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListQueryError(t *testing.T) {
	t.Parallel()

	mock, repo := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM employees`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background(), employees.Filters{})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
