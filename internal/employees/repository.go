package employees

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/innovatech/hr-portal/internal/shared"
)

// Database is the subset of pgxpool.Pool the repository relies on.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository persists employee records.
type Repository interface {
	List(ctx context.Context, filters Filters) ([]Employee, error)
	Departments(ctx context.Context) ([]string, error)
	Counts(ctx context.Context) (Counts, error)
	Get(ctx context.Context, id int64) (Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	Update(ctx context.Context, id int64, emp Employee) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db Database
}

// NewRepository constructs the Postgres-backed repository.
func NewRepository(db Database) Repository {
	return &repository{db: db}
}

const employeeColumns = `id, name, email, department, COALESCE(title, ''), COALESCE(manager, ''), active`

func (r *repository) List(ctx context.Context, filters Filters) ([]Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	args := []any{}

	if filters.Department != "" {
		args = append(args, filters.Department)
		query += ` AND department = $` + strconv.Itoa(len(args))
	}
	if filters.Active != nil {
		args = append(args, *filters.Active)
		query += ` AND active = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("employees: list: %w", err)
	}
	defer rows.Close()

	var result []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Title, &e.Manager, &e.Active); err != nil {
			return nil, fmt.Errorf("employees: scan: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *repository) Departments(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT department FROM employees WHERE department <> '' ORDER BY department`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("employees: departments: %w", err)
	}
	defer rows.Close()

	var departments []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("employees: scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *repository) Counts(ctx context.Context) (Counts, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE active), COUNT(*) FILTER (WHERE NOT active) FROM employees`
	var c Counts
	if err := r.db.QueryRow(ctx, query).Scan(&c.Total, &c.Active, &c.Inactive); err != nil {
		return Counts{}, fmt.Errorf("employees: counts: %w", err)
	}
	return c, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	var e Employee
	err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.Email, &e.Department, &e.Title, &e.Manager, &e.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, shared.ErrNotFound
		}
		return Employee{}, fmt.Errorf("employees: get: %w", err)
	}
	return e, nil
}

func (r *repository) Create(ctx context.Context, emp Employee) (Employee, error) {
	query := `INSERT INTO employees (name, email, department, title, manager, active)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6) RETURNING id`
	err := r.db.QueryRow(ctx, query, emp.Name, emp.Email, emp.Department, emp.Title, emp.Manager, emp.Active).Scan(&emp.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return Employee{}, shared.ErrDuplicateEmail
		}
		return Employee{}, fmt.Errorf("employees: create: %w", err)
	}
	return emp, nil
}

func (r *repository) Update(ctx context.Context, id int64, emp Employee) error {
	query := `UPDATE employees SET name = $1, email = $2, department = $3,
		title = NULLIF($4, ''), manager = NULLIF($5, ''), active = $6 WHERE id = $7`
	tag, err := r.db.Exec(ctx, query, emp.Name, emp.Email, emp.Department, emp.Title, emp.Manager, emp.Active, id)
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrDuplicateEmail
		}
		return fmt.Errorf("employees: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("employees: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
