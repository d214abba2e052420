package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
)

const (
	insertEmployeeQuery = `INSERT INTO employee (name, email, phone, address) VALUES ($1, $2, $3, $4)`
	listEmployeesQuery  = `SELECT id, name, email, phone, address, created_at FROM employee ORDER BY id DESC`
)

// Insert saves a validated employee record. The four fields are bound positionally, the identifier
// and creation timestamp are assigned by the database.
func (r *Repository) Insert(ctx context.Context, record models.CleanRecord) error {
	startTime := time.Now()
	defer func() {
		r.metrics.ObserveQuery("insert_employee", time.Since(startTime).Seconds())
	}()

	tag, err := r.db.Exec(ctx, insertEmployeeQuery, record.Name, record.Email, record.Phone, record.Address)
	if err != nil {
		return classify(ErrWriteFailure, err)
	}

	if affected := tag.RowsAffected(); affected != 1 {
		return fmt.Errorf("%w: %d rows affected", ErrWriteFailure, affected)
	}

	return nil
}

// ListAll retrieves all employees ordered by id, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Employee, error) {
	startTime := time.Now()
	defer func() {
		r.metrics.ObserveQuery("list_employees", time.Since(startTime).Seconds())
	}()

	rows, err := r.db.Query(ctx, listEmployeesQuery)
	if err != nil {
		return nil, classify(ErrQueryFailed, err)
	}
	defer rows.Close()

	employees := make([]models.Employee, 0)
	for rows.Next() {
		var employee models.Employee
		if err = rows.Scan(
			&employee.ID,
			&employee.Name,
			&employee.Email,
			&employee.Phone,
			&employee.Address,
			&employee.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan employee row: %w", ErrQueryFailed, err)
		}
		employees = append(employees, employee)
	}

	if err = rows.Err(); err != nil {
		return nil, classify(ErrQueryFailed, err)
	}

	return employees, nil
}
