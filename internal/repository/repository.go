package repository

import (
	"context"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// Repository is the PostgreSQL implementation of EmployeeRepoIface.
type Repository struct {
	db      Database
	metrics *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	// Insert stores a validated record. A nil error means exactly one row was written.
	Insert(ctx context.Context, record models.CleanRecord) error
	// ListAll returns every stored employee, newest first. An empty table yields an empty slice.
	ListAll(ctx context.Context) ([]models.Employee, error)
}

func NewEmployeeRepository(db Database, metrics *metrics.Metrics) EmployeeRepoIface {
	return &Repository{db: db, metrics: metrics}
}
