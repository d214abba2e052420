package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

// Staff registers and lists employees. It holds no per-request state, every call works on its own
// data and the repository checks out its own connection.
type Staff struct {
	log       *slog.Logger
	repo      repository.EmployeeRepoIface
	validator *Validator
	metrics   *metrics.Metrics
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) (*Staff, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	return &Staff{log: log, repo: repo, validator: validator, metrics: metrics}, nil
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// Register validates a form submission and, when every field is valid, stores it.
//
// The returned error is one of:
//   - *ValidationError with every violation, in field order;
//   - ErrUnavailable when the database cannot be reached;
//   - ErrSaveFailed when the insert did not store the record.
//
// Storage failure details are logged and never returned.
func (s *Staff) Register(ctx context.Context, sub models.Submission) (models.CleanRecord, error) {
	const opn = "Employee.Register"
	log := s.initLogger(opn)

	record, err := s.validator.Validate(sub)
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			log.ErrorContext(ctx, "Validation could not run", sl.Err(err))
			s.countSubmission("failed")
			return models.CleanRecord{}, ErrSaveFailed
		}

		for _, field := range verr.Fields {
			s.countFieldError(field)
		}
		s.countSubmission("invalid")
		log.DebugContext(ctx, "Submission rejected", "violations", len(verr.Fields))

		return models.CleanRecord{}, verr
	}

	if err = s.repo.Insert(ctx, record); err != nil {
		s.countSubmission("failed")
		if errors.Is(err, repository.ErrConnectionFailure) {
			log.ErrorContext(ctx, "Database is unreachable, employee was not saved", sl.Err(err))
			return models.CleanRecord{}, ErrUnavailable
		}

		log.ErrorContext(ctx, "Insert error", sl.Err(err))
		return models.CleanRecord{}, ErrSaveFailed
	}

	s.countSubmission("created")
	log.InfoContext(ctx, "Employee added", "email", record.Email)

	return record, nil
}

// List returns all stored employees, newest first. The slice is empty, not nil, when none exist.
func (s *Staff) List(ctx context.Context) ([]models.Employee, error) {
	const opn = "Employee.List"
	log := s.initLogger(opn)

	employees, err := s.repo.ListAll(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrConnectionFailure) {
			log.ErrorContext(ctx, "Database is unreachable, employees were not listed", sl.Err(err))
			return nil, ErrUnavailable
		}

		log.ErrorContext(ctx, "Query failed", sl.Err(err))
		return nil, ErrListFailed
	}

	if employees == nil {
		employees = []models.Employee{}
	}

	log.DebugContext(ctx, "Employees listed", "count", len(employees))

	return employees, nil
}

func (s *Staff) countSubmission(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Submissions.WithLabelValues(result).Inc()
}

func (s *Staff) countFieldError(field FieldError) {
	if s.metrics == nil {
		return
	}
	s.metrics.ValidationErrors.WithLabelValues(field.Field, field.Kind.String()).Inc()
}
