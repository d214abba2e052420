package employees_test

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	mocks "github.com/UnknownOlympus/hestia/mock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStaff(t *testing.T, repo repository.EmployeeRepoIface) (*employees.Staff, *metrics.Metrics) {
	t.Helper()

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	staff, err := employees.NewStaff(slog.New(slog.DiscardHandler), repo, appMetrics)
	require.NoError(t, err)

	return staff, appMetrics
}

func TestNewStaff(t *testing.T) {
	t.Parallel()

	staff, err := employees.NewStaff(slog.Default(), mocks.NewEmployeeRepoIface(t), nil)

	require.NoError(t, err)
	assert.NotNil(t, staff)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := mocks.NewEmployeeRepoIface(t)
	staff, appMetrics := newStaff(t, mockRepo)

	expected := models.CleanRecord{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Phone:   "1234567890",
		Address: "123 Main St, City",
	}
	mockRepo.On("Insert", ctx, expected).Return(nil).Once()

	sub := validSubmission()
	sub.Name = "  Jane Doe "
	record, err := staff.Register(ctx, sub)

	require.NoError(t, err)
	assert.Equal(t, expected, record)
	assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Submissions.WithLabelValues("created")), 0)
}

func TestRegister_InvalidSkipsInsert(t *testing.T) {
	t.Parallel()

	mockRepo := mocks.NewEmployeeRepoIface(t)
	staff, appMetrics := newStaff(t, mockRepo)

	sub := validSubmission()
	sub.Name = "A"
	sub.Phone = "12345"

	record, err := staff.Register(context.Background(), sub)

	var verr *employees.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, models.CleanRecord{}, record)
	assert.Equal(t, []string{
		"Name must be between 2 and 50 characters",
		"Phone number must be 10 digits",
	}, verr.Messages())
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Submissions.WithLabelValues("invalid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(
		appMetrics.ValidationErrors.WithLabelValues(employees.FieldPhone, "invalid_format")), 0)
}

func TestRegister_WriteFailure(t *testing.T) {
	t.Parallel()

	mockRepo := mocks.NewEmployeeRepoIface(t)
	staff, appMetrics := newStaff(t, mockRepo)

	mockRepo.On("Insert", mock.Anything, mock.Anything).
		Return(errors.Join(repository.ErrWriteFailure, assert.AnError)).
		Once()

	_, err := staff.Register(context.Background(), validSubmission())

	require.ErrorIs(t, err, employees.ErrSaveFailed)
	assert.NotErrorIs(t, err, assert.AnError)
	assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.Submissions.WithLabelValues("failed")), 0)
}

func TestRegister_ConnectionFailure(t *testing.T) {
	t.Parallel()

	mockRepo := mocks.NewEmployeeRepoIface(t)
	staff, _ := newStaff(t, mockRepo)

	mockRepo.On("Insert", mock.Anything, mock.Anything).
		Return(errors.Join(repository.ErrConnectionFailure, &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})).
		Once()

	_, err := staff.Register(context.Background(), validSubmission())

	require.ErrorIs(t, err, employees.ErrUnavailable)
}

func TestList_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := mocks.NewEmployeeRepoIface(t)
	staff, _ := newStaff(t, mockRepo)

	expected := []models.Employee{
		{ID: 2, Name: "John Roe", CreatedAt: time.Now()},
		{ID: 1, Name: "Jane Doe", CreatedAt: time.Now()},
	}
	mockRepo.On("ListAll", ctx).Return(expected, nil).Once()

	actual, err := staff.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	mockRepo := mocks.NewEmployeeRepoIface(t)
	staff, _ := newStaff(t, mockRepo)

	mockRepo.On("ListAll", mock.Anything).Return(nil, nil).Once()

	actual, err := staff.List(context.Background())

	require.NoError(t, err)
	require.NotNil(t, actual)
	assert.Empty(t, actual)
}

func TestList_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		repoErr  error
		expected error
	}{
		{
			name:     "query failed",
			repoErr:  errors.Join(repository.ErrQueryFailed, assert.AnError),
			expected: employees.ErrListFailed,
		},
		{
			name:     "connection failure",
			repoErr:  errors.Join(repository.ErrConnectionFailure, assert.AnError),
			expected: employees.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := mocks.NewEmployeeRepoIface(t)
			staff, _ := newStaff(t, mockRepo)

			mockRepo.On("ListAll", mock.Anything).Return(nil, tt.repoErr).Once()

			actual, err := staff.List(context.Background())

			require.ErrorIs(t, err, tt.expected)
			assert.Nil(t, actual)
		})
	}
}
