package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/labstack/echo/v4"
)

const (
	msgUnavailable = "Database connection error. Please try again later."
	msgSaveFailed  = "Failed to add employee. Please try again."
	msgListFailed  = "Unable to retrieve employee data."
	msgBadForm     = "The submitted form could not be read. Please try again."

	listingRedirect = "/?success=1"
)

// EmployeeService is what the web pages need from the employee service.
type EmployeeService interface {
	Register(ctx context.Context, sub models.Submission) (models.CleanRecord, error)
	List(ctx context.Context) ([]models.Employee, error)
}

type listPage struct {
	Title        string
	Success      bool
	ErrorMessage string
	Employees    []models.Employee
}

type formPage struct {
	Title  string
	Errors []string
	Input  models.Submission
}

// EmployeeHandler serves the listing page and the new-employee form.
type EmployeeHandler struct {
	svc EmployeeService
	log *slog.Logger
}

func NewEmployeeHandler(svc EmployeeService, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, log: log}
}

// List renders every employee, or the empty state when there are none.
func (h *EmployeeHandler) List(c echo.Context) error {
	page := listPage{
		Title:   "Employee List",
		Success: c.QueryParam("success") == "1",
	}
	status := http.StatusOK

	staff, err := h.svc.List(c.Request().Context())
	switch {
	case errors.Is(err, employees.ErrUnavailable):
		status = http.StatusServiceUnavailable
		page.ErrorMessage = msgUnavailable
	case err != nil:
		status = http.StatusInternalServerError
		page.ErrorMessage = msgListFailed
	default:
		page.Employees = staff
	}

	return c.Render(status, "index.html", page)
}

// NewForm renders an empty form.
func (h *EmployeeHandler) NewForm(c echo.Context) error {
	return c.Render(http.StatusOK, "form.html", formPage{Title: "New Employee"})
}

// Create handles a form submission. A stored record redirects to the listing, anything else
// redisplays the form with the submitted values and the reasons it was not stored.
func (h *EmployeeHandler) Create(c echo.Context) error {
	page := formPage{Title: "New Employee"}

	var sub models.Submission
	if err := c.Bind(&sub); err != nil {
		h.log.WarnContext(c.Request().Context(), "Failed to bind employee form", sl.Err(err))
		page.Errors = []string{msgBadForm}
		return c.Render(http.StatusBadRequest, "form.html", page)
	}

	_, err := h.svc.Register(c.Request().Context(), sub)
	if err == nil {
		return c.Redirect(http.StatusSeeOther, listingRedirect)
	}

	var verr *employees.ValidationError
	switch {
	case errors.As(err, &verr):
		page.Errors = verr.Messages()
		page.Input = verr.Input
		return c.Render(http.StatusUnprocessableEntity, "form.html", page)
	case errors.Is(err, employees.ErrUnavailable):
		page.Errors = []string{msgUnavailable}
		page.Input = employees.Normalize(sub)
		return c.Render(http.StatusServiceUnavailable, "form.html", page)
	default:
		page.Errors = []string{msgSaveFailed}
		page.Input = employees.Normalize(sub)
		return c.Render(http.StatusInternalServerError, "form.html", page)
	}
}
