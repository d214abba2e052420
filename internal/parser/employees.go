package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// createdAtLayout is how the listing page prints creation timestamps.
const createdAtLayout = time.DateTime

// Listing is what a rendered employee listing page shows.
type Listing struct {
	Employees    []models.Employee
	Success      bool
	ErrorMessage string
	Empty        bool
}

// FormPage is what a rendered employee form shows.
type FormPage struct {
	Errors []string
	Input  models.Submission
}

// ParseListing reads the success banner, error alert, empty state and employee rows of a listing page.
func ParseListing(in io.Reader) (Listing, error) {
	doc, err := goquery.NewDocumentFromReader(in)
	if err != nil {
		return Listing{}, fmt.Errorf("failed to parse listing page: %w", err)
	}

	listing := Listing{
		Success:      doc.Find("#success-message").Length() > 0,
		ErrorMessage: strings.TrimSpace(doc.Find("#error-message").Text()),
		Empty:        doc.Find("#empty-state").Length() > 0,
		Employees:    make([]models.Employee, 0),
	}

	var rowErr error
	doc.Find("tr.employee-row").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		employee, parseErr := parseEmployeeRow(row)
		if parseErr != nil {
			rowErr = parseErr
			return false
		}
		listing.Employees = append(listing.Employees, employee)
		return true
	})
	if rowErr != nil {
		return Listing{}, rowErr
	}

	return listing, nil
}

func parseEmployeeRow(row *goquery.Selection) (models.Employee, error) {
	cell := func(class string) string {
		return strings.TrimSpace(row.Find("td." + class).Text())
	}

	employeeID, err := strconv.Atoi(cell("employee-id"))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to parse employee id: %w", err)
	}

	createdAt, err := time.Parse(createdAtLayout, cell("employee-created-at"))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to parse creation time of employee %d: %w", employeeID, err)
	}

	return models.Employee{
		ID:        employeeID,
		Name:      cell("employee-name"),
		Email:     cell("employee-email"),
		Phone:     cell("employee-phone"),
		Address:   cell("employee-address"),
		CreatedAt: createdAt,
	}, nil
}

// ParseForm reads the error list and the echoed field values of a form page.
func ParseForm(in io.Reader) (FormPage, error) {
	doc, err := goquery.NewDocumentFromReader(in)
	if err != nil {
		return FormPage{}, fmt.Errorf("failed to parse form page: %w", err)
	}

	page := FormPage{
		Input: models.Submission{
			Name:    doc.Find("input#name").AttrOr("value", ""),
			Email:   doc.Find("input#email").AttrOr("value", ""),
			Phone:   doc.Find("input#phone").AttrOr("value", ""),
			Address: doc.Find("input#address").AttrOr("value", ""),
		},
	}

	doc.Find("#form-errors li").Each(func(_ int, item *goquery.Selection) {
		page.Errors = append(page.Errors, strings.TrimSpace(item.Text()))
	})

	return page, nil
}
