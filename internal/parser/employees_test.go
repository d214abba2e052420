package parser_test

import (
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListing_Rows(t *testing.T) {
	t.Parallel()

	html := `
		<div class="alert alert-success" id="success-message">Employee added successfully.</div>
		<table>
			<tr class="employee-row">
				<td class="employee-id">2</td>
				<td class="employee-name"> John Roe </td>
				<td class="employee-email">john@x.com</td>
				<td class="employee-phone">0987654321</td>
				<td class="employee-address">7 Elm Road &amp; Co</td>
				<td class="employee-created-at">2024-05-01 11:00:00</td>
			</tr>
			<tr class="employee-row">
				<td class="employee-id">1</td>
				<td class="employee-name">Jane Doe</td>
				<td class="employee-email">jane@x.com</td>
				<td class="employee-phone">1234567890</td>
				<td class="employee-address">123 Main St, City</td>
				<td class="employee-created-at">2024-05-01 10:00:00</td>
			</tr>
		</table>`

	listing, err := parser.ParseListing(strings.NewReader(html))

	require.NoError(t, err)
	assert.True(t, listing.Success)
	assert.False(t, listing.Empty)
	assert.Empty(t, listing.ErrorMessage)
	require.Len(t, listing.Employees, 2)
	assert.Equal(t, models.Employee{
		ID:        2,
		Name:      "John Roe",
		Email:     "john@x.com",
		Phone:     "0987654321",
		Address:   "7 Elm Road & Co",
		CreatedAt: time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC),
	}, listing.Employees[0])
	assert.Equal(t, 1, listing.Employees[1].ID)
}

func TestParseListing_EmptyStateAndError(t *testing.T) {
	t.Parallel()

	html := `
		<div class="alert alert-danger" id="error-message"> Unable to retrieve employee data. </div>
		<div class="empty-state" id="empty-state"><h4>No Employees Found</h4></div>`

	listing, err := parser.ParseListing(strings.NewReader(html))

	require.NoError(t, err)
	assert.False(t, listing.Success)
	assert.True(t, listing.Empty)
	assert.Equal(t, "Unable to retrieve employee data.", listing.ErrorMessage)
	require.NotNil(t, listing.Employees)
	assert.Empty(t, listing.Employees)
}

func TestParseListing_NonNumericID(t *testing.T) {
	t.Parallel()

	html := `<table><tr class="employee-row"><td class="employee-id">abc</td></tr></table>`

	_, err := parser.ParseListing(strings.NewReader(html))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse employee id")
}

func TestParseListing_BadTimestamp(t *testing.T) {
	t.Parallel()

	html := `<table><tr class="employee-row">
		<td class="employee-id">5</td><td class="employee-created-at">yesterday</td>
	</tr></table>`

	_, err := parser.ParseListing(strings.NewReader(html))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse creation time of employee 5")
}

func TestParseForm(t *testing.T) {
	t.Parallel()

	html := `
		<ul id="form-errors">
			<li>Name must be between 2 and 50 characters</li>
			<li>Invalid email format</li>
		</ul>
		<form>
			<input id="name" name="name" value="A">
			<input id="email" name="email" value="&lt;not-an-email&gt;">
			<input id="phone" name="phone" value="1234567890">
			<input id="address" name="address" value="">
		</form>`

	page, err := parser.ParseForm(strings.NewReader(html))

	require.NoError(t, err)
	assert.Equal(t, []string{"Name must be between 2 and 50 characters", "Invalid email format"}, page.Errors)
	assert.Equal(t, models.Submission{
		Name:    "A",
		Email:   "<not-an-email>",
		Phone:   "1234567890",
		Address: "",
	}, page.Input)
}

func TestParseForm_NoErrors(t *testing.T) {
	t.Parallel()

	page, err := parser.ParseForm(strings.NewReader(`<form><input id="name" value=""></form>`))

	require.NoError(t, err)
	assert.Empty(t, page.Errors)
}
