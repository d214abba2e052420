package models

import "time"

// Submission is the raw employee form as it arrives from the client.
// It never carries an identifier or a creation timestamp.
type Submission struct {
	Name    string `form:"name"    validate:"required,min=2,max=50"`
	Email   string `form:"email"   validate:"required,employee_email"`
	Phone   string `form:"phone"   validate:"required,phone_digits"`
	Address string `form:"address" validate:"required,min=5,max=200"`
}

// CleanRecord is a normalized submission that passed every field check.
type CleanRecord struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Employee represents a stored employee row.
type Employee struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}
