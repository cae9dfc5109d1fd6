package models

// Employee is a member of staff that equipment can be assigned to.
type Employee struct {
	ID                       int64   `json:"id"`
	Name                     string  `json:"name"`
	Department               *string `json:"department,omitempty"`
	Position                 *string `json:"position,omitempty"`
	DateHired                *string `json:"date_hired,omitempty"`
	DateEmploymentTerminated *string `json:"date_employment_terminated,omitempty"`
	CurrentEmployee          *bool   `json:"current_employee,omitempty"`
	CreatedAt                string  `json:"created_at"`
	UpdatedAt                string  `json:"updated_at"`
}

func (e Employee) RecordID() int64 { return e.ID }
