package internal

import (
	"database/sql"

	"westwind-inventory/internal/entity"
	"westwind-inventory/internal/forms"
	"westwind-inventory/internal/models"
	"westwind-inventory/internal/store"
)

// Field names follow the employee form's wire contract.
var employeeRules = []forms.Rule{
	{Field: "name", Required: true, Min: 3, Message: "Employee name must contain at least 3 characters"},
	{Field: "department"},
	{Field: "position", Alphanum: true},
	{Field: "date_hired", Date: true, Message: "Invalid date of hire"},
	{Field: "date_employment_terminated", Date: true, Message: "Invalid date of employment termination"},
	{Field: "current_employee", Bool: true},
}

func newEmployeeService(st *store.Store) *entity.Service[models.Employee] {
	return entity.NewService(st, entity.Descriptor[models.Employee]{
		Kind:        "employee",
		Plural:      "employees",
		Table:       "employees",
		Columns:     []string{"name", "department", "position", "date_hired", "date_employment_terminated", "current_employee"},
		DefaultSort: "name",
		SortKeys: map[string]string{
			"id":         "id",
			"name":       "name",
			"date_hired": "date_hired",
			"created_at": "created_at",
		},
		Rules: employeeRules,
		FromInput: func(fields map[string]string) models.Employee {
			return models.Employee{
				Name:                     fields["name"],
				Department:               optField(fields, "department"),
				Position:                 optField(fields, "position"),
				DateHired:                optField(fields, "date_hired"),
				DateEmploymentTerminated: optField(fields, "date_employment_terminated"),
				CurrentEmployee:          boolField(fields, "current_employee"),
			}
		},
		Args: func(e models.Employee) []any {
			return []any{e.Name, e.Department, e.Position, e.DateHired, e.DateEmploymentTerminated, e.CurrentEmployee}
		},
		Scan: func(scan func(dest ...any) error) (models.Employee, error) {
			var (
				e                     models.Employee
				dep, pos, hired, term sql.NullString
				current               sql.NullBool
			)
			err := scan(&e.ID, &e.Name, &dep, &pos, &hired, &term, &current, &e.CreatedAt, &e.UpdatedAt)
			if err != nil {
				return e, err
			}
			e.Department = strPtr(dep)
			e.Position = strPtr(pos)
			e.DateHired = strPtr(hired)
			e.DateEmploymentTerminated = strPtr(term)
			e.CurrentEmployee = boolPtr(current)
			return e, nil
		},
		UniqueWhere: func(e models.Employee) (string, []any) {
			return "name = ?", []any{e.Name}
		},
		Guards: []entity.Guard{
			{Kind: "assigned_device", Table: "assigned_devices", Column: "employee_id"},
			{Kind: "assigned_accessory", Table: "assigned_accessories", Column: "employee_id"},
		},
	})
}
