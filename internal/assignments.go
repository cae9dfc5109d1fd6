package internal

import (
	"database/sql"

	"westwind-inventory/internal/entity"
	"westwind-inventory/internal/forms"
	"westwind-inventory/internal/models"
	"westwind-inventory/internal/store"
)

// Assignment forms reference the two joined records by id: "device" or
// "item" for the equipment side, "employee_assigned" for the employee.
var assignedDeviceRules = []forms.Rule{
	{Field: "device", Required: true, Int: true, Message: "must select a device to assign"},
	{Field: "employee_assigned", Required: true, Int: true, Message: "must select an employee to assign to"},
	{Field: "date_assigned", Date: true},
	{Field: "date_returned", Date: true},
	{Field: "condition_assigned"},
	{Field: "condition_returned"},
}

var assignedAccessoryRules = []forms.Rule{
	{Field: "item", Required: true, Int: true, Message: "must select an accessory to assign"},
	{Field: "employee_assigned", Required: true, Int: true, Message: "must select an employee to assign to"},
	{Field: "date_assigned", Date: true},
	{Field: "date_returned", Date: true},
	{Field: "condition_assigned"},
	{Field: "condition_returned"},
}

func scanAssignmentTail(scan func(dest ...any) error, id, itemID, employeeID *int64,
	created, updated *string) (dateAssigned, dateReturned, condAssigned, condReturned *string, err error) {
	var assigned, returned, condA, condR sql.NullString
	err = scan(id, itemID, employeeID, &assigned, &returned, &condA, &condR, created, updated)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return strPtr(assigned), strPtr(returned), strPtr(condA), strPtr(condR), nil
}

func newAssignedDeviceService(st *store.Store) *entity.Service[models.AssignedDevice] {
	return entity.NewService(st, entity.Descriptor[models.AssignedDevice]{
		Kind:        "assigned_device",
		Plural:      "assigned_devices",
		Table:       "assigned_devices",
		Columns:     []string{"device_id", "employee_id", "date_assigned", "date_returned", "condition_assigned", "condition_returned"},
		DefaultSort: "id",
		SortKeys: map[string]string{
			"id":            "id",
			"date_assigned": "date_assigned",
			"created_at":    "created_at",
		},
		Rules: assignedDeviceRules,
		FromInput: func(fields map[string]string) models.AssignedDevice {
			return models.AssignedDevice{
				DeviceID:          idField(fields, "device"),
				EmployeeID:        idField(fields, "employee_assigned"),
				DateAssigned:      optField(fields, "date_assigned"),
				DateReturned:      optField(fields, "date_returned"),
				ConditionAssigned: optField(fields, "condition_assigned"),
				ConditionReturned: optField(fields, "condition_returned"),
			}
		},
		Args: func(a models.AssignedDevice) []any {
			return []any{a.DeviceID, a.EmployeeID, a.DateAssigned, a.DateReturned, a.ConditionAssigned, a.ConditionReturned}
		},
		Scan: func(scan func(dest ...any) error) (models.AssignedDevice, error) {
			var a models.AssignedDevice
			var err error
			a.DateAssigned, a.DateReturned, a.ConditionAssigned, a.ConditionReturned, err =
				scanAssignmentTail(scan, &a.ID, &a.DeviceID, &a.EmployeeID, &a.CreatedAt, &a.UpdatedAt)
			return a, err
		},
		UniqueWhere: func(a models.AssignedDevice) (string, []any) {
			return "device_id = ? AND employee_id = ?", []any{a.DeviceID, a.EmployeeID}
		},
		RefChecks: []entity.RefCheck{
			{Field: "device", Table: "devices", ID: func(rec any) int64 { return rec.(models.AssignedDevice).DeviceID }},
			{Field: "employee_assigned", Table: "employees", ID: func(rec any) int64 { return rec.(models.AssignedDevice).EmployeeID }},
		},
	})
}

func newAssignedAccessoryService(st *store.Store) *entity.Service[models.AssignedAccessory] {
	return entity.NewService(st, entity.Descriptor[models.AssignedAccessory]{
		Kind:        "assigned_accessory",
		Plural:      "assigned_accessories",
		Table:       "assigned_accessories",
		Columns:     []string{"accessory_id", "employee_id", "date_assigned", "date_returned", "condition_assigned", "condition_returned"},
		DefaultSort: "id",
		SortKeys: map[string]string{
			"id":            "id",
			"date_assigned": "date_assigned",
			"created_at":    "created_at",
		},
		Rules: assignedAccessoryRules,
		FromInput: func(fields map[string]string) models.AssignedAccessory {
			return models.AssignedAccessory{
				AccessoryID:       idField(fields, "item"),
				EmployeeID:        idField(fields, "employee_assigned"),
				DateAssigned:      optField(fields, "date_assigned"),
				DateReturned:      optField(fields, "date_returned"),
				ConditionAssigned: optField(fields, "condition_assigned"),
				ConditionReturned: optField(fields, "condition_returned"),
			}
		},
		Args: func(a models.AssignedAccessory) []any {
			return []any{a.AccessoryID, a.EmployeeID, a.DateAssigned, a.DateReturned, a.ConditionAssigned, a.ConditionReturned}
		},
		Scan: func(scan func(dest ...any) error) (models.AssignedAccessory, error) {
			var a models.AssignedAccessory
			var err error
			a.DateAssigned, a.DateReturned, a.ConditionAssigned, a.ConditionReturned, err =
				scanAssignmentTail(scan, &a.ID, &a.AccessoryID, &a.EmployeeID, &a.CreatedAt, &a.UpdatedAt)
			return a, err
		},
		// Duplicate probe on the (accessory, employee) pair, mirroring
		// device assignments.
		UniqueWhere: func(a models.AssignedAccessory) (string, []any) {
			return "accessory_id = ? AND employee_id = ?", []any{a.AccessoryID, a.EmployeeID}
		},
		RefChecks: []entity.RefCheck{
			{Field: "item", Table: "accessories", ID: func(rec any) int64 { return rec.(models.AssignedAccessory).AccessoryID }},
			{Field: "employee_assigned", Table: "employees", ID: func(rec any) int64 { return rec.(models.AssignedAccessory).EmployeeID }},
		},
	})
}
