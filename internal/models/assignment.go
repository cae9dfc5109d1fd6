package models

// AssignedDevice links one Device to one Employee for a bounded period,
// with condition metadata at checkout and return.
type AssignedDevice struct {
	ID                int64   `json:"id"`
	DeviceID          int64   `json:"device_id"`
	EmployeeID        int64   `json:"employee_id"`
	DateAssigned      *string `json:"date_assigned,omitempty"`
	DateReturned      *string `json:"date_returned,omitempty"`
	ConditionAssigned *string `json:"condition_assigned,omitempty"`
	ConditionReturned *string `json:"condition_returned,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func (a AssignedDevice) RecordID() int64 { return a.ID }

// AssignedAccessory links one Accessory to one Employee.
type AssignedAccessory struct {
	ID                int64   `json:"id"`
	AccessoryID       int64   `json:"accessory_id"`
	EmployeeID        int64   `json:"employee_id"`
	DateAssigned      *string `json:"date_assigned,omitempty"`
	DateReturned      *string `json:"date_returned,omitempty"`
	ConditionAssigned *string `json:"condition_assigned,omitempty"`
	ConditionReturned *string `json:"condition_returned,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func (a AssignedAccessory) RecordID() int64 { return a.ID }

// AssignedDeviceDetail is the read-side join for assignment views. A side
// whose record has gone missing is left nil rather than failing the view.
type AssignedDeviceDetail struct {
	AssignedDevice
	Device   *Device   `json:"device"`
	Employee *Employee `json:"employee"`
}

// AssignedAccessoryDetail joins an accessory assignment with both sides.
type AssignedAccessoryDetail struct {
	AssignedAccessory
	Accessory *Accessory `json:"accessory"`
	Employee  *Employee  `json:"employee"`
}
