package models

// Device is a serialized piece of equipment (laptop, monitor, ...).
// The (serial_number, manufacturer) pair is checked for duplicates on
// create but is not a storage-level constraint.
type Device struct {
	ID           int64   `json:"id"`
	SerialNumber string  `json:"serial_number"`
	Manufacturer string  `json:"manufacturer"`
	Name         *string `json:"name,omitempty"`
	Model        *string `json:"model,omitempty"`
	Description  *string `json:"description,omitempty"`
	DeviceType   *string `json:"device_type,omitempty"`
	InventoryTag *string `json:"inventory_tag,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (d Device) RecordID() int64 { return d.ID }
