package models

// Accessory is unserialized peripheral equipment (chargers, mice, ...).
// Name is checked for duplicates on create.
type Accessory struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	SerialNumber *string `json:"serial_number,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Description  *string `json:"description,omitempty"`
	Model        *string `json:"model,omitempty"`
	DeviceType   *string `json:"device_type,omitempty"`
	InventoryTag *string `json:"inventory_tag,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (a Accessory) RecordID() int64 { return a.ID }
