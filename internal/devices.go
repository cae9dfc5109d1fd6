package internal

import (
	"database/sql"

	"westwind-inventory/internal/entity"
	"westwind-inventory/internal/forms"
	"westwind-inventory/internal/models"
	"westwind-inventory/internal/store"
)

var deviceRules = []forms.Rule{
	{Field: "serialNumber", Required: true, Min: 3, Message: "serialNumber must contain at least 3 characters"},
	{Field: "manufacturer", Required: true, Min: 3, Message: "manufacturer must contain at least 3 characters"},
	{Field: "name"},
	{Field: "model"},
	{Field: "description"},
	{Field: "type"},
	{Field: "westWindInventoryID"},
}

func newDeviceService(st *store.Store) *entity.Service[models.Device] {
	return entity.NewService(st, entity.Descriptor[models.Device]{
		Kind:        "device",
		Plural:      "devices",
		Table:       "devices",
		Columns:     []string{"serial_number", "manufacturer", "name", "model", "description", "device_type", "inventory_tag"},
		DefaultSort: "manufacturer",
		SortKeys: map[string]string{
			"id":            "id",
			"name":          "name",
			"serial_number": "serial_number",
			"manufacturer":  "manufacturer",
			"created_at":    "created_at",
		},
		Rules: deviceRules,
		FromInput: func(fields map[string]string) models.Device {
			return models.Device{
				SerialNumber: fields["serialNumber"],
				Manufacturer: fields["manufacturer"],
				Name:         optField(fields, "name"),
				Model:        optField(fields, "model"),
				Description:  optField(fields, "description"),
				DeviceType:   optField(fields, "type"),
				InventoryTag: optField(fields, "westWindInventoryID"),
			}
		},
		Args: func(d models.Device) []any {
			return []any{d.SerialNumber, d.Manufacturer, d.Name, d.Model, d.Description, d.DeviceType, d.InventoryTag}
		},
		Scan: func(scan func(dest ...any) error) (models.Device, error) {
			var (
				d                              models.Device
				name, model, desc, dtype, itag sql.NullString
			)
			err := scan(&d.ID, &d.SerialNumber, &d.Manufacturer, &name, &model, &desc, &dtype, &itag, &d.CreatedAt, &d.UpdatedAt)
			if err != nil {
				return d, err
			}
			d.Name = strPtr(name)
			d.Model = strPtr(model)
			d.Description = strPtr(desc)
			d.DeviceType = strPtr(dtype)
			d.InventoryTag = strPtr(itag)
			return d, nil
		},
		UniqueWhere: func(d models.Device) (string, []any) {
			return "serial_number = ? AND manufacturer = ?", []any{d.SerialNumber, d.Manufacturer}
		},
		Guards: []entity.Guard{
			{Kind: "assigned_device", Table: "assigned_devices", Column: "device_id"},
		},
	})
}
