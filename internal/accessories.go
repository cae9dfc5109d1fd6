package internal

import (
	"database/sql"

	"westwind-inventory/internal/entity"
	"westwind-inventory/internal/forms"
	"westwind-inventory/internal/models"
	"westwind-inventory/internal/store"
)

var accessoryRules = []forms.Rule{
	{Field: "name", Required: true, Message: "must include name"},
	{Field: "serialNumber", Min: 3, Message: "serialNumber must contain at least 3 characters"},
	{Field: "manufacturer", Min: 3, Message: "manufacturer must contain at least 3 characters"},
	{Field: "description"},
	{Field: "model"},
	{Field: "type"},
	{Field: "westWindInventoryID"},
}

func newAccessoryService(st *store.Store) *entity.Service[models.Accessory] {
	return entity.NewService(st, entity.Descriptor[models.Accessory]{
		Kind:        "accessory",
		Plural:      "accessories",
		Table:       "accessories",
		Columns:     []string{"name", "serial_number", "manufacturer", "description", "model", "device_type", "inventory_tag"},
		DefaultSort: "name",
		SortKeys: map[string]string{
			"id":           "id",
			"name":         "name",
			"manufacturer": "manufacturer",
			"created_at":   "created_at",
		},
		Rules: accessoryRules,
		FromInput: func(fields map[string]string) models.Accessory {
			return models.Accessory{
				Name:         fields["name"],
				SerialNumber: optField(fields, "serialNumber"),
				Manufacturer: optField(fields, "manufacturer"),
				Description:  optField(fields, "description"),
				Model:        optField(fields, "model"),
				DeviceType:   optField(fields, "type"),
				InventoryTag: optField(fields, "westWindInventoryID"),
			}
		},
		Args: func(a models.Accessory) []any {
			return []any{a.Name, a.SerialNumber, a.Manufacturer, a.Description, a.Model, a.DeviceType, a.InventoryTag}
		},
		Scan: func(scan func(dest ...any) error) (models.Accessory, error) {
			var (
				a                         models.Accessory
				serial, manu, desc, model sql.NullString
				dtype, itag               sql.NullString
			)
			err := scan(&a.ID, &a.Name, &serial, &manu, &desc, &model, &dtype, &itag, &a.CreatedAt, &a.UpdatedAt)
			if err != nil {
				return a, err
			}
			a.SerialNumber = strPtr(serial)
			a.Manufacturer = strPtr(manu)
			a.Description = strPtr(desc)
			a.Model = strPtr(model)
			a.DeviceType = strPtr(dtype)
			a.InventoryTag = strPtr(itag)
			return a, nil
		},
		UniqueWhere: func(a models.Accessory) (string, []any) {
			return "name = ?", []any{a.Name}
		},
		Guards: []entity.Guard{
			{Kind: "assigned_accessory", Table: "assigned_accessories", Column: "accessory_id"},
		},
	})
}
