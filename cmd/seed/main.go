// Command seed populates an inventory database with sample records, or
// with the contents of an Excel workbook. Rows go through the same
// validation and duplicate checks as form submissions, so reruns are safe:
// a record whose uniqueness key already exists is simply returned.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"westwind-inventory/internal"
	"westwind-inventory/internal/config"
	"westwind-inventory/internal/store"
	"westwind-inventory/pkg/workbook"
)

func main() {
	dsn := flag.String("dsn", "", "database DSN (defaults to DB_DSN, then westwind.db)")
	workbookPath := flag.String("workbook", "", "optional .xlsx workbook to seed from")
	flag.Parse()

	if *dsn == "" {
		*dsn = os.Getenv("DB_DSN")
	}
	if *dsn == "" {
		*dsn = "westwind.db"
	}

	st, err := store.Open(*dsn)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	srv := internal.NewServer(st, &config.Config{})

	if *workbookPath != "" {
		if err := seedWorkbook(ctx, srv, *workbookPath); err != nil {
			log.Fatalf("Workbook seed failed: %v", err)
		}
		return
	}
	if err := seedSample(ctx, srv); err != nil {
		log.Fatalf("Sample seed failed: %v", err)
	}
}

func form(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

// seedSample inserts the demonstration data set: three of everything, each
// employee holding one device and one accessory.
func seedSample(ctx context.Context, srv *internal.Server) error {
	devices := [][2]string{
		{"12345TEST", "Lenovo"},
		{"67890TEST", "Asus"},
		{"16253TEST", "Apple"},
	}
	employees := []string{"Mr. Hugo TEST", "Tyler TEST", "Pable TEST"}
	accessories := []string{"Charger TEST", "Mouse TEST", "Bluetooth KeyboardTEST"}

	deviceIDs := make([]int64, len(devices))
	for i, d := range devices {
		rec, _, err := srv.Devices.Create(ctx, form("serialNumber", d[0], "manufacturer", d[1]))
		if err != nil {
			return fmt.Errorf("device %s: %w", d[0], err)
		}
		deviceIDs[i] = rec.ID
		log.Printf("Added device: %s", d[0])
	}

	employeeIDs := make([]int64, len(employees))
	for i, name := range employees {
		rec, _, err := srv.Employees.Create(ctx, form("name", name))
		if err != nil {
			return fmt.Errorf("employee %s: %w", name, err)
		}
		employeeIDs[i] = rec.ID
		log.Printf("Added employee: %s", name)
	}

	accessoryIDs := make([]int64, len(accessories))
	for i, name := range accessories {
		rec, _, err := srv.Accessories.Create(ctx, form("name", name))
		if err != nil {
			return fmt.Errorf("accessory %s: %w", name, err)
		}
		accessoryIDs[i] = rec.ID
		log.Printf("Added accessory: %s", name)
	}

	for i := range employeeIDs {
		_, _, err := srv.AssignedAccessories.Create(ctx, form(
			"item", fmt.Sprint(accessoryIDs[i]),
			"employee_assigned", fmt.Sprint(employeeIDs[i]),
		))
		if err != nil {
			return fmt.Errorf("assign accessory %s: %w", accessories[i], err)
		}
		log.Printf("Assigned accessory: %s -> %s", accessories[i], employees[i])
	}

	for i := range employeeIDs {
		_, _, err := srv.AssignedDevices.Create(ctx, form(
			"device", fmt.Sprint(deviceIDs[i]),
			"employee_assigned", fmt.Sprint(employeeIDs[i]),
		))
		if err != nil {
			return fmt.Errorf("assign device %s: %w", devices[i][0], err)
		}
		log.Printf("Assigned device: %s -> %s", devices[i][0], employees[i])
	}

	return nil
}

// seedWorkbook loads entity sheets from an .xlsx file. Entity sheets use
// the form field names as headers. Assignment sheets reference records by
// natural key: "device" carries a serial number, "item" an accessory name,
// "employee_assigned" an employee name.
func seedWorkbook(ctx context.Context, srv *internal.Server, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := workbook.Parse(f)
	if err != nil {
		return err
	}

	for _, row := range data.Rows(workbook.SheetEmployees) {
		if _, _, err := srv.Employees.Create(ctx, row); err != nil {
			return fmt.Errorf("employee row %v: %w", row, err)
		}
	}
	for _, row := range data.Rows(workbook.SheetDevices) {
		if _, _, err := srv.Devices.Create(ctx, row); err != nil {
			return fmt.Errorf("device row %v: %w", row, err)
		}
	}
	for _, row := range data.Rows(workbook.SheetAccessories) {
		if _, _, err := srv.Accessories.Create(ctx, row); err != nil {
			return fmt.Errorf("accessory row %v: %w", row, err)
		}
	}

	employeeIDs, err := employeeIndex(ctx, srv)
	if err != nil {
		return err
	}
	deviceIDs, accessoryIDs, err := equipmentIndex(ctx, srv)
	if err != nil {
		return err
	}

	for _, row := range data.Rows(workbook.SheetAssignedDevices) {
		if err := resolveRef(row, "device", deviceIDs); err != nil {
			return err
		}
		if err := resolveRef(row, "employee_assigned", employeeIDs); err != nil {
			return err
		}
		if _, _, err := srv.AssignedDevices.Create(ctx, row); err != nil {
			return fmt.Errorf("assigned device row %v: %w", row, err)
		}
	}
	for _, row := range data.Rows(workbook.SheetAssignedAccessories) {
		if err := resolveRef(row, "item", accessoryIDs); err != nil {
			return err
		}
		if err := resolveRef(row, "employee_assigned", employeeIDs); err != nil {
			return err
		}
		if _, _, err := srv.AssignedAccessories.Create(ctx, row); err != nil {
			return fmt.Errorf("assigned accessory row %v: %w", row, err)
		}
	}

	log.Printf("Workbook seed complete: %s", path)
	return nil
}

func employeeIndex(ctx context.Context, srv *internal.Server) (map[string]int64, error) {
	employees, err := srv.Employees.List(ctx, "")
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int64, len(employees))
	for _, e := range employees {
		ids[e.Name] = e.ID
	}
	return ids, nil
}

func equipmentIndex(ctx context.Context, srv *internal.Server) (map[string]int64, map[string]int64, error) {
	devices, err := srv.Devices.List(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	deviceIDs := make(map[string]int64, len(devices))
	for _, d := range devices {
		deviceIDs[d.SerialNumber] = d.ID
	}
	accessories, err := srv.Accessories.List(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	accessoryIDs := make(map[string]int64, len(accessories))
	for _, a := range accessories {
		accessoryIDs[a.Name] = a.ID
	}
	return deviceIDs, accessoryIDs, nil
}

// resolveRef replaces a natural-key reference with the record id it names.
func resolveRef(row url.Values, field string, ids map[string]int64) error {
	key := row.Get(field)
	id, ok := ids[key]
	if !ok {
		return fmt.Errorf("%s %q: no such record", field, key)
	}
	row.Set(field, fmt.Sprint(id))
	return nil
}
