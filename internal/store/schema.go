package store

import (
	"context"
	"fmt"
)

// Referential integrity between the collections is enforced by the delete
// guards in the entity services, not by foreign-key constraints, so the
// schema is five independent tables.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS employees (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	department    TEXT,
	position      TEXT,
	date_hired    TEXT,
	date_employment_terminated TEXT,
	current_employee INTEGER,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS devices (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	serial_number TEXT NOT NULL,
	manufacturer  TEXT NOT NULL,
	name          TEXT,
	model         TEXT,
	description   TEXT,
	device_type   TEXT,
	inventory_tag TEXT,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS accessories (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	serial_number TEXT,
	manufacturer  TEXT,
	description   TEXT,
	model         TEXT,
	device_type   TEXT,
	inventory_tag TEXT,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assigned_devices (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	device_id          INTEGER NOT NULL,
	employee_id        INTEGER NOT NULL,
	date_assigned      TEXT,
	date_returned      TEXT,
	condition_assigned TEXT,
	condition_returned TEXT,
	created_at         TEXT NOT NULL,
	updated_at         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assigned_accessories (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	accessory_id       INTEGER NOT NULL,
	employee_id        INTEGER NOT NULL,
	date_assigned      TEXT,
	date_returned      TEXT,
	condition_assigned TEXT,
	condition_returned TEXT,
	created_at         TEXT NOT NULL,
	updated_at         TEXT NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS employees (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	department    TEXT,
	position      TEXT,
	date_hired    TEXT,
	date_employment_terminated TEXT,
	current_employee BOOLEAN,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS devices (
	id            BIGSERIAL PRIMARY KEY,
	serial_number TEXT NOT NULL,
	manufacturer  TEXT NOT NULL,
	name          TEXT,
	model         TEXT,
	description   TEXT,
	device_type   TEXT,
	inventory_tag TEXT,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS accessories (
	id            BIGSERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	serial_number TEXT,
	manufacturer  TEXT,
	description   TEXT,
	model         TEXT,
	device_type   TEXT,
	inventory_tag TEXT,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assigned_devices (
	id                 BIGSERIAL PRIMARY KEY,
	device_id          BIGINT NOT NULL,
	employee_id        BIGINT NOT NULL,
	date_assigned      TEXT,
	date_returned      TEXT,
	condition_assigned TEXT,
	condition_returned TEXT,
	created_at         TEXT NOT NULL,
	updated_at         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assigned_accessories (
	id                 BIGSERIAL PRIMARY KEY,
	accessory_id       BIGINT NOT NULL,
	employee_id        BIGINT NOT NULL,
	date_assigned      TEXT,
	date_returned      TEXT,
	condition_assigned TEXT,
	condition_returned TEXT,
	created_at         TEXT NOT NULL,
	updated_at         TEXT NOT NULL
);
`

// Migrate creates the inventory tables when they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	schema := schemaSQLite
	if s.dialect == Postgres {
		schema = schemaPostgres
	}
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
