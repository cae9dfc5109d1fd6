package internal

import (
	"database/sql"
	"strconv"
)

// Helpers shared by the entity descriptors for moving between normalized
// form fields, nullable scan targets and the pointer-typed model fields.

func optField(fields map[string]string, key string) *string {
	if v, ok := fields[key]; ok {
		return &v
	}
	return nil
}

func boolField(fields map[string]string, key string) *bool {
	if v, ok := fields[key]; ok {
		b := v == "true"
		return &b
	}
	return nil
}

func idField(fields map[string]string, key string) int64 {
	// The Int rule has already vetted the value.
	id, _ := strconv.ParseInt(fields[key], 10, 64)
	return id
}

func strPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func boolPtr(nb sql.NullBool) *bool {
	if nb.Valid {
		return &nb.Bool
	}
	return nil
}
