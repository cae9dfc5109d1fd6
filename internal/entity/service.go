// Package entity implements the one CRUD service the five inventory
// collections share. Each collection instantiates Service with a Descriptor
// carrying its schema, validation rules, uniqueness predicate and delete
// guards; the list/get/create/update/delete semantics live here once.
package entity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"westwind-inventory/internal/forms"
	"westwind-inventory/internal/store"
)

// ErrNotFound reports an id that resolves to no record.
var ErrNotFound = errors.New("record not found")

// Record is any stored inventory row.
type Record interface {
	RecordID() int64
}

// Ref points at a record of another collection, typically an assignment
// blocking a delete.
type Ref struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
	Path string `json:"path"`
}

// BlockedError is returned when a delete is refused because assignment
// records still reference the target. The target is left untouched.
type BlockedError struct {
	Refs []Ref
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("record is referenced by %d assignment(s)", len(e.Refs))
}

// RecordPath is the canonical detail path for a record.
func RecordPath(kind string, id int64) string {
	return fmt.Sprintf("/inventory/%s/%d", kind, id)
}

// RefCheck verifies that a referenced id resolves to an existing record
// before an assignment is written.
type RefCheck struct {
	Field string           // form field carrying the reference
	Table string           // referenced table
	ID    func(any) int64  // extracts the referenced id from the record
}

// Guard is a dependent table consulted before a delete is allowed.
type Guard struct {
	Kind   string // entity kind of the referencing records
	Table  string
	Column string // column holding the target's id
}

// Descriptor parameterizes Service for one collection.
type Descriptor[T Record] struct {
	Kind        string   // path segment, e.g. "device"
	Plural      string   // list path segment, e.g. "devices"
	Table       string
	Columns     []string // data columns, excluding id and timestamps
	DefaultSort string   // column list records are ordered by
	SortKeys    map[string]string

	Rules     []forms.Rule
	FromInput func(fields map[string]string) T
	Args      func(rec T) []any // values for Columns, same order

	// Scan reads one row laid out as: id, Columns..., created_at, updated_at.
	Scan func(scan func(dest ...any) error) (T, error)

	// UniqueWhere returns the duplicate probe for create, or "" when the
	// collection has none.
	UniqueWhere func(rec T) (string, []any)

	RefChecks []RefCheck
	Guards    []Guard
}

// Service is a CRUD service over one collection, bound to a store handle.
type Service[T Record] struct {
	st *store.Store
	d  Descriptor[T]
}

func NewService[T Record](st *store.Store, d Descriptor[T]) *Service[T] {
	return &Service[T]{st: st, d: d}
}

// Kind returns the descriptor's path segment.
func (s *Service[T]) Kind() string { return s.d.Kind }

// Plural returns the descriptor's list path segment.
func (s *Service[T]) Plural() string { return s.d.Plural }

// Blank returns a zero record, used for create-form scaffolds.
func (s *Service[T]) Blank() T {
	var zero T
	return zero
}

func (s *Service[T]) selectColumns() string {
	return "id, " + strings.Join(s.d.Columns, ", ") + ", created_at, updated_at"
}

// List returns every record, ordered ascending by the collection's sort
// column (or a whitelisted override), with id as a stable tiebreak.
func (s *Service[T]) List(ctx context.Context, sortKey string) ([]T, error) {
	orderBy := s.d.DefaultSort
	if sortKey != "" {
		if col, ok := s.d.SortKeys[sortKey]; ok {
			orderBy = col
		}
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC, id ASC",
		s.selectColumns(), s.d.Table, orderBy)

	rows, err := s.st.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		rec, err := s.d.Scan(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count reports the collection size for the dashboard.
func (s *Service[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.st.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.d.Table).Scan(&n)
	return n, err
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Service[T]) Get(ctx context.Context, id int64) (T, error) {
	return s.get(ctx, s.st.DB, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Service[T]) get(ctx context.Context, q querier, id int64) (T, error) {
	var zero T
	query := s.st.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE id = ?",
		s.selectColumns(), s.d.Table))
	rec, err := s.d.Scan(q.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return rec, nil
}

// Create validates raw form input and inserts a record with a fresh id.
// When the collection's uniqueness key already matches an existing record,
// that record is returned instead and nothing is written
// (duplicate-as-success); the second return value reports whether a new
// record was created. The duplicate probe and the insert run in one
// transaction so concurrent submissions cannot both pass the probe.
func (s *Service[T]) Create(ctx context.Context, raw url.Values) (T, bool, error) {
	var zero T
	fields, verrs := forms.Decode(raw, s.d.Rules)
	if len(verrs) > 0 {
		return zero, false, verrs
	}
	rec := s.d.FromInput(fields)

	tx, err := s.st.DB.BeginTx(ctx, nil)
	if err != nil {
		return zero, false, err
	}
	defer tx.Rollback()

	verrs, err = s.checkRefs(ctx, tx, rec)
	if err != nil {
		return zero, false, err
	}
	if len(verrs) > 0 {
		return zero, false, verrs
	}

	if s.d.UniqueWhere != nil {
		if where, args := s.d.UniqueWhere(rec); where != "" {
			var existingID int64
			query := s.st.Rebind(fmt.Sprintf("SELECT id FROM %s WHERE %s", s.d.Table, where))
			err := tx.QueryRowContext(ctx, query, args...).Scan(&existingID)
			switch {
			case err == nil:
				existing, err := s.get(ctx, tx, existingID)
				if err != nil {
					return zero, false, err
				}
				return existing, false, tx.Commit()
			case !errors.Is(err, sql.ErrNoRows):
				return zero, false, err
			}
		}
	}

	now := store.Now()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.d.Columns)+2), ", ")
	query := s.st.Rebind(fmt.Sprintf("INSERT INTO %s (%s, created_at, updated_at) VALUES (%s) RETURNING id",
		s.d.Table, strings.Join(s.d.Columns, ", "), placeholders))
	args := append(s.d.Args(rec), now, now)

	var id int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return zero, false, err
	}
	created, err := s.get(ctx, tx, id)
	if err != nil {
		return zero, false, err
	}
	return created, true, tx.Commit()
}

// Update validates raw form input and replaces every data column of the
// record, preserving its id. No duplicate probe runs on update. Unknown ids
// return ErrNotFound.
func (s *Service[T]) Update(ctx context.Context, id int64, raw url.Values) (T, error) {
	var zero T
	fields, verrs := forms.Decode(raw, s.d.Rules)
	if len(verrs) > 0 {
		return zero, verrs
	}
	rec := s.d.FromInput(fields)

	tx, err := s.st.DB.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback()

	verrs, err = s.checkRefs(ctx, tx, rec)
	if err != nil {
		return zero, err
	}
	if len(verrs) > 0 {
		return zero, verrs
	}

	sets := make([]string, 0, len(s.d.Columns)+1)
	for _, col := range s.d.Columns {
		sets = append(sets, col+" = ?")
	}
	sets = append(sets, "updated_at = ?")
	query := s.st.Rebind(fmt.Sprintf("UPDATE %s SET %s WHERE id = ?",
		s.d.Table, strings.Join(sets, ", ")))
	args := append(s.d.Args(rec), store.Now(), id)

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return zero, ErrNotFound
	}
	updated, err := s.get(ctx, tx, id)
	if err != nil {
		return zero, err
	}
	return updated, tx.Commit()
}

// Blockers lists the assignment records that reference id, in guard order.
func (s *Service[T]) Blockers(ctx context.Context, id int64) ([]Ref, error) {
	return s.blockers(ctx, s.st.DB, id)
}

type rowsQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Service[T]) blockers(ctx context.Context, q rowsQuerier, id int64) ([]Ref, error) {
	refs := []Ref{}
	for _, g := range s.d.Guards {
		query := s.st.Rebind(fmt.Sprintf("SELECT id FROM %s WHERE %s = ? ORDER BY id ASC", g.Table, g.Column))
		rows, err := q.QueryContext(ctx, query, id)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var refID int64
			if err := rows.Scan(&refID); err != nil {
				rows.Close()
				return nil, err
			}
			refs = append(refs, Ref{Kind: g.Kind, ID: refID, Path: RecordPath(g.Kind, refID)})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return refs, nil
}

// DeleteGuarded removes the record unless assignment records still
// reference it, in which case a *BlockedError carrying those references is
// returned and nothing is mutated. The guard queries and the delete run in
// one transaction. Unknown ids return ErrNotFound.
func (s *Service[T]) DeleteGuarded(ctx context.Context, id int64) error {
	tx, err := s.st.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var one int
	query := s.st.Rebind(fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", s.d.Table))
	if err := tx.QueryRowContext(ctx, query, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	refs, err := s.blockers(ctx, tx, id)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		return &BlockedError{Refs: refs}
	}

	query = s.st.Rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.d.Table))
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Service[T]) checkRefs(ctx context.Context, q querier, rec T) (forms.Errors, error) {
	var verrs forms.Errors
	for _, rc := range s.d.RefChecks {
		id := rc.ID(rec)
		var one int
		query := s.st.Rebind(fmt.Sprintf("SELECT 1 FROM %s WHERE id = ?", rc.Table))
		err := q.QueryRowContext(ctx, query, id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			verrs = append(verrs, forms.FieldError{Field: rc.Field, Message: "selected record does not exist"})
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return verrs, nil
}
