//go:build integration

package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"westwind-inventory/internal"
	"westwind-inventory/internal/config"
	"westwind-inventory/internal/entity"
	"westwind-inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPostgresLifecycle runs the full create, assign, guard, delete cycle
// against a real Postgres database so the placeholder rebinding and
// RETURNING paths get exercised outside SQLite.
func TestPostgresLifecycle(t *testing.T) {
	testutil.RequireIntegration(t)

	st := testutil.NewPostgresStore(t)
	srv := internal.NewServer(st, &config.Config{})
	ctx := context.Background()

	employee, created, err := srv.Employees.Create(ctx, url.Values{
		"name":       {"Postgres Pat"},
		"department": {"IT"},
		"date_hired": {"2023-06-01"},
	})
	require.NoError(t, err)
	require.True(t, created)

	device, created, err := srv.Devices.Create(ctx, url.Values{
		"serialNumber": {"PG001"},
		"manufacturer": {"Acme"},
	})
	require.NoError(t, err)
	require.True(t, created)

	// Duplicate key returns the existing row.
	again, created, err := srv.Devices.Create(ctx, url.Values{
		"serialNumber": {"PG001"},
		"manufacturer": {"Acme"},
		"model":        {"should not matter"},
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, device.ID, again.ID)

	assignment, _, err := srv.AssignedDevices.Create(ctx, url.Values{
		"device":            {strconv.FormatInt(device.ID, 10)},
		"employee_assigned": {strconv.FormatInt(employee.ID, 10)},
		"date_assigned":     {"2024-03-01"},
	})
	require.NoError(t, err)

	err = srv.Devices.DeleteGuarded(ctx, device.ID)
	var blocked *entity.BlockedError
	require.ErrorAs(t, err, &blocked)
	require.Len(t, blocked.Refs, 1)
	assert.Equal(t, assignment.ID, blocked.Refs[0].ID)

	require.NoError(t, srv.AssignedDevices.DeleteGuarded(ctx, assignment.ID))
	require.NoError(t, srv.Devices.DeleteGuarded(ctx, device.ID))

	_, err = srv.Devices.Get(ctx, device.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

// TestPostgresHTTPRoundTrip drives the router end to end over Postgres.
func TestPostgresHTTPRoundTrip(t *testing.T) {
	testutil.RequireIntegration(t)

	srv := internal.NewServer(testutil.NewPostgresStore(t), &config.Config{})

	form := url.Values{"name": {"HTTP Hal"}, "position": {"Technician1"}}
	req := httptest.NewRequest("POST", "/inventory/employee/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	srv.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	loc := w.Header().Get("Location")
	require.NotEmpty(t, loc)

	w = httptest.NewRecorder()
	srv.Router.ServeHTTP(w, httptest.NewRequest("GET", loc, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "HTTP Hal", body["name"])
	assert.Equal(t, "Technician1", body["position"])
}
