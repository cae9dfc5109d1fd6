package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTrimsAndEscapes(t *testing.T) {
	rules := []Rule{{Field: "name", Required: true, Min: 3}}

	fields, errs := Decode(url.Values{"name": {"  <b>Bob</b>  "}}, rules)
	require.Empty(t, errs)
	assert.Equal(t, "&lt;b&gt;Bob&lt;/b&gt;", fields["name"])
}

func TestDecodeMinLength(t *testing.T) {
	rules := []Rule{{Field: "name", Required: true, Min: 3, Message: "Employee name must contain at least 3 characters"}}

	_, errs := Decode(url.Values{"name": {"Al"}}, rules)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "Employee name must contain at least 3 characters", errs[0].Message)

	fields, errs := Decode(url.Values{"name": {"Ali"}}, rules)
	require.Empty(t, errs)
	assert.Equal(t, "Ali", fields["name"])
}

func TestDecodeCollectsAllErrors(t *testing.T) {
	rules := []Rule{
		{Field: "serialNumber", Required: true, Min: 3},
		{Field: "manufacturer", Required: true, Min: 3},
		{Field: "position", Alphanum: true},
	}

	_, errs := Decode(url.Values{
		"serialNumber": {"ab"},
		"position":     {"staff engineer"}, // space is not alphanumeric
	}, rules)

	require.Len(t, errs, 3)
	assert.Equal(t, "serialNumber", errs[0].Field)
	assert.Equal(t, "manufacturer", errs[1].Field)
	assert.Equal(t, "position", errs[2].Field)
}

func TestDecodeOptionalEmptyIsAbsent(t *testing.T) {
	rules := []Rule{
		{Field: "name", Required: true},
		{Field: "department"},
	}

	fields, errs := Decode(url.Values{"name": {"Bob"}, "department": {"   "}}, rules)
	require.Empty(t, errs)
	_, present := fields["department"]
	assert.False(t, present)
}

func TestDecodeDates(t *testing.T) {
	rules := []Rule{{Field: "date_hired", Date: true}}

	fields, errs := Decode(url.Values{"date_hired": {"2023-04-01"}}, rules)
	require.Empty(t, errs)
	assert.Equal(t, "2023-04-01", fields["date_hired"])

	fields, errs = Decode(url.Values{"date_hired": {"2023-04-01T09:30:00Z"}}, rules)
	require.Empty(t, errs)
	assert.Equal(t, "2023-04-01", fields["date_hired"])

	_, errs = Decode(url.Values{"date_hired": {"April 1st"}}, rules)
	require.Len(t, errs, 1)
	assert.Equal(t, "date_hired", errs[0].Field)
}

func TestDecodeBool(t *testing.T) {
	rules := []Rule{{Field: "current_employee", Bool: true}}

	for _, v := range []string{"on", "true", "1", "yes"} {
		fields, errs := Decode(url.Values{"current_employee": {v}}, rules)
		require.Empty(t, errs)
		assert.Equal(t, "true", fields["current_employee"], "input %q", v)
	}

	fields, errs := Decode(url.Values{"current_employee": {"nope"}}, rules)
	require.Empty(t, errs)
	assert.Equal(t, "false", fields["current_employee"])
}

func TestDecodeInt(t *testing.T) {
	rules := []Rule{{Field: "device", Required: true, Int: true, Message: "must select a device to assign"}}

	fields, errs := Decode(url.Values{"device": {"42"}}, rules)
	require.Empty(t, errs)
	assert.Equal(t, "42", fields["device"])

	_, errs = Decode(url.Values{"device": {"forty-two"}}, rules)
	require.Len(t, errs, 1)

	_, errs = Decode(url.Values{}, rules)
	require.Len(t, errs, 1)
	assert.Equal(t, "must select a device to assign", errs[0].Message)
}

func TestDecodeTakesFirstValue(t *testing.T) {
	rules := []Rule{{Field: "name", Required: true}}

	fields, errs := Decode(url.Values{"name": {"Bob", "Eve"}}, rules)
	require.Empty(t, errs)
	assert.Equal(t, "Bob", fields["name"])
}

func TestErrorsMessage(t *testing.T) {
	errs := Errors{{Field: "name", Message: "name is required"}}
	assert.Contains(t, errs.Error(), "name: name is required")
}
