// ABOUTME: Tests for the create/edit form controller
// ABOUTME: Covers draft coercion, submit preparation, and failure handling
package screens

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/schema"
)

func deptSchema() schema.Schema {
	return schema.Schema{
		Resource: "departments",
		Fields: []schema.Field{
			{Name: "name", Label: "Name", Type: schema.Text, Required: true, MaxLen: 100},
			{Name: "code", Label: "Code", Type: schema.Text, MaxLen: 20},
			{Name: "company", Label: "Company", Type: schema.Ref, Required: true, Ref: "/companies/"},
			{Name: "is_active", Label: "Active", Type: schema.Bool},
		},
	}
}

func TestOpenCreateUsesDefaults(t *testing.T) {
	var f Form
	f.OpenCreate(deptSchema())

	assert.True(t, f.IsOpen())
	assert.True(t, f.IsCreate())
	assert.Equal(t, "true", f.Draft["is_active"])
	assert.Equal(t, "", f.Draft["name"])
}

func TestOpenEditCoercesStoredValues(t *testing.T) {
	var f Form
	f.OpenEdit(deptSchema(), 7, map[string]any{
		"name":      "Engineering",
		"code":      nil,
		"company":   float64(3), // decoded JSON numbers arrive as float64
		"is_active": true,
	})

	assert.False(t, f.IsCreate())
	assert.Equal(t, "Engineering", f.Draft["name"])
	assert.Equal(t, "", f.Draft["code"])
	assert.Equal(t, "3", f.Draft["company"])
	assert.Equal(t, "true", f.Draft["is_active"])
}

func TestOpenEditKeepsFractionalNumbers(t *testing.T) {
	rateSchema := schema.Schema{
		Resource: "conveyance-rates",
		Fields: []schema.Field{
			{Name: "rate_per_km", Label: "Rate per KM", Type: schema.Number, Required: true},
		},
	}

	var f Form
	f.OpenEdit(rateSchema, 3, map[string]any{"rate_per_km": 12.5})

	assert.Equal(t, "12.5", f.Draft["rate_per_km"], "fractional values must not be truncated")
}

func TestBeginSubmitProducesPayload(t *testing.T) {
	var f Form
	f.OpenCreate(deptSchema())
	f.Set("name", "Engineering")
	f.Set("company", "3")

	payload, ok := f.BeginSubmit()

	require.True(t, ok)
	assert.True(t, f.IsOpen(), "the form stays open until Finish")
	assert.Equal(t, int64(3), payload["company"])
	assert.Nil(t, payload["code"], "empty optional field is sent as null")
}

func TestBeginSubmitBlockedByValidation(t *testing.T) {
	var f Form
	f.OpenCreate(deptSchema())

	payload, ok := f.BeginSubmit()

	assert.False(t, ok, "invalid draft must not reach the backend")
	assert.Nil(t, payload)
	assert.True(t, f.IsOpen())
	assert.Contains(t, f.Errors, "name")
	assert.Contains(t, f.Errors, "company")
}

func TestFinishSuccessClosesForm(t *testing.T) {
	var f Form
	f.OpenEdit(deptSchema(), 7, map[string]any{"name": "Engineering", "company": int64(3), "is_active": true})
	_, ok := f.BeginSubmit()
	require.True(t, ok)

	assert.True(t, f.Finish(nil))
	assert.False(t, f.IsOpen())
}

func TestFinishFailureKeepsDraftAndMapsFieldErrors(t *testing.T) {
	var f Form
	f.OpenCreate(deptSchema())
	f.Set("name", "Engineering")
	f.Set("company", "3")
	_, ok := f.BeginSubmit()
	require.True(t, ok)

	backendErr := &api.APIError{
		Status:  400,
		Message: "validation failed",
		Fields:  map[string][]string{"name": {"already exists", "too plain"}},
	}

	assert.False(t, f.Finish(backendErr))
	assert.True(t, f.IsOpen(), "failure keeps the form open")
	assert.Equal(t, "Engineering", f.Draft["name"], "draft survives the failure")
	assert.Equal(t, "already exists", f.Errors["name"], "first backend message wins")
	assert.Equal(t, "validation failed", f.Generic)
}

func TestFinishTransportFailureSetsGeneric(t *testing.T) {
	var f Form
	f.OpenCreate(deptSchema())
	f.Set("name", "Engineering")
	f.Set("company", "3")
	_, ok := f.BeginSubmit()
	require.True(t, ok)

	assert.False(t, f.Finish(errors.New("connection refused")))
	assert.Empty(t, f.Errors)
	assert.Contains(t, f.Generic, "connection refused")
}

func TestSetClearsFieldError(t *testing.T) {
	var f Form
	f.OpenCreate(deptSchema())
	f.Validate()
	require.Contains(t, f.Errors, "name")

	f.Set("name", "Engineering")
	assert.NotContains(t, f.Errors, "name")
}
