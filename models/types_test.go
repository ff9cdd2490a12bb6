// ABOUTME: Tests for record validation and date-range display logic
// ABOUTME: Verifies struct-tag rules and active-range evaluation
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateGrade(t *testing.T) {
	assert.NoError(t, Validate(Grade{Name: "Senior", Level: 4}))
	assert.Error(t, Validate(Grade{Level: 4}), "name is required")
	assert.Error(t, Validate(Grade{Name: "Senior"}), "level must be at least 1")
}

func TestValidateTravelMode(t *testing.T) {
	assert.NoError(t, Validate(TravelMode{Name: "Economy Air", Kind: "flight"}))
	assert.Error(t, Validate(TravelMode{Name: "Teleport", Kind: "portal"}))
}

func TestValidateUserEmail(t *testing.T) {
	u := User{Name: "A Traveler", Email: "not-an-email", EmployeeCode: "E1", CompanyID: 1}
	assert.Error(t, Validate(u))
	u.Email = "traveler@example.com"
	assert.NoError(t, Validate(u))
}

func TestDateRangeActive(t *testing.T) {
	today := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, DateRangeActive("", "", today), "open range is always active")
	assert.True(t, DateRangeActive("2026-01-01", "2026-12-31", today))
	assert.True(t, DateRangeActive("2026-09-01", "", today), "bounds are inclusive")
	assert.True(t, DateRangeActive("", "2026-09-01", today))
	assert.False(t, DateRangeActive("2026-09-02", "", today))
	assert.False(t, DateRangeActive("", "2026-08-31", today))
	assert.False(t, DateRangeActive("garbage", "", today), "malformed dates read as inactive")
}
