// ABOUTME: Tests for the list controller state machine and filtering
// ABOUTME: Covers stale fetch discard, last-known-good, search, and paging
package screens

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/models"
)

func newGradeList() *List[models.Grade] {
	return NewList(
		func(g models.Grade) []string { return []string{g.Name} },
		func(g models.Grade) bool { return g.IsActive },
	)
}

func gradesResult(grades ...models.Grade) api.ListResult[models.Grade] {
	return api.ListResult[models.Grade]{
		Items: grades,
		Page:  api.PageMeta{CurrentPage: 1, TotalPages: 1, Count: len(grades)},
	}
}

func TestListStartsLoading(t *testing.T) {
	l := newGradeList()
	assert.Equal(t, StateLoading, l.State())
}

func TestResolveSuccess(t *testing.T) {
	l := newGradeList()
	token := l.BeginFetch()

	applied := l.Resolve(token, gradesResult(models.Grade{ID: 1, Name: "Junior", IsActive: true}), nil)

	assert.True(t, applied)
	assert.Equal(t, StateReady, l.State())
	assert.Len(t, l.Items(), 1)
}

func TestStaleResolveDiscarded(t *testing.T) {
	l := newGradeList()
	stale := l.BeginFetch()
	current := l.BeginFetch()

	applied := l.Resolve(stale, gradesResult(models.Grade{ID: 1, Name: "Old", IsActive: true}), nil)
	assert.False(t, applied, "superseded fetch must be dropped")
	assert.Empty(t, l.Items())

	applied = l.Resolve(current, gradesResult(models.Grade{ID: 2, Name: "New", IsActive: true}), nil)
	require.True(t, applied)
	assert.Equal(t, "New", l.Items()[0].Name)
}

func TestFailedFirstLoadIsError(t *testing.T) {
	l := newGradeList()
	token := l.BeginFetch()

	l.Resolve(token, api.ListResult[models.Grade]{}, errors.New("connection refused"))

	assert.Equal(t, StateError, l.State())
	assert.Error(t, l.Err())
}

func TestFailedRefetchKeepsLastKnownGood(t *testing.T) {
	l := newGradeList()
	l.Resolve(l.BeginFetch(), gradesResult(models.Grade{ID: 1, Name: "Junior", IsActive: true}), nil)

	l.Resolve(l.BeginFetch(), api.ListResult[models.Grade]{}, errors.New("backend down"))

	assert.Equal(t, StateReady, l.State(), "a failed refetch must not blank the screen")
	assert.Len(t, l.Items(), 1)
	assert.Error(t, l.Err())
}

func TestVisibleSearchIsCaseInsensitiveSubstring(t *testing.T) {
	l := newGradeList()
	l.Resolve(l.BeginFetch(), gradesResult(
		models.Grade{ID: 1, Name: "Senior Manager", IsActive: true},
		models.Grade{ID: 2, Name: "Junior Analyst", IsActive: true},
	), nil)

	l.Search = "MANAG"
	visible := l.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, int64(1), visible[0].ID)

	l.Search = ""
	assert.Len(t, l.Visible(), 2)
}

func TestVisibleActiveOnly(t *testing.T) {
	l := newGradeList()
	l.Resolve(l.BeginFetch(), gradesResult(
		models.Grade{ID: 1, Name: "Current", IsActive: true},
		models.Grade{ID: 2, Name: "Retired", IsActive: false},
	), nil)

	l.ActiveOnly = true
	visible := l.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Current", visible[0].Name)
}

func TestVisibleRefFilter(t *testing.T) {
	l := NewList(
		func(s models.State) []string { return []string{s.Name} },
		func(s models.State) bool { return s.IsActive },
	)
	l.Resolve(l.BeginFetch(), api.ListResult[models.State]{Items: []models.State{
		{ID: 1, Name: "Maharashtra", CountryID: 1, IsActive: true},
		{ID: 2, Name: "Bavaria", CountryID: 2, IsActive: true},
	}}, nil)

	l.SetRefFilter(func(s models.State) bool { return s.CountryID == 1 })
	require.Len(t, l.Visible(), 1)

	l.SetRefFilter(nil)
	assert.Len(t, l.Visible(), 2)
}

func TestGoToPageBounds(t *testing.T) {
	l := newGradeList()
	l.Resolve(l.BeginFetch(), api.ListResult[models.Grade]{
		Page: api.PageMeta{CurrentPage: 2, TotalPages: 5, Count: 100},
	}, nil)

	assert.Equal(t, 4, l.GoToPage(4))
	assert.Equal(t, 0, l.GoToPage(0), "page below range is a no-op")
	assert.Equal(t, 0, l.GoToPage(6), "page above range is a no-op")
	assert.Equal(t, 3, l.NextPage())
	assert.Equal(t, 1, l.PrevPage())
}

func TestGoToPageBeforeLoad(t *testing.T) {
	l := newGradeList()
	assert.Equal(t, 0, l.GoToPage(1))
}
