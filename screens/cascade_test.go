// ABOUTME: Tests for the cascading geography-style selector
// ABOUTME: Covers token-based option loads, invalidated selections, and failures
package screens

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countryOptions() []Option {
	return []Option{{ID: 1, Label: "India"}, {ID: 2, Label: "Germany"}}
}

func stateOptions(countryID int64) []Option {
	switch countryID {
	case 1:
		return []Option{{ID: 10, Label: "Maharashtra"}, {ID: 11, Label: "Karnataka"}}
	case 2:
		return []Option{{ID: 20, Label: "Bavaria"}}
	}
	return nil
}

func newGeoCascade(t *testing.T) *Cascade {
	t.Helper()
	c := NewCascade("country", "state", "city")
	require.True(t, c.ResolveLoad(0, c.BeginLoad(0), countryOptions(), nil))
	return c
}

func TestRootLoadFillsOnlyTopLevel(t *testing.T) {
	c := newGeoCascade(t)
	assert.Len(t, c.Options(0), 2)
	assert.Empty(t, c.Options(1))
	assert.Empty(t, c.Options(2))
}

func TestSelectParentClearsChildrenUntilReload(t *testing.T) {
	c := newGeoCascade(t)

	require.NoError(t, c.Select(0, 1))
	assert.Equal(t, int64(1), c.Selected(0))
	assert.Empty(t, c.Options(1), "child options arrive through a load, not select")

	require.True(t, c.ResolveLoad(1, c.BeginLoad(1), stateOptions(1), nil))
	assert.Len(t, c.Options(1), 2)
	assert.Equal(t, int64(0), c.Selected(1), "child starts unselected")
}

func TestChangingParentClearsInvalidSelections(t *testing.T) {
	c := newGeoCascade(t)
	require.NoError(t, c.Select(0, 1))
	require.True(t, c.ResolveLoad(1, c.BeginLoad(1), stateOptions(1), nil))
	require.NoError(t, c.Select(1, 10))
	require.True(t, c.ResolveLoad(2, c.BeginLoad(2), []Option{{ID: 100, Label: "Mumbai"}}, nil))
	require.NoError(t, c.Select(2, 100))

	// Switching country invalidates the Indian state and city.
	require.NoError(t, c.Select(0, 2))

	assert.Equal(t, int64(2), c.Selected(0))
	assert.Equal(t, int64(0), c.Selected(1))
	assert.Equal(t, int64(0), c.Selected(2))
	assert.Empty(t, c.Options(1), "stale state options are gone")
	assert.Empty(t, c.Options(2))
}

func TestSelectEmptyValueClearsDescendants(t *testing.T) {
	c := newGeoCascade(t)
	require.NoError(t, c.Select(0, 1))
	require.True(t, c.ResolveLoad(1, c.BeginLoad(1), stateOptions(1), nil))
	require.NoError(t, c.Select(1, 10))

	require.NoError(t, c.Select(0, 0))

	assert.Equal(t, int64(0), c.Selected(0))
	assert.Empty(t, c.Options(1))
	assert.Empty(t, c.Options(2))
}

func TestSelectRejectsUnknownOption(t *testing.T) {
	c := newGeoCascade(t)
	err := c.Select(0, 99)
	assert.Error(t, err)
	assert.Equal(t, int64(0), c.Selected(0))
}

func TestStaleLoadDiscarded(t *testing.T) {
	c := newGeoCascade(t)
	require.NoError(t, c.Select(0, 1))

	stale := c.BeginLoad(1)
	fresh := c.BeginLoad(1)

	assert.False(t, c.ResolveLoad(1, stale, stateOptions(2), nil))
	assert.Empty(t, c.Options(1), "a superseded load must not land")
	assert.True(t, c.ResolveLoad(1, fresh, stateOptions(1), nil))
	assert.Len(t, c.Options(1), 2)
}

func TestParentChangeInvalidatesInFlightChildLoad(t *testing.T) {
	c := newGeoCascade(t)
	require.NoError(t, c.Select(0, 1))
	token := c.BeginLoad(1)

	// The country changes while the Indian states are still loading.
	require.NoError(t, c.Select(0, 2))

	assert.False(t, c.ResolveLoad(1, token, stateOptions(1), nil))
	assert.Empty(t, c.Options(1))
}

func TestFailedLoadKeepsParentSelection(t *testing.T) {
	c := newGeoCascade(t)
	require.NoError(t, c.Select(0, 1))

	ok := c.ResolveLoad(1, c.BeginLoad(1), nil, errors.New("backend down"))

	assert.True(t, ok)
	assert.Equal(t, int64(1), c.Selected(0), "the selection made stays in place")
	assert.Empty(t, c.Options(1), "failed child level is empty, not stale")
	assert.Empty(t, c.Options(2))
}

func TestReloadDropsSelectionMissingFromNewOptions(t *testing.T) {
	c := newGeoCascade(t)
	require.NoError(t, c.Select(0, 1))
	require.True(t, c.ResolveLoad(1, c.BeginLoad(1), stateOptions(1), nil))
	require.NoError(t, c.Select(1, 10))

	// A refreshed option set that no longer contains the selection clears it.
	require.True(t, c.ResolveLoad(1, c.BeginLoad(1), stateOptions(2), nil))

	assert.Equal(t, int64(0), c.Selected(1))
	assert.Empty(t, c.Options(2))
}
