// ABOUTME: Tests for the generic CRUD resource
// ABOUTME: Covers list envelope normalization, soft delete, and hard delete
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagehq/tripdesk/models"
)

func TestDecodeListBareArray(t *testing.T) {
	raw := json.RawMessage(`[{"id":1,"name":"L1","level":1},{"id":2,"name":"L2","level":2}]`)

	result, err := decodeList[models.Grade](raw)
	require.NoError(t, err)

	assert.Len(t, result.Items, 2)
	assert.Equal(t, 1, result.Page.CurrentPage)
	assert.Equal(t, 1, result.Page.TotalPages)
	assert.Equal(t, 2, result.Page.Count)
}

func TestDecodeListResultsEnvelope(t *testing.T) {
	raw := json.RawMessage(`{
		"results":[{"id":1,"name":"L1","level":1}],
		"current_page":2,"total_pages":5,"count":41,
		"next":"/grades/?page=3","previous":"/grades/?page=1"
	}`)

	result, err := decodeList[models.Grade](raw)
	require.NoError(t, err)

	assert.Len(t, result.Items, 1)
	assert.Equal(t, 2, result.Page.CurrentPage)
	assert.Equal(t, 5, result.Page.TotalPages)
	assert.Equal(t, 41, result.Page.Count)
	require.NotNil(t, result.Page.Next)
	assert.Equal(t, "/grades/?page=3", *result.Page.Next)
}

func TestDecodeListDataEnvelope(t *testing.T) {
	raw := json.RawMessage(`{"data":[{"id":7,"name":"L7","level":7}]}`)

	result, err := decodeList[models.Grade](raw)
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, int64(7), result.Items[0].ID)
	// Missing pagination fields normalize to a single page.
	assert.Equal(t, 1, result.Page.CurrentPage)
	assert.Equal(t, 1, result.Page.TotalPages)
	assert.Equal(t, 1, result.Page.Count)
}

func TestDeactivateSendsPatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		w.Write([]byte(`{}`))
	})

	res := NewResource[models.Grade](client, "/grades/")
	require.NoError(t, res.Deactivate(context.Background(), 12))

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/grades/12/", gotPath)
	assert.Equal(t, map[string]any{"is_active": false}, gotBody)
}

func TestDeleteUsesDeleteMethod(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	res := NewResource[models.Grade](client, "/grades/")
	require.NoError(t, res.Delete(context.Background(), 3))

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/grades/3/", gotPath)
}

func TestListPassesFilters(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	})

	res := NewResource[models.State](client, "/states/")
	_, err := res.List(context.Background(), ScopedTo("country", 4))
	require.NoError(t, err)

	assert.Equal(t, "country=4", gotQuery)
}

func TestItineraryFetchGroupsFlatSegments(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/travel-applications/9/itinerary/", r.URL.Path)
		w.Write([]byte(`[{"id":1,"type":"flight","departure_date":"2026-03-01","from_city":"Mumbai","to_city":"Delhi"}]`))
	})

	days, err := client.Itinerary(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2026-03-01", days[0].Date)
	require.Len(t, days[0].Segments, 1)
	assert.Equal(t, "flight", days[0].Segments[0].Type)
}

func TestItineraryFetchKeepsGroupedResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date":"2026-03-02","segments":[{"id":3,"type":"train","from_city":"Delhi","to_city":"Agra"}]},
			{"date":"2026-03-01","segments":[{"id":1,"type":"flight","from_city":"Mumbai","to_city":"Delhi"}]}
		]`))
	})

	days, err := client.Itinerary(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-03-02", days[0].Date)
	assert.Equal(t, "2026-03-01", days[1].Date)
}

func TestCreateRoundTrip(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in models.Grade
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &in))
		in.ID = 99
		out, _ := json.Marshal(in)
		w.WriteHeader(http.StatusCreated)
		w.Write(out)
	})

	res := NewResource[models.Grade](client, "/grades/")
	created, err := res.Create(context.Background(), models.Grade{Name: "Senior", Level: 4, IsActive: true})
	require.NoError(t, err)

	assert.Equal(t, int64(99), created.ID)
	assert.Equal(t, "Senior", created.Name)
}
