// ABOUTME: Tests for MCP tool handlers against a stub backend
// ABOUTME: Covers grade search, matrix fan-out, and itinerary grouping
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/voyagehq/tripdesk/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := api.NewClient(server.URL, "", 5*time.Second)
	if err != nil {
		t.Fatalf("Failed to build client: %v", err)
	}
	return client
}

func TestFindGradesFiltersInactiveAndByQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"name":"Senior Manager","level":5,"is_active":true},
			{"id":2,"name":"Junior Analyst","level":1,"is_active":true},
			{"id":3,"name":"Retired Manager","level":4,"is_active":false}
		]`))
	})
	h := NewGradeHandlers(client)

	_, out, err := h.FindGrades(context.Background(), nil, FindGradesInput{Query: "manager"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Grades) != 1 || out.Grades[0].ID != 1 {
		t.Errorf("Expected only the active manager, got %+v", out.Grades)
	}

	_, out, err = h.FindGrades(context.Background(), nil, FindGradesInput{Query: "manager", IncludeInactive: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Grades) != 2 {
		t.Errorf("Expected both managers with include_inactive, got %+v", out.Grades)
	}
}

func TestAddGradeValidatesBeforeCalling(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte(`{}`))
	})
	h := NewGradeHandlers(client)

	_, _, err := h.AddGrade(context.Background(), nil, AddGradeInput{Name: "", Level: 1})
	if err == nil {
		t.Fatal("Missing name should fail validation")
	}
	if called {
		t.Error("Invalid input must not reach the backend")
	}
}

func TestCreateApprovalMatrixFansOut(t *testing.T) {
	var gradeIDs []int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var row map[string]any
		json.NewDecoder(r.Body).Decode(&row)
		gradeIDs = append(gradeIDs, int64(row["grade"].(float64)))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	})
	h := NewMatrixHandlers(client)

	_, out, err := h.CreateApprovalMatrix(context.Background(), nil, CreateMatrixInput{
		GradeIDs:              []int64{4, 5, 6},
		CompanyID:             1,
		Level:                 1,
		ApproverDesignationID: 9,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Created != 3 || out.Requested != 3 {
		t.Errorf("Expected 3 of 3 created, got %+v", out)
	}
	if len(gradeIDs) != 3 || gradeIDs[0] != 4 || gradeIDs[2] != 6 {
		t.Errorf("Each row should carry its own grade, got %v", gradeIDs)
	}
}

func TestCreateApprovalMatrixReportsPartialFailure(t *testing.T) {
	creates := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		creates++
		if creates == 2 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"duplicate row"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	})
	h := NewMatrixHandlers(client)

	_, out, err := h.CreateApprovalMatrix(context.Background(), nil, CreateMatrixInput{
		GradeIDs:              []int64{4, 5, 6},
		CompanyID:             1,
		Level:                 1,
		ApproverDesignationID: 9,
	})
	if err == nil {
		t.Fatal("Expected the partial failure to surface")
	}
	if out.Created != 1 {
		t.Errorf("Expected 1 created before the failure, got %d", out.Created)
	}
	if !strings.Contains(err.Error(), "created 1 of 3") {
		t.Errorf("Error should report the partial count, got %v", err)
	}
	if creates != 2 {
		t.Errorf("Creation must stop at the failure, got %d calls", creates)
	}
}

func TestGetItineraryGroupsByDay(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/travel-applications/9/itinerary/") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"id":1,"type":"flight","departure_date":"2026-03-01","from_city":"Mumbai","to_city":"Delhi"},
			{"id":2,"type":"hotel","start_date":"2026-03-01","to_city":"Delhi","booking":7},
			{"id":3,"type":"train","departure_date":"2026-03-02","from_city":"Delhi","to_city":"Agra"}
		]`))
	})
	h := NewApplicationHandlers(client)

	_, out, err := h.GetItinerary(context.Background(), nil, GetItineraryInput{ApplicationID: 9})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(out.Days) != 2 {
		t.Fatalf("Expected 2 days, got %d", len(out.Days))
	}
	if out.Days[0].Date != "2026-03-01" || len(out.Days[0].Segments) != 2 {
		t.Errorf("First day should hold both segments, got %+v", out.Days[0])
	}
	if out.Days[0].Segments[1].BookingID != 7 {
		t.Error("Booking ID should carry through")
	}
}

func TestGetBookingDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":7,"reference":"PNR-123","document_path":"documents/pnr-123.pdf"}`))
	})
	h := NewApplicationHandlers(client)

	_, out, err := h.GetBookingDocument(context.Background(), nil, GetBookingDocumentInput{BookingID: 7})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Reference != "PNR-123" {
		t.Errorf("Expected reference PNR-123, got %q", out.Reference)
	}
	if !strings.Contains(out.DocumentURL, "path=documents%2Fpnr-123.pdf") {
		t.Errorf("Document URL should embed the path, got %q", out.DocumentURL)
	}
}
