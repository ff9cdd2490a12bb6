// ABOUTME: Travel application MCP tool handlers
// ABOUTME: Search, itinerary grouped by day, and booking document lookup
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voyagehq/tripdesk/api"
)

type ApplicationHandlers struct {
	client *api.Client
}

func NewApplicationHandlers(client *api.Client) *ApplicationHandlers {
	return &ApplicationHandlers{client: client}
}

type FindApplicationsInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by workflow status"`
	Query  string `json:"query,omitempty" jsonschema:"Substring to match against the purpose"`
}

type ApplicationOutput struct {
	ID            int64  `json:"id"`
	ApplicantID   int64  `json:"applicant_id"`
	Purpose       string `json:"purpose"`
	Status        string `json:"status"`
	FromDate      string `json:"from_date"`
	ToDate        string `json:"to_date"`
	AdvanceAmount int64  `json:"advance_amount,omitempty"`
}

type FindApplicationsOutput struct {
	Applications []ApplicationOutput `json:"applications"`
}

func (h *ApplicationHandlers) FindApplications(ctx context.Context, request *mcp.CallToolRequest, input FindApplicationsInput) (*mcp.CallToolResult, FindApplicationsOutput, error) {
	result, err := h.client.TravelApplications().List(ctx, nil)
	if err != nil {
		return nil, FindApplicationsOutput{}, fmt.Errorf("failed to list applications: %w", err)
	}

	out := FindApplicationsOutput{Applications: []ApplicationOutput{}}
	needle := strings.ToLower(input.Query)
	for _, app := range result.Items {
		if input.Status != "" && app.Status != input.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(app.Purpose), needle) {
			continue
		}
		out.Applications = append(out.Applications, ApplicationOutput{
			ID:            app.ID,
			ApplicantID:   app.ApplicantID,
			Purpose:       app.Purpose,
			Status:        app.Status,
			FromDate:      app.FromDate,
			ToDate:        app.ToDate,
			AdvanceAmount: app.AdvanceAmount,
		})
	}
	return nil, out, nil
}

type GetItineraryInput struct {
	ApplicationID int64 `json:"application_id" jsonschema:"Travel application ID (required)"`
}

type SegmentOutput struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	FromCity  string `json:"from_city,omitempty"`
	ToCity    string `json:"to_city,omitempty"`
	BookingID int64  `json:"booking_id,omitempty"`
	Details   string `json:"details,omitempty"`
}

type DayOutput struct {
	Date     string          `json:"date"`
	Segments []SegmentOutput `json:"segments"`
}

type GetItineraryOutput struct {
	Days []DayOutput `json:"days"`
}

func (h *ApplicationHandlers) GetItinerary(ctx context.Context, request *mcp.CallToolRequest, input GetItineraryInput) (*mcp.CallToolResult, GetItineraryOutput, error) {
	if input.ApplicationID == 0 {
		return nil, GetItineraryOutput{}, fmt.Errorf("application_id is required")
	}

	days, err := h.client.Itinerary(ctx, input.ApplicationID)
	if err != nil {
		return nil, GetItineraryOutput{}, fmt.Errorf("failed to fetch itinerary: %w", err)
	}

	out := GetItineraryOutput{Days: []DayOutput{}}
	for _, day := range days {
		d := DayOutput{Date: day.Date, Segments: []SegmentOutput{}}
		for _, seg := range day.Segments {
			d.Segments = append(d.Segments, SegmentOutput{
				ID:        seg.ID,
				Type:      seg.Type,
				FromCity:  seg.FromCity,
				ToCity:    seg.ToCity,
				BookingID: seg.BookingID,
				Details:   seg.Details,
			})
		}
		out.Days = append(out.Days, d)
	}
	return nil, out, nil
}

type GetBookingDocumentInput struct {
	BookingID int64 `json:"booking_id" jsonschema:"Booking ID (required)"`
}

type GetBookingDocumentOutput struct {
	BookingID   int64  `json:"booking_id"`
	Reference   string `json:"reference"`
	DocumentURL string `json:"document_url,omitempty"`
}

func (h *ApplicationHandlers) GetBookingDocument(ctx context.Context, request *mcp.CallToolRequest, input GetBookingDocumentInput) (*mcp.CallToolResult, GetBookingDocumentOutput, error) {
	if input.BookingID == 0 {
		return nil, GetBookingDocumentOutput{}, fmt.Errorf("booking_id is required")
	}

	detail, err := h.client.Bookings().Get(ctx, input.BookingID)
	if err != nil {
		return nil, GetBookingDocumentOutput{}, fmt.Errorf("failed to fetch booking %d: %w", input.BookingID, err)
	}

	out := GetBookingDocumentOutput{BookingID: input.BookingID, Reference: detail.Reference}
	if detail.DocumentPath != "" {
		out.DocumentURL = h.client.FileURL(detail.DocumentPath)
	}
	return nil, out, nil
}
