// ABOUTME: Typed accessors for every backend collection the console edits
// ABOUTME: One Resource per master-data screen plus the travel workflow calls
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/voyagehq/tripdesk/itinerary"
	"github.com/voyagehq/tripdesk/models"
)

func (c *Client) Companies() Resource[models.Company] {
	return NewResource[models.Company](c, "/companies/")
}

func (c *Client) Departments() Resource[models.Department] {
	return NewResource[models.Department](c, "/departments/")
}

func (c *Client) Designations() Resource[models.Designation] {
	return NewResource[models.Designation](c, "/designations/")
}

func (c *Client) Countries() Resource[models.Country] {
	return NewResource[models.Country](c, "/countries/")
}

func (c *Client) States() Resource[models.State] {
	return NewResource[models.State](c, "/states/")
}

func (c *Client) Cities() Resource[models.City] {
	return NewResource[models.City](c, "/cities/")
}

func (c *Client) Locations() Resource[models.Location] {
	return NewResource[models.Location](c, "/locations/")
}

func (c *Client) Grades() Resource[models.Grade] {
	return NewResource[models.Grade](c, "/grades/")
}

func (c *Client) TravelModes() Resource[models.TravelMode] {
	return NewResource[models.TravelMode](c, "/travel-modes/")
}

func (c *Client) ApprovalMatrices() Resource[models.ApprovalMatrix] {
	return NewResource[models.ApprovalMatrix](c, "/approval-matrices/")
}

func (c *Client) ConveyanceRates() Resource[models.ConveyanceRate] {
	return NewResource[models.ConveyanceRate](c, "/conveyance-rates/")
}

func (c *Client) Accommodations() Resource[models.Accommodation] {
	return NewResource[models.Accommodation](c, "/accommodations/")
}

func (c *Client) Users() Resource[models.User] {
	return NewResource[models.User](c, "/users/")
}

func (c *Client) TravelApplications() Resource[models.TravelApplication] {
	return NewResource[models.TravelApplication](c, "/travel-applications/")
}

func (c *Client) Bookings() Resource[models.BookingDetail] {
	return NewResource[models.BookingDetail](c, "/bookings/")
}

// Itinerary fetches one travel application's day-grouped timeline. The
// backend answers with either a flat segment list or days that are
// already grouped; both come back as days, grouped input unchanged.
func (c *Client) Itinerary(ctx context.Context, applicationID int64) ([]itinerary.Day, error) {
	path := "/travel-applications/" + strconv.FormatInt(applicationID, 10) + "/itinerary/"
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	return itinerary.Decode(raw)
}
