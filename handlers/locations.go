// ABOUTME: Location MCP tool handlers
// ABOUTME: Implements add_location and find_locations with geography filters
package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/models"
)

type LocationHandlers struct {
	client *api.Client
}

func NewLocationHandlers(client *api.Client) *LocationHandlers {
	return &LocationHandlers{client: client}
}

type AddLocationInput struct {
	Name    string `json:"name" jsonschema:"Location name (required)"`
	Code    string `json:"code,omitempty" jsonschema:"Short location code"`
	CityID  int64  `json:"city_id" jsonschema:"City ID the location belongs to (required)"`
	Address string `json:"address,omitempty" jsonschema:"Street address"`
}

type LocationOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	CityID   int64  `json:"city_id"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"is_active"`
}

func (h *LocationHandlers) AddLocation(ctx context.Context, request *mcp.CallToolRequest, input AddLocationInput) (*mcp.CallToolResult, LocationOutput, error) {
	location := models.Location{
		Name:     input.Name,
		Code:     input.Code,
		CityID:   input.CityID,
		Address:  input.Address,
		IsActive: true,
	}
	if err := models.Validate(location); err != nil {
		return nil, LocationOutput{}, err
	}

	created, err := h.client.Locations().Create(ctx, location)
	if err != nil {
		return nil, LocationOutput{}, fmt.Errorf("failed to create location: %w", err)
	}
	return nil, locationToOutput(created), nil
}

type FindLocationsInput struct {
	CountryID       int64 `json:"country_id,omitempty" jsonschema:"Filter by country ID"`
	StateID         int64 `json:"state_id,omitempty" jsonschema:"Filter by state ID"`
	CityID          int64 `json:"city_id,omitempty" jsonschema:"Filter by city ID"`
	IncludeInactive bool  `json:"include_inactive,omitempty" jsonschema:"Include deactivated locations"`
}

type FindLocationsOutput struct {
	Locations []LocationOutput `json:"locations"`
}

func (h *LocationHandlers) FindLocations(ctx context.Context, request *mcp.CallToolRequest, input FindLocationsInput) (*mcp.CallToolResult, FindLocationsOutput, error) {
	filters := url.Values{}
	if input.CountryID != 0 {
		filters.Set("country", strconv.FormatInt(input.CountryID, 10))
	}
	if input.StateID != 0 {
		filters.Set("state", strconv.FormatInt(input.StateID, 10))
	}
	if input.CityID != 0 {
		filters.Set("city", strconv.FormatInt(input.CityID, 10))
	}

	result, err := h.client.Locations().List(ctx, filters)
	if err != nil {
		return nil, FindLocationsOutput{}, fmt.Errorf("failed to list locations: %w", err)
	}

	out := FindLocationsOutput{Locations: []LocationOutput{}}
	for _, loc := range result.Items {
		if !input.IncludeInactive && !loc.IsActive {
			continue
		}
		out.Locations = append(out.Locations, locationToOutput(loc))
	}
	return nil, out, nil
}

func locationToOutput(loc models.Location) LocationOutput {
	return LocationOutput{
		ID:       loc.ID,
		Name:     loc.Name,
		Code:     loc.Code,
		CityID:   loc.CityID,
		Address:  loc.Address,
		IsActive: loc.IsActive,
	}
}
