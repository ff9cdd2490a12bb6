// ABOUTME: MCP server subcommand
// ABOUTME: Exposes master-data and travel tools over stdio
package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/handlers"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(client *api.Client) error {
	log.Info("Starting tripdesk MCP server")

	gradeHandlers := handlers.NewGradeHandlers(client)
	locationHandlers := handlers.NewLocationHandlers(client)
	matrixHandlers := handlers.NewMatrixHandlers(client)
	applicationHandlers := handlers.NewApplicationHandlers(client)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tripdesk",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_grade",
		Description: "Add a new employee grade",
	}, gradeHandlers.AddGrade)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_grades",
		Description: "Search grades by name",
	}, gradeHandlers.FindGrades)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_grade",
		Description: "Update an existing grade's name or level",
	}, gradeHandlers.UpdateGrade)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "deactivate_grade",
		Description: "Retire a grade without deleting it",
	}, gradeHandlers.DeactivateGrade)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_location",
		Description: "Add a new office location under a city",
	}, locationHandlers.AddLocation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_locations",
		Description: "Search locations, optionally filtered by country, state, or city",
	}, locationHandlers.FindLocations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_approval_matrix",
		Description: "Create approval matrix rows for one or many grades from a shared payload",
	}, matrixHandlers.CreateApprovalMatrix)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_approval_matrices",
		Description: "List approval matrix rows, optionally filtered by grade",
	}, matrixHandlers.FindApprovalMatrices)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_travel_applications",
		Description: "Search travel applications by status or purpose",
	}, applicationHandlers.FindApplications)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_itinerary",
		Description: "Get a travel application's itinerary grouped by day",
	}, applicationHandlers.GetItinerary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_booking_document",
		Description: "Get the download URL for a booking's document",
	}, applicationHandlers.GetBookingDocument)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		return err
	}
	return nil
}
