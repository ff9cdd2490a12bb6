// ABOUTME: Travel mode, user, and travel application CLI commands
// ABOUTME: Application view prints the itinerary grouped by day
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/models"
)

// ListTravelModesCommand lists travel modes
func ListTravelModesCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list-travel-modes", flag.ExitOnError)
	all := fs.Bool("all", false, "Include inactive modes")
	fs.Parse(args)

	ctx, cancel := commandCtx()
	defer cancel()
	result, err := client.TravelModes().List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list travel modes: %w", err)
	}

	shown := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tACTIVE")
	fmt.Fprintln(w, "--\t----\t----\t------")
	for _, mode := range result.Items {
		if !*all && !mode.IsActive {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\n", mode.ID, mode.Name, mode.Kind, mode.IsActive)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("No travel modes found")
	}
	return nil
}

// AddTravelModeCommand creates a travel mode
func AddTravelModeCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("add-travel-mode", flag.ExitOnError)
	name := fs.String("name", "", "Mode name (required)")
	kind := fs.String("kind", "", "Mode kind: flight, train, car, or bus (required)")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *kind == "" {
		return fmt.Errorf("--kind is required")
	}

	mode := models.TravelMode{Name: *name, Kind: *kind, IsActive: true}
	if err := models.Validate(mode); err != nil {
		return err
	}

	ctx, cancel := commandCtx()
	defer cancel()
	created, err := client.TravelModes().Create(ctx, mode)
	if err != nil {
		return fmt.Errorf("failed to create travel mode: %w", err)
	}

	fmt.Printf("✓ Travel mode created: %s (ID: %d)\n", created.Name, created.ID)
	return nil
}

// ListUsersCommand lists users, optionally scoped to a company
func ListUsersCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list-users", flag.ExitOnError)
	company := fs.Int64("company", 0, "Filter by company ID")
	query := fs.String("query", "", "Filter by name, email, or employee code")
	all := fs.Bool("all", false, "Include inactive users")
	fs.Parse(args)

	ctx, cancel := commandCtx()
	defer cancel()
	var filters map[string][]string
	if *company != 0 {
		filters = api.ScopedTo("company", *company)
	}
	result, err := client.Users().List(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	shown := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCODE\tADMIN\tACTIVE")
	fmt.Fprintln(w, "--\t----\t-----\t----\t-----\t------")
	for _, u := range result.Items {
		if !*all && !u.IsActive {
			continue
		}
		if *query != "" && !matchesQuery(*query, u.Name, u.Email, u.EmployeeCode) {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\t%v\n",
			u.ID, u.Name, u.Email, u.EmployeeCode, u.IsAdmin, u.IsActive)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("No users found")
		return nil
	}
	fmt.Printf("\nTotal: %d user(s)\n", shown)
	return nil
}

// ListApplicationsCommand lists travel applications
func ListApplicationsCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list-applications", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status")
	fs.Parse(args)

	ctx, cancel := commandCtx()
	defer cancel()
	result, err := client.TravelApplications().List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list applications: %w", err)
	}

	shown := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAPPLICANT\tPURPOSE\tSTATUS\tFROM\tTO")
	fmt.Fprintln(w, "--\t---------\t-------\t------\t----\t--")
	for _, app := range result.Items {
		if *status != "" && app.Status != *status {
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			app.ID, app.ApplicantID, truncate(app.Purpose, 40), app.Status, app.FromDate, app.ToDate)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("No applications found")
		return nil
	}
	fmt.Printf("\nTotal: %d application(s)\n", shown)
	return nil
}

// ViewApplicationCommand prints one application with its itinerary
func ViewApplicationCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("view-application", flag.ExitOnError)
	id := fs.Int64("id", 0, "Application ID (required)")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("--id is required")
	}

	ctx, cancel := commandCtx()
	defer cancel()
	app, err := client.TravelApplications().Get(ctx, *id)
	if err != nil {
		return fmt.Errorf("failed to fetch application %d: %w", *id, err)
	}

	fmt.Printf("Application %d\n", app.ID)
	fmt.Printf("  Applicant: %d\n", app.ApplicantID)
	fmt.Printf("  Purpose:   %s\n", app.Purpose)
	fmt.Printf("  Status:    %s\n", app.Status)
	fmt.Printf("  Dates:     %s to %s\n", app.FromDate, app.ToDate)
	if app.AdvanceAmount != 0 {
		fmt.Printf("  Advance:   %d\n", app.AdvanceAmount)
	}

	days, err := client.Itinerary(ctx, *id)
	if err != nil {
		return fmt.Errorf("failed to fetch itinerary: %w", err)
	}
	if len(days) == 0 {
		fmt.Println("\nNo itinerary segments")
		return nil
	}

	fmt.Println("\nItinerary:")
	for _, day := range days {
		fmt.Printf("  %s\n", day.Date)
		for _, seg := range day.Segments {
			line := fmt.Sprintf("    %s %s -> %s", seg.Type, seg.FromCity, seg.ToCity)
			if seg.Type == models.SegmentHotel {
				line = fmt.Sprintf("    hotel %s", seg.ToCity)
			}
			if seg.BookingID != 0 {
				line += fmt.Sprintf(" (booking %d)", seg.BookingID)
			}
			fmt.Println(line)
		}
	}
	return nil
}

// OpenDocumentCommand prints the download URL for a booking's document
func OpenDocumentCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("open-document", flag.ExitOnError)
	booking := fs.Int64("booking", 0, "Booking ID (required)")
	fs.Parse(args)

	if *booking == 0 {
		return fmt.Errorf("--booking is required")
	}

	ctx, cancel := commandCtx()
	defer cancel()
	detail, err := client.Bookings().Get(ctx, *booking)
	if err != nil {
		return fmt.Errorf("failed to fetch booking %d: %w", *booking, err)
	}
	if detail.DocumentPath == "" {
		return fmt.Errorf("booking %d has no document", *booking)
	}

	fmt.Println(client.FileURL(detail.DocumentPath))
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
