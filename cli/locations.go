// ABOUTME: Location and geography CLI commands
// ABOUTME: Lists office locations filtered by country, state, or city
package cli

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/models"
)

// ListLocationsCommand lists locations, optionally scoped to a geography
func ListLocationsCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list-locations", flag.ExitOnError)
	country := fs.Int64("country", 0, "Filter by country ID")
	state := fs.Int64("state", 0, "Filter by state ID")
	city := fs.Int64("city", 0, "Filter by city ID")
	all := fs.Bool("all", false, "Include inactive locations")
	fs.Parse(args)

	filters := url.Values{}
	if *country != 0 {
		filters.Set("country", strconv.FormatInt(*country, 10))
	}
	if *state != 0 {
		filters.Set("state", strconv.FormatInt(*state, 10))
	}
	if *city != 0 {
		filters.Set("city", strconv.FormatInt(*city, 10))
	}

	ctx, cancel := commandCtx()
	defer cancel()
	result, err := client.Locations().List(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list locations: %w", err)
	}

	shown := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCODE\tCITY\tACTIVE")
	fmt.Fprintln(w, "--\t----\t----\t----\t------")
	for _, loc := range result.Items {
		if !*all && !loc.IsActive {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%v\n", loc.ID, loc.Name, orDash(loc.Code), loc.CityID, loc.IsActive)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("No locations found")
		return nil
	}
	fmt.Printf("\nTotal: %d location(s)\n", shown)
	return nil
}

// AddLocationCommand creates a new office location
func AddLocationCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("add-location", flag.ExitOnError)
	name := fs.String("name", "", "Location name (required)")
	code := fs.String("code", "", "Short location code")
	city := fs.Int64("city", 0, "City ID (required)")
	address := fs.String("address", "", "Street address")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *city == 0 {
		return fmt.Errorf("--city is required")
	}

	location := models.Location{
		Name:     *name,
		Code:     *code,
		CityID:   *city,
		Address:  *address,
		IsActive: true,
	}
	if err := models.Validate(location); err != nil {
		return err
	}

	ctx, cancel := commandCtx()
	defer cancel()
	created, err := client.Locations().Create(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}

	fmt.Printf("✓ Location created: %s (ID: %d)\n", created.Name, created.ID)
	return nil
}

// ListGeographyCommand walks the country, state, city chain for one country
func ListGeographyCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list-geography", flag.ExitOnError)
	country := fs.Int64("country", 0, "Country ID (required)")
	fs.Parse(args)

	if *country == 0 {
		return fmt.Errorf("--country is required")
	}

	ctx, cancel := commandCtx()
	defer cancel()
	states, err := client.States().List(ctx, api.ScopedTo("country", *country))
	if err != nil {
		return fmt.Errorf("failed to list states: %w", err)
	}

	for _, s := range states.Items {
		fmt.Printf("%s (ID: %d)\n", s.Name, s.ID)
		cities, err := client.Cities().List(ctx, api.ScopedTo("state", s.ID))
		if err != nil {
			return fmt.Errorf("failed to list cities of %s: %w", s.Name, err)
		}
		for _, c := range cities.Items {
			fmt.Printf("  %s (ID: %d)\n", c.Name, c.ID)
		}
	}
	if len(states.Items) == 0 {
		fmt.Println("No states found for this country")
	}
	return nil
}
