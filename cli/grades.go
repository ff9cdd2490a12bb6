// ABOUTME: Grade CLI commands
// ABOUTME: Human-friendly commands for managing employee grades
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/models"
)

const commandTimeout = 30 * time.Second

func commandCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// AddGradeCommand creates a new grade
func AddGradeCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("add-grade", flag.ExitOnError)
	name := fs.String("name", "", "Grade name (required)")
	level := fs.Int("level", 0, "Seniority level, higher is more senior")
	fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	grade := models.Grade{
		Name:     *name,
		Level:    *level,
		IsActive: true,
	}
	if err := models.Validate(grade); err != nil {
		return err
	}

	ctx, cancel := commandCtx()
	defer cancel()
	created, err := client.Grades().Create(ctx, grade)
	if err != nil {
		return fmt.Errorf("failed to create grade: %w", err)
	}

	fmt.Printf("✓ Grade created: %s (ID: %d)\n", created.Name, created.ID)
	return nil
}

// ListGradesCommand lists grades
func ListGradesCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list-grades", flag.ExitOnError)
	query := fs.String("query", "", "Filter by name")
	all := fs.Bool("all", false, "Include inactive grades")
	fs.Parse(args)

	ctx, cancel := commandCtx()
	defer cancel()
	result, err := client.Grades().List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list grades: %w", err)
	}

	grades := result.Items
	shown := 0

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLEVEL\tACTIVE")
	fmt.Fprintln(w, "--\t----\t-----\t------")
	for _, g := range grades {
		if !*all && !g.IsActive {
			continue
		}
		if *query != "" && !matchesQuery(*query, g.Name) {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%v\n", g.ID, g.Name, g.Level, g.IsActive)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("No grades found")
		return nil
	}
	fmt.Printf("\nTotal: %d grade(s)\n", shown)
	return nil
}

// UpdateGradeCommand updates an existing grade
func UpdateGradeCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("update-grade", flag.ExitOnError)
	id := fs.Int64("id", 0, "Grade ID (required)")
	name := fs.String("name", "", "New grade name")
	level := fs.Int("level", -1, "New seniority level")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("--id is required")
	}

	ctx, cancel := commandCtx()
	defer cancel()
	grade, err := client.Grades().Get(ctx, *id)
	if err != nil {
		return fmt.Errorf("failed to fetch grade %d: %w", *id, err)
	}

	if *name != "" {
		grade.Name = *name
	}
	if *level > 0 {
		grade.Level = *level
	}
	if err := models.Validate(grade); err != nil {
		return err
	}

	updated, err := client.Grades().Update(ctx, *id, grade)
	if err != nil {
		return fmt.Errorf("failed to update grade: %w", err)
	}

	fmt.Printf("✓ Grade updated: %s (ID: %d)\n", updated.Name, updated.ID)
	return nil
}

// DeactivateGradeCommand retires a grade without deleting it
func DeactivateGradeCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("deactivate-grade", flag.ExitOnError)
	id := fs.Int64("id", 0, "Grade ID (required)")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("--id is required")
	}

	ctx, cancel := commandCtx()
	defer cancel()
	if err := client.Grades().Deactivate(ctx, *id); err != nil {
		return fmt.Errorf("failed to deactivate grade: %w", err)
	}

	fmt.Printf("✓ Grade %d deactivated\n", *id)
	return nil
}

func matchesQuery(query string, fields ...string) bool {
	needle := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
