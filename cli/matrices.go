// ABOUTME: Approval matrix CLI commands
// ABOUTME: One shared payload can fan out to many grades in one run
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/models"
	"github.com/voyagehq/tripdesk/screens"
)

// AddApprovalMatrixCommand creates approval matrix rows. With a single
// --grades value it creates one row; a comma-separated list creates one
// row per grade from the same payload, reporting how many succeeded.
func AddApprovalMatrixCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("add-approval-matrix", flag.ExitOnError)
	grades := fs.String("grades", "", "Grade ID, or comma-separated grade IDs (required)")
	company := fs.Int64("company", 0, "Company ID (required)")
	level := fs.Int("level", 1, "Approver chain level")
	approver := fs.Int64("approver", 0, "Approver designation ID (required)")
	minAmount := fs.Int64("min-amount", 0, "Band lower bound in minor units")
	maxAmount := fs.Int64("max-amount", 0, "Band upper bound in minor units")
	from := fs.String("from", "", "Effective from (YYYY-MM-DD)")
	to := fs.String("to", "", "Effective to (YYYY-MM-DD)")
	fs.Parse(args)

	if *grades == "" {
		return fmt.Errorf("--grades is required")
	}
	if *company == 0 {
		return fmt.Errorf("--company is required")
	}
	if *approver == 0 {
		return fmt.Errorf("--approver is required")
	}

	targets, err := parseIDList(*grades)
	if err != nil {
		return fmt.Errorf("bad --grades value: %w", err)
	}

	base := models.ApprovalMatrix{
		CompanyID:             *company,
		Level:                 *level,
		ApproverDesignationID: *approver,
		MinAmount:             *minAmount,
		MaxAmount:             *maxAmount,
		EffectiveFrom:         *from,
		EffectiveTo:           *to,
		IsActive:              true,
	}

	ctx, cancel := commandCtx()
	defer cancel()
	created, batchErr := screens.BatchCreate(ctx, targets, func(ctx context.Context, gradeID int64) error {
		row := base
		row.GradeID = gradeID
		if err := models.Validate(row); err != nil {
			return err
		}
		_, err := client.ApprovalMatrices().Create(ctx, row)
		return err
	})

	// Creation stops at the first failure; earlier rows stay persisted.
	if batchErr != nil {
		return fmt.Errorf("created %d of %d rows before a failure: %w", created, len(targets), batchErr)
	}
	fmt.Printf("✓ Created %d approval matrix row(s)\n", created)
	return nil
}

// ListApprovalMatricesCommand lists matrix rows, optionally per grade
func ListApprovalMatricesCommand(client *api.Client, args []string) error {
	fs := flag.NewFlagSet("list-approval-matrices", flag.ExitOnError)
	grade := fs.Int64("grade", 0, "Filter by grade ID")
	all := fs.Bool("all", false, "Include inactive rows")
	fs.Parse(args)

	ctx, cancel := commandCtx()
	defer cancel()
	var filters map[string][]string
	if *grade != 0 {
		filters = api.ScopedTo("grade", *grade)
	}
	result, err := client.ApprovalMatrices().List(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list approval matrices: %w", err)
	}

	shown := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tGRADE\tLEVEL\tAPPROVER\tBAND\tACTIVE")
	fmt.Fprintln(w, "--\t-----\t-----\t--------\t----\t------")
	for _, row := range result.Items {
		if !*all && !row.IsActive {
			continue
		}
		band := fmt.Sprintf("%d-%d", row.MinAmount, row.MaxAmount)
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%v\n",
			row.ID, row.GradeID, row.Level, row.ApproverDesignationID, band, row.IsActive)
		shown++
	}
	w.Flush()

	if shown == 0 {
		fmt.Println("No approval matrix rows found")
		return nil
	}
	fmt.Printf("\nTotal: %d row(s)\n", shown)
	return nil
}

func parseIDList(value string) ([]int64, error) {
	parts := strings.Split(value, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a numeric ID", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no IDs given")
	}
	return ids, nil
}
