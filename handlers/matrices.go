// ABOUTME: Approval matrix MCP tool handlers
// ABOUTME: create_approval_matrix fans one payload out across many grades
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/models"
	"github.com/voyagehq/tripdesk/screens"
)

type MatrixHandlers struct {
	client *api.Client
}

func NewMatrixHandlers(client *api.Client) *MatrixHandlers {
	return &MatrixHandlers{client: client}
}

type CreateMatrixInput struct {
	GradeIDs              []int64 `json:"grade_ids" jsonschema:"Grade IDs to create one row each for (required)"`
	CompanyID             int64   `json:"company_id" jsonschema:"Company ID (required)"`
	Level                 int     `json:"level" jsonschema:"Approver chain level, 1 or higher"`
	ApproverDesignationID int64   `json:"approver_designation_id" jsonschema:"Designation that approves at this level (required)"`
	MinAmount             int64   `json:"min_amount,omitempty" jsonschema:"Band lower bound in minor currency units"`
	MaxAmount             int64   `json:"max_amount,omitempty" jsonschema:"Band upper bound in minor currency units"`
	EffectiveFrom         string  `json:"effective_from,omitempty" jsonschema:"Effective from date (YYYY-MM-DD)"`
	EffectiveTo           string  `json:"effective_to,omitempty" jsonschema:"Effective to date (YYYY-MM-DD)"`
}

type CreateMatrixOutput struct {
	Created   int `json:"created"`
	Requested int `json:"requested"`
}

// CreateApprovalMatrix creates rows sequentially and stops at the first
// failure; rows created before the failure stay persisted.
func (h *MatrixHandlers) CreateApprovalMatrix(ctx context.Context, request *mcp.CallToolRequest, input CreateMatrixInput) (*mcp.CallToolResult, CreateMatrixOutput, error) {
	if len(input.GradeIDs) == 0 {
		return nil, CreateMatrixOutput{}, fmt.Errorf("grade_ids is required")
	}

	base := models.ApprovalMatrix{
		CompanyID:             input.CompanyID,
		Level:                 input.Level,
		ApproverDesignationID: input.ApproverDesignationID,
		MinAmount:             input.MinAmount,
		MaxAmount:             input.MaxAmount,
		EffectiveFrom:         input.EffectiveFrom,
		EffectiveTo:           input.EffectiveTo,
		IsActive:              true,
	}

	created, err := screens.BatchCreate(ctx, input.GradeIDs, func(ctx context.Context, gradeID int64) error {
		row := base
		row.GradeID = gradeID
		if err := models.Validate(row); err != nil {
			return err
		}
		_, err := h.client.ApprovalMatrices().Create(ctx, row)
		return err
	})

	out := CreateMatrixOutput{Created: created, Requested: len(input.GradeIDs)}
	if err != nil {
		return nil, out, fmt.Errorf("created %d of %d rows before a failure: %w", created, len(input.GradeIDs), err)
	}
	return nil, out, nil
}

type FindMatricesInput struct {
	GradeID         int64 `json:"grade_id,omitempty" jsonschema:"Filter by grade ID"`
	IncludeInactive bool  `json:"include_inactive,omitempty" jsonschema:"Include deactivated rows"`
}

type MatrixOutput struct {
	ID                    int64  `json:"id"`
	GradeID               int64  `json:"grade_id"`
	CompanyID             int64  `json:"company_id"`
	Level                 int    `json:"level"`
	ApproverDesignationID int64  `json:"approver_designation_id"`
	MinAmount             int64  `json:"min_amount"`
	MaxAmount             int64  `json:"max_amount"`
	EffectiveFrom         string `json:"effective_from,omitempty"`
	EffectiveTo           string `json:"effective_to,omitempty"`
	IsActive              bool   `json:"is_active"`
}

type FindMatricesOutput struct {
	Rows []MatrixOutput `json:"rows"`
}

func (h *MatrixHandlers) FindApprovalMatrices(ctx context.Context, request *mcp.CallToolRequest, input FindMatricesInput) (*mcp.CallToolResult, FindMatricesOutput, error) {
	var filters map[string][]string
	if input.GradeID != 0 {
		filters = api.ScopedTo("grade", input.GradeID)
	}
	result, err := h.client.ApprovalMatrices().List(ctx, filters)
	if err != nil {
		return nil, FindMatricesOutput{}, fmt.Errorf("failed to list approval matrices: %w", err)
	}

	out := FindMatricesOutput{Rows: []MatrixOutput{}}
	for _, row := range result.Items {
		if !input.IncludeInactive && !row.IsActive {
			continue
		}
		out.Rows = append(out.Rows, MatrixOutput{
			ID:                    row.ID,
			GradeID:               row.GradeID,
			CompanyID:             row.CompanyID,
			Level:                 row.Level,
			ApproverDesignationID: row.ApproverDesignationID,
			MinAmount:             row.MinAmount,
			MaxAmount:             row.MaxAmount,
			EffectiveFrom:         row.EffectiveFrom,
			EffectiveTo:           row.EffectiveTo,
			IsActive:              row.IsActive,
		})
	}
	return nil, out, nil
}
