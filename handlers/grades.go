// ABOUTME: Grade MCP tool handlers
// ABOUTME: Implements add_grade, find_grades, update_grade, deactivate_grade
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/models"
)

type GradeHandlers struct {
	client *api.Client
}

func NewGradeHandlers(client *api.Client) *GradeHandlers {
	return &GradeHandlers{client: client}
}

type AddGradeInput struct {
	Name  string `json:"name" jsonschema:"Grade name (required)"`
	Level int    `json:"level" jsonschema:"Seniority level, 1 or higher"`
}

type GradeOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	IsActive bool   `json:"is_active"`
}

func (h *GradeHandlers) AddGrade(ctx context.Context, request *mcp.CallToolRequest, input AddGradeInput) (*mcp.CallToolResult, GradeOutput, error) {
	grade := models.Grade{
		Name:     input.Name,
		Level:    input.Level,
		IsActive: true,
	}
	if err := models.Validate(grade); err != nil {
		return nil, GradeOutput{}, err
	}

	created, err := h.client.Grades().Create(ctx, grade)
	if err != nil {
		return nil, GradeOutput{}, fmt.Errorf("failed to create grade: %w", err)
	}
	return nil, gradeToOutput(created), nil
}

type FindGradesInput struct {
	Query           string `json:"query,omitempty" jsonschema:"Substring to match against grade names"`
	IncludeInactive bool   `json:"include_inactive,omitempty" jsonschema:"Include deactivated grades"`
}

type FindGradesOutput struct {
	Grades []GradeOutput `json:"grades"`
}

func (h *GradeHandlers) FindGrades(ctx context.Context, request *mcp.CallToolRequest, input FindGradesInput) (*mcp.CallToolResult, FindGradesOutput, error) {
	result, err := h.client.Grades().List(ctx, nil)
	if err != nil {
		return nil, FindGradesOutput{}, fmt.Errorf("failed to list grades: %w", err)
	}

	out := FindGradesOutput{Grades: []GradeOutput{}}
	needle := strings.ToLower(input.Query)
	for _, g := range result.Items {
		if !input.IncludeInactive && !g.IsActive {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(g.Name), needle) {
			continue
		}
		out.Grades = append(out.Grades, gradeToOutput(g))
	}
	return nil, out, nil
}

type UpdateGradeInput struct {
	ID    int64  `json:"id" jsonschema:"Grade ID (required)"`
	Name  string `json:"name,omitempty" jsonschema:"New grade name"`
	Level int    `json:"level,omitempty" jsonschema:"New seniority level"`
}

func (h *GradeHandlers) UpdateGrade(ctx context.Context, request *mcp.CallToolRequest, input UpdateGradeInput) (*mcp.CallToolResult, GradeOutput, error) {
	if input.ID == 0 {
		return nil, GradeOutput{}, fmt.Errorf("id is required")
	}

	grade, err := h.client.Grades().Get(ctx, input.ID)
	if err != nil {
		return nil, GradeOutput{}, fmt.Errorf("failed to fetch grade %d: %w", input.ID, err)
	}
	if input.Name != "" {
		grade.Name = input.Name
	}
	if input.Level > 0 {
		grade.Level = input.Level
	}
	if err := models.Validate(grade); err != nil {
		return nil, GradeOutput{}, err
	}

	updated, err := h.client.Grades().Update(ctx, input.ID, grade)
	if err != nil {
		return nil, GradeOutput{}, fmt.Errorf("failed to update grade: %w", err)
	}
	return nil, gradeToOutput(updated), nil
}

type DeactivateGradeInput struct {
	ID int64 `json:"id" jsonschema:"Grade ID (required)"`
}

type DeactivateOutput struct {
	ID          int64 `json:"id"`
	Deactivated bool  `json:"deactivated"`
}

func (h *GradeHandlers) DeactivateGrade(ctx context.Context, request *mcp.CallToolRequest, input DeactivateGradeInput) (*mcp.CallToolResult, DeactivateOutput, error) {
	if input.ID == 0 {
		return nil, DeactivateOutput{}, fmt.Errorf("id is required")
	}
	if err := h.client.Grades().Deactivate(ctx, input.ID); err != nil {
		return nil, DeactivateOutput{}, fmt.Errorf("failed to deactivate grade: %w", err)
	}
	return nil, DeactivateOutput{ID: input.ID, Deactivated: true}, nil
}

func gradeToOutput(g models.Grade) GradeOutput {
	return GradeOutput{ID: g.ID, Name: g.Name, Level: g.Level, IsActive: g.IsActive}
}
