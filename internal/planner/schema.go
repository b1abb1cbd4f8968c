// Package planner turns a raw idea into a structured project plan.
// Output is constrained by a provider-side response schema and checked locally
// with struct validation; malformed plans are rejected, never repaired.
package planner

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephgoksu/horizon/internal/task"
	"google.golang.org/genai"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation for non-empty trimmed strings
	_ = validate.RegisterValidation("nonempty", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s != ""
	})
}

// PlanResponse is the JSON structure the provider must return.
type PlanResponse struct {
	Title       string         `json:"title" validate:"required,nonempty"`
	Description string         `json:"description" validate:"required,nonempty"`
	Tags        []string       `json:"tags" validate:"required,dive,nonempty"`
	Tasks       []TaskResponse `json:"tasks" validate:"required,dive"`
}

// TaskResponse is a single task in the provider response.
type TaskResponse struct {
	Title         string `json:"title" validate:"required,nonempty"`
	Description   string `json:"description" validate:"required"`
	Category      string `json:"category" validate:"required,oneof=Research Development Design Marketing Other"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
}

// Drafts converts the response tasks into task drafts, preserving order.
func (r *PlanResponse) Drafts() []task.Draft {
	out := make([]task.Draft, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		out = append(out, task.Draft{
			Title:         t.Title,
			Description:   t.Description,
			Category:      task.Category(t.Category),
			EstimatedTime: t.EstimatedTime,
		})
	}
	return out
}

// ValidationError provides structured error information for schema validation failures
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

// ValidationResult contains the result of schema validation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Validate checks the PlanResponse against the schema rules.
func (r *PlanResponse) Validate() ValidationResult {
	return validateStruct(r)
}

// Messages returns the human-readable message of every violation.
func (r ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message)
	}
	return out
}

// ErrorSummary returns a single string summarizing all validation errors
func (r ValidationResult) ErrorSummary() string {
	if r.Valid {
		return ""
	}
	return strings.Join(r.Messages(), "; ")
}

func validateStruct(s any) ValidationResult {
	err := validate.Struct(s)
	if err == nil {
		return ValidationResult{Valid: true}
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationResult{Errors: []ValidationError{{Message: err.Error()}}}
	}

	var errors []ValidationError
	for _, err := range verrs {
		errors = append(errors, ValidationError{
			Field:   err.Namespace(),
			Tag:     err.Tag(),
			Value:   err.Value(),
			Message: formatValidationError(err),
		})
	}

	return ValidationResult{
		Valid:  false,
		Errors: errors,
	}
}

// formatValidationError creates a human-readable error message
func formatValidationError(err validator.FieldError) string {
	field := err.Namespace()
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "nonempty":
		return fmt.Sprintf("%s cannot be empty or whitespace", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, err.Param(), err.Value())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, err.Tag())
	}
}

// ResponseSchema is the structured-output schema sent with every plan request.
func ResponseSchema() *genai.Schema {
	categories := make([]string, 0, len(task.Categories))
	for _, c := range task.Categories {
		categories = append(categories, string(c))
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "A catchy, short title for the project",
			},
			"description": {
				Type:        genai.TypeString,
				Description: "A concise executive summary of the project",
			},
			"tags": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "3-5 relevant tags (e.g. 'React', 'Woodworking', 'Novel')",
			},
			"tasks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":       {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"category": {
							Type: genai.TypeString,
							Enum: categories,
						},
						"estimatedTime": {
							Type:        genai.TypeString,
							Description: "e.g. '2 hours', '3 days'",
						},
					},
					Required: []string{"title", "description", "category"},
				},
			},
		},
		Required: []string{"title", "description", "tags", "tasks"},
	}
}
