package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxIDLength      = 1024
	MaxAttributes    = 100
	MaxAttributeKey  = 100
	MaxGraphNodes    = 1_000_000
	MaxMaxIterations = 100_000

	// Regular expressions
	attrKeyPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.\-]*$`)
)

func init() {
	validate = validator.New()
}

// NodeRequest is one upstream node record
type NodeRequest struct {
	ID         string         `json:"id" validate:"required,max=1024"`
	Kind       string         `json:"kind" validate:"required,oneof=class function module"`
	Attributes map[string]any `json:"attributes" validate:"omitempty,max=100"`
}

// EdgeRequest is one upstream relationship record
type EdgeRequest struct {
	Source string   `json:"source" validate:"required,max=1024"`
	Target string   `json:"target" validate:"required,max=1024"`
	Kind   string   `json:"kind" validate:"required,oneof=inherit call import compose"`
	Weight *float64 `json:"weight" validate:"omitempty,gte=0"`
}

// GraphRequest is the full upstream payload
type GraphRequest struct {
	Nodes []NodeRequest `json:"nodes" validate:"max=1000000"`
	Edges []EdgeRequest `json:"edges"`
}

// ValidateNodeRequest validates one node record
func ValidateNodeRequest(req *NodeRequest) error {
	if req == nil {
		return errors.New("node request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	for key := range req.Attributes {
		if err := ValidateAttributeKey(key); err != nil {
			return fmt.Errorf("Attributes: %w", err)
		}
	}

	return nil
}

// ValidateEdgeRequest validates one relationship record
func ValidateEdgeRequest(req *EdgeRequest) error {
	if req == nil {
		return errors.New("edge request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if req.Weight != nil && (math.IsNaN(*req.Weight) || math.IsInf(*req.Weight, 0)) {
		return errors.New("Weight: must be a finite number")
	}

	return nil
}

// ValidateGraphRequest validates the whole payload, reporting the index of the
// first offending record
func ValidateGraphRequest(req *GraphRequest) error {
	if req == nil {
		return errors.New("graph request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	for i := range req.Nodes {
		if err := ValidateNodeRequest(&req.Nodes[i]); err != nil {
			return fmt.Errorf("nodes[%d]: %w", i, err)
		}
	}
	for i := range req.Edges {
		if err := ValidateEdgeRequest(&req.Edges[i]); err != nil {
			return fmt.Errorf("edges[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateStruct runs tag validation on any struct and formats the first failure
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateAttributeKey validates a node attribute key
func ValidateAttributeKey(key string) error {
	if key == "" {
		return errors.New("attribute key cannot be empty")
	}
	if len(key) > MaxAttributeKey {
		return fmt.Errorf("attribute key '%s' exceeds maximum length of %d characters", key, MaxAttributeKey)
	}
	if !attrKeyPattern.MatchString(key) {
		return fmt.Errorf("attribute key '%s' is invalid (must start with letter or underscore)", key)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
