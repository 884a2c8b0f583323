package mcpserver

import (
	"errors"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"github.com/a3health/a3diet/internal/planner"
	"github.com/a3health/a3diet/internal/service"
)

type CalculateDietPlanParams struct {
	Age            int      `json:"age" description:"Age in years"`
	Gender         string   `json:"gender" description:"female or male"`
	HeightCM       float64  `json:"height_cm" description:"Height in centimetres"`
	WeightKG       float64  `json:"weight_kg" description:"Weight in kilograms"`
	ActivityLevel  string   `json:"activity_level" description:"sedentary, light, moderate, active or very_active"`
	Goal           string   `json:"goal,omitempty" description:"maintain, weight_loss, aggressive_loss, weight_gain or muscle_gain"`
	Conditions     []string `json:"known_conditions,omitempty" description:"Known health conditions"`
	DietPreference string   `json:"diet_preference,omitempty" description:"vegetarian, vegan, eggetarian or non_vegetarian"`
}

type GetActivePlanParams struct {
	UserID string `json:"user_id" description:"Numeric user id or external UUID"`
}

// handleCalculateDietPlan runs the generator without storing anything.
func (s *Server) handleCalculateDietPlan(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params CalculateDietPlanParams
	if err := extractParams(req, &params); err != nil {
		return errorResult("invalid parameters: " + err.Error()), nil
	}
	plan, err := planner.Generate(planner.Profile{
		Age:            params.Age,
		Sex:            params.Gender,
		HeightCM:       params.HeightCM,
		WeightKG:       params.WeightKG,
		ActivityLevel:  params.ActivityLevel,
		Goal:           params.Goal,
		Conditions:     params.Conditions,
		DietPreference: params.DietPreference,
	})
	var verr *planner.ValidationError
	if errors.As(err, &verr) {
		return errorResult(verr.Error()), nil
	}
	if err != nil {
		return nil, err
	}
	return jsonResult(plan)
}

func (s *Server) handleGetActivePlan(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetActivePlanParams
	if err := extractParams(req, &params); err != nil {
		return errorResult("invalid parameters: " + err.Error()), nil
	}
	user, err := service.ResolveUser(s.db, params.UserID)
	if errors.Is(err, service.ErrInvalidInput) || errors.Is(err, service.ErrNotFound) {
		return errorResult(err.Error()), nil
	}
	if err != nil {
		return nil, err
	}
	plan, err := service.ActivePlan(s.db, user.ID)
	if err != nil {
		return nil, err
	}
	return jsonResult(map[string]any{"user_id": user.ID, "plan": plan})
}
