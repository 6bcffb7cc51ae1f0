package http

import (
	"meal-planning-assistant/internal/chat"
)

// --- Request DTOs ---

type turnReq struct {
	Role    string `json:"role"    binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type preferencesReq struct {
	Dietary   string   `json:"dietary"`
	Goal      string   `json:"goal"`
	Cuisine   string   `json:"cuisine"`
	Allergies []string `json:"allergies"`
}

type locationReq struct {
	City     string `json:"city"`
	Country  string `json:"country"`
	Currency string `json:"currency"`
}

type processMessageReq struct {
	Message             string          `json:"message" binding:"required,min=1,max=4000"`
	SessionID           string          `json:"session_id"`
	ConversationHistory []turnReq       `json:"conversation_history" binding:"omitempty,max=50,dive"`
	UserPreferences     *preferencesReq `json:"user_preferences"`
	LocationData        *locationReq    `json:"location_data"`

	// Populated from the identity middleware, never from the body.
	UserID string `json:"-"`
}

func (r processMessageReq) validate() error { return nil }

func (r processMessageReq) toInput() chat.ProcessMessageInput {
	input := chat.ProcessMessageInput{
		Message:   r.Message,
		SessionID: r.SessionID,
		UserID:    r.UserID,
	}
	for _, turn := range r.ConversationHistory {
		input.ConversationHistory = append(input.ConversationHistory, chat.ConversationTurn{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	if r.UserPreferences != nil {
		input.UserPreferences = &chat.UserPreferences{
			Dietary:   r.UserPreferences.Dietary,
			Goal:      r.UserPreferences.Goal,
			Cuisine:   r.UserPreferences.Cuisine,
			Allergies: r.UserPreferences.Allergies,
		}
	}
	if r.LocationData != nil {
		input.LocationData = &chat.LocationData{
			City:     r.LocationData.City,
			Country:  r.LocationData.Country,
			Currency: r.LocationData.Currency,
		}
	}
	return input
}

// --- Response DTOs ---

type debugResp struct {
	Intent         string   `json:"intent"`
	Retried        bool     `json:"retried"`
	ToolsAttempted []string `json:"tools_attempted"`
}

type processMessageResp struct {
	SessionID      string                 `json:"session_id"`
	Response       string                 `json:"response"`
	StructuredData map[string]interface{} `json:"structured_data,omitempty"`
	Suggestions    []string               `json:"suggestions,omitempty"`
	ToolResults    map[string]interface{} `json:"tool_results,omitempty"`
	Confidence     string                 `json:"confidence"`
	Debug          *debugResp             `json:"debug,omitempty"`
}

func (h *handler) newProcessMessageResp(result chat.OrchestrationResult) processMessageResp {
	resp := processMessageResp{
		SessionID:      result.SessionID,
		Response:       result.Response,
		StructuredData: result.StructuredData,
		Suggestions:    result.Suggestions,
		ToolResults:    result.ToolResults,
		Confidence:     string(result.Confidence),
	}
	if result.Debug != nil {
		resp.Debug = &debugResp{
			Intent:         string(result.Debug.Intent),
			Retried:        result.Debug.Retried,
			ToolsAttempted: result.Debug.ToolsAttempted,
		}
	}
	return resp
}
