package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/middleware"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...interface{})  {}
func (nopLogger) Info(context.Context, string, ...interface{})   {}
func (nopLogger) Warn(context.Context, string, ...interface{})   {}
func (nopLogger) Error(context.Context, string, ...interface{})  {}
func (nopLogger) Debugf(context.Context, string, ...interface{}) {}
func (nopLogger) Infof(context.Context, string, ...interface{})  {}
func (nopLogger) Warnf(context.Context, string, ...interface{})  {}
func (nopLogger) Errorf(context.Context, string, ...interface{}) {}

type stubUseCase struct {
	lastInput chat.ProcessMessageInput
	result    chat.OrchestrationResult
}

func (s *stubUseCase) ProcessMessage(_ context.Context, input chat.ProcessMessageInput) chat.OrchestrationResult {
	s.lastInput = input
	return s.result
}

func newTestRouter(uc chat.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := middleware.New(nopLogger{}, 0)
	RegisterRoutes(r.Group("/api/v1"), New(nopLogger{}, uc), mw)
	return r
}

func TestProcessMessage_OK(t *testing.T) {
	uc := &stubUseCase{result: chat.OrchestrationResult{
		SessionID:  "sess-1",
		Response:   "Created your plan.",
		Confidence: chat.ConfidenceHigh,
		Debug:      &chat.DebugInfo{Intent: chat.IntentMealPlan, ToolsAttempted: []string{"generate_meal_plan"}},
	}}
	router := newTestRouter(uc)

	body := `{
		"message": "make me a 3-day meal plan",
		"session_id": "sess-1",
		"conversation_history": [{"role": "user", "content": "hi"}],
		"user_preferences": {"dietary": "vegetarian"},
		"location_data": {"currency": "EUR"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		ErrorCode int                `json:"error_code"`
		Data      processMessageResp `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if envelope.ErrorCode != 0 {
		t.Errorf("error_code = %d", envelope.ErrorCode)
	}
	if envelope.Data.SessionID != "sess-1" || envelope.Data.Confidence != "high" {
		t.Errorf("unexpected payload: %+v", envelope.Data)
	}
	if envelope.Data.Debug == nil || envelope.Data.Debug.Intent != "MEAL_PLAN_REQUIRED" {
		t.Errorf("debug missing: %+v", envelope.Data.Debug)
	}

	if uc.lastInput.UserID != "user-7" {
		t.Errorf("user id not propagated from header: %q", uc.lastInput.UserID)
	}
	if uc.lastInput.UserPreferences == nil || uc.lastInput.UserPreferences.Dietary != "vegetarian" {
		t.Errorf("preferences not mapped: %+v", uc.lastInput.UserPreferences)
	}
	if uc.lastInput.LocationData == nil || uc.lastInput.LocationData.Currency != "EUR" {
		t.Errorf("location not mapped: %+v", uc.lastInput.LocationData)
	}
	if len(uc.lastInput.ConversationHistory) != 1 {
		t.Errorf("history not mapped: %+v", uc.lastInput.ConversationHistory)
	}
}

func TestProcessMessage_MissingMessageIsBadRequest(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestProcessMessage_InvalidRoleIsBadRequest(t *testing.T) {
	router := newTestRouter(&stubUseCase{})

	body := `{"message": "hi", "conversation_history": [{"role": "system", "content": "x"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
