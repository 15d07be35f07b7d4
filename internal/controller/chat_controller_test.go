package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-legalaid-be/internal/dto"
	"ai-legalaid-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	res     *dto.ChatResponse
	lastReq dto.ChatRequest
}

func (s *stubChatService) Chat(_ context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	s.lastReq = req
	return s.res, nil
}

func newTestApp(stub *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	c := NewChatController(stub)
	api := app.Group("/api")
	c.RegisterRoutes(api)
	app.Post("/chat", c.Chat)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestChatReturnsFlatResponse(t *testing.T) {
	stub := &stubChatService{res: &dto.ChatResponse{
		Reply:   "hello",
		Emotion: "neutral",
	}}
	app := newTestApp(stub)

	status, body := postJSON(t, app, "/api/chat/v1", `{"message":"hi","sessionId":"s1"}`)
	require.Equal(t, 200, status)
	require.Equal(t, "hello", body["reply"])
	require.Equal(t, "neutral", body["emotion"])
	require.NotContains(t, body, "legalSummary")
	require.NotContains(t, body, "error")

	require.Equal(t, "hi", stub.lastReq.Message)
	require.Equal(t, "s1", stub.lastReq.SessionId)
}

func TestChatIncludesLegalSummaryWhenPresent(t *testing.T) {
	stub := &stubChatService{res: &dto.ChatResponse{
		Reply:        "advice",
		Emotion:      "sadness",
		LegalSummary: "IPC Section 354, IPC Section 509",
	}}
	app := newTestApp(stub)

	status, body := postJSON(t, app, "/api/chat/v1", `{"message":"final answer"}`)
	require.Equal(t, 200, status)
	require.Contains(t, body["legalSummary"], "354")
}

func TestChatMissingMessageIsRejected(t *testing.T) {
	stub := &stubChatService{res: &dto.ChatResponse{}}
	app := newTestApp(stub)

	status, body := postJSON(t, app, "/api/chat/v1", `{"sessionId":"s1"}`)
	require.Equal(t, 400, status)
	require.Equal(t, "Message required", body["error"])
}

func TestChatMalformedBodyIsRejected(t *testing.T) {
	stub := &stubChatService{res: &dto.ChatResponse{}}
	app := newTestApp(stub)

	status, body := postJSON(t, app, "/api/chat/v1", `{"message":`)
	require.Equal(t, 400, status)
	require.Equal(t, "Message required", body["error"])
}

func TestChatShortAliasRoute(t *testing.T) {
	stub := &stubChatService{res: &dto.ChatResponse{
		Reply:   "hello",
		Emotion: "joy",
	}}
	app := newTestApp(stub)

	status, body := postJSON(t, app, "/chat", `{"message":"hi"}`)
	require.Equal(t, 200, status)
	require.Equal(t, "hello", body["reply"])
}

func TestChatDegradedResponseCarriesErrorField(t *testing.T) {
	stub := &stubChatService{res: &dto.ChatResponse{
		Reply:   "The assistance service is temporarily unavailable. Please try sending your message again in a moment.",
		Emotion: "neutral",
		Error:   "generation_unavailable",
	}}
	app := newTestApp(stub)

	status, body := postJSON(t, app, "/api/chat/v1", `{"message":"hi"}`)
	require.Equal(t, 200, status)
	require.Equal(t, "generation_unavailable", body["error"])
}
