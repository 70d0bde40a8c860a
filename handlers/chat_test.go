package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	replies    []string
	err        error
	lastUserID string
	lastText   string
	resetUser  string
}

func (s *stubChatService) HandleMessage(_ context.Context, userID, text string) ([]string, error) {
	s.lastUserID = userID
	s.lastText = text
	return s.replies, s.err
}

func (s *stubChatService) ResetConversation(_ context.Context, userID string) error {
	s.resetUser = userID
	return s.err
}

func chatRouter(svc *stubChatService, authedUserID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(svc)
	r := gin.New()
	grp := r.Group("/api/chat")
	if authedUserID != "" {
		grp.Use(func(c *gin.Context) { c.Set("userID", authedUserID) })
	}
	grp.POST("/message", h.HandleChatMessage)
	grp.POST("/reset", h.HandleChatReset)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleChatMessage_ReturnsReplies(t *testing.T) {
	svc := &stubChatService{replies: []string{"✅ готово"}}
	r := chatRouter(svc, "")

	w := postJSON(t, r, "/api/chat/message", `{"text":"виїзд об 11:00","userId":"admin1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "✅ готово")
	assert.Equal(t, "admin1", svc.lastUserID)
	assert.Equal(t, "виїзд об 11:00", svc.lastText)
}

func TestHandleChatMessage_SilentTurnIsEmptyArray(t *testing.T) {
	svc := &stubChatService{replies: nil}
	r := chatRouter(svc, "")

	w := postJSON(t, r, "/api/chat/message", `{"text":"дякую","userId":"admin1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"replies":[]}`, w.Body.String())
}

func TestHandleChatMessage_AuthenticatedIdentityWins(t *testing.T) {
	svc := &stubChatService{}
	r := chatRouter(svc, "cleaner1")

	w := postJSON(t, r, "/api/chat/message", `{"text":"привіт","userId":"somebody-else"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cleaner1", svc.lastUserID)
}

func TestHandleChatMessage_MissingText(t *testing.T) {
	svc := &stubChatService{}
	r := chatRouter(svc, "")

	w := postJSON(t, r, "/api/chat/message", `{"userId":"admin1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChatMessage_MissingUser(t *testing.T) {
	svc := &stubChatService{}
	r := chatRouter(svc, "")

	w := postJSON(t, r, "/api/chat/message", `{"text":"привіт"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChatMessage_ServiceError(t *testing.T) {
	svc := &stubChatService{err: errors.New("mongo down")}
	r := chatRouter(svc, "")

	w := postJSON(t, r, "/api/chat/message", `{"text":"привіт","userId":"admin1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleChatReset(t *testing.T) {
	svc := &stubChatService{}
	r := chatRouter(svc, "cleaner1")

	w := postJSON(t, r, "/api/chat/reset", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cleaner1", svc.resetUser)
}
