package session

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/aoc-chat/backend/internal/model/chat"
	"github.com/zhouzirui/aoc-chat/backend/pkg/utils"
)

// Directory exposes read and delete access to stored sessions.
type Directory interface {
	ListSessions(ctx context.Context) []chat.Summary
	GetSession(ctx context.Context, sessionID string) (chat.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// Handler 会话管理的HTTP处理器
type Handler struct {
	sessions Directory
}

// New 创建会话处理器
func New(sessions Directory) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{sessionID}", h.handleGet)
		r.Delete("/{sessionID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string][]chat.Summary{
		"sessions": h.sessions.ListSessions(r.Context()),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		utils.RespondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
