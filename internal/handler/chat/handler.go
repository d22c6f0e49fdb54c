package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/aoc-chat/backend/internal/service/gateway"
	"github.com/zhouzirui/aoc-chat/backend/pkg/utils"
)

// Submitter runs a single chat turn.
type Submitter interface {
	Submit(ctx context.Context, req gateway.Request) (string, error)
}

// Handler 聊天服务的HTTP处理器
type Handler struct {
	gateway Submitter
}

// New 创建聊天处理器
func New(gw Submitter) *Handler {
	return &Handler{gateway: gw}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

type chatRequest struct {
	Message   string          `json:"message"`
	History   json.RawMessage `json:"history"`
	SessionID string          `json:"session_id"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// handleChat 处理一次对话请求
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reply, err := h.gateway.Submit(r.Context(), gateway.Request{
		Message:   payload.Message,
		History:   payload.History,
		SessionID: payload.SessionID,
	})
	if err != nil {
		utils.RespondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
