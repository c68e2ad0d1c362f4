package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oceantrail/divelog-api/internal/application"
	"github.com/oceantrail/divelog-api/pkg/response"
	"github.com/oceantrail/divelog-api/pkg/validation"
)

type ConversationHandler struct {
	Svc    *application.ConversationService
	Logger *logrus.Logger
}

func NewConversationHandler(svc *application.ConversationService, logger *logrus.Logger) *ConversationHandler {
	return &ConversationHandler{Svc: svc, Logger: logger}
}

type startPrivateRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

func (h *ConversationHandler) StartPrivate(c *gin.Context) {
	uid := c.GetString("userID")
	var req startPrivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	conv, err := h.Svc.StartPrivate(c.Request.Context(), uid, req.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, conversationView(conv), "conversation started", nil)
}

type startGroupRequest struct {
	Title          string   `json:"title" binding:"required,max=100"`
	ParticipantIDs []string `json:"participant_ids" binding:"required,min=2,dive,uuid"`
}

func (h *ConversationHandler) StartGroup(c *gin.Context) {
	uid := c.GetString("userID")
	var req startGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	// the creator always participates
	ids := append([]string{uid}, req.ParticipantIDs...)
	conv, err := h.Svc.StartGroup(c.Request.Context(), req.Title, ids)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, conversationView(conv), "group created", nil)
}

func (h *ConversationHandler) Get(c *gin.Context) {
	uid := c.GetString("userID")
	conv, err := h.Svc.Get(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	messages := make([]gin.H, 0)
	for _, m := range conv.Messages() {
		messages = append(messages, messageView(m))
	}
	view := conversationView(conv)
	view["messages"] = messages
	response.Success(c, http.StatusOK, view, "conversation", nil)
}

func (h *ConversationHandler) ListMine(c *gin.Context) {
	uid := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	convos, err := h.Svc.ListByUser(c.Request.Context(), uid, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(convos))
	for _, conv := range convos {
		views = append(views, conversationView(conv))
	}
	response.Success(c, http.StatusOK, views, "conversations", map[string]any{"count": len(views)})
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *ConversationHandler) SendMessage(c *gin.Context) {
	uid := c.GetString("userID")
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Svc.SendMessage(c.Request.Context(), c.Param("id"), uid, req.Content)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, messageView(m), "message sent", nil)
}

func (h *ConversationHandler) ListMessages(c *gin.Context) {
	uid := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	messages, err := h.Svc.ListMessages(c.Request.Context(), c.Param("id"), uid, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	views := make([]gin.H, 0, len(messages))
	for _, m := range messages {
		views = append(views, messageView(m))
	}
	response.Success(c, http.StatusOK, views, "messages", map[string]any{"count": len(views)})
}

func (h *ConversationHandler) MarkMessageRead(c *gin.Context) {
	uid := c.GetString("userID")
	m, err := h.Svc.MarkMessageRead(c.Request.Context(), c.Param("messageId"), uid)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, messageView(m), "message read", nil)
}

type participantRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

func (h *ConversationHandler) AddParticipant(c *gin.Context) {
	var req participantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	conv, err := h.Svc.AddParticipant(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conversationView(conv), "participant added", nil)
}

func (h *ConversationHandler) RemoveParticipant(c *gin.Context) {
	conv, err := h.Svc.RemoveParticipant(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conversationView(conv), "participant removed", nil)
}

type updateTitleRequest struct {
	Title string `json:"title" binding:"required,max=100"`
}

func (h *ConversationHandler) UpdateTitle(c *gin.Context) {
	var req updateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	conv, err := h.Svc.UpdateTitle(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conversationView(conv), "title updated", nil)
}
