package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-bridge/internal/httperr"
	"github.com/BruksfildServices01/booking-bridge/internal/httpresp"
	"github.com/BruksfildServices01/booking-bridge/internal/models"
	ucConversation "github.com/BruksfildServices01/booking-bridge/internal/usecase/conversation"
	"github.com/BruksfildServices01/booking-bridge/internal/validators"
)

type ConversationHandler struct {
	aggregator *ucConversation.Aggregator
}

func NewConversationHandler(aggregator *ucConversation.Aggregator) *ConversationHandler {
	return &ConversationHandler{aggregator: aggregator}
}

// ======================================================
// REQUESTS
// ======================================================

type StoreMessageRequest struct {
	ClientPhone string `json:"clientPhone" binding:"required"`
	Role        string `json:"role"`
	Content     string `json:"content" binding:"required"`
}

type ProcessMessageRequest struct {
	ClientPhone   string `json:"clientPhone" binding:"required"`
	WindowSeconds int    `json:"windowSeconds"`
}

type ClearSessionRequest struct {
	ClientPhone string `json:"clientPhone" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ConversationHandler) StoreMessage(c *gin.Context) {
	var req StoreMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	phone := validators.NormalizePhone(req.ClientPhone)
	if phone == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "clientPhone is not a valid phone number")
		return
	}

	msg, err := h.aggregator.StoreMessage(c.Request.Context(), phone, req.Role, req.Content)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, msg)
}

// ProcessBatch is a poll: the automation platform keeps asking until the
// debounce window has elapsed with no newer message.
func (h *ConversationHandler) ProcessMessage(c *gin.Context) {
	var req ProcessMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	phone := validators.NormalizePhone(req.ClientPhone)
	if phone == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "clientPhone is not a valid phone number")
		return
	}

	window := time.Duration(req.WindowSeconds) * time.Second

	res, err := h.aggregator.ProcessBatch(c.Request.Context(), phone, window)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ConversationHandler) History(c *gin.Context) {
	phone := validators.NormalizePhone(c.Query("clientPhone"))
	if phone == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "clientPhone query parameter is required")
		return
	}

	msgs, err := h.aggregator.History(c.Request.Context(), phone)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List[models.ConversationMessage](c, msgs)
}

func (h *ConversationHandler) Clear(c *gin.Context) {
	var req ClearSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, err.Error())
		return
	}

	phone := validators.NormalizePhone(req.ClientPhone)
	if phone == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "clientPhone is not a valid phone number")
		return
	}

	if err := h.aggregator.Clear(c.Request.Context(), phone); err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"cleared": true})
}
