package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/linguachat/linguachat-server/internal/core"
	"github.com/linguachat/linguachat-server/internal/proto"
	"github.com/linguachat/linguachat-server/internal/translate"
)

// APIHandlers provides HTTP handlers for REST API endpoints.
type APIHandlers struct {
	hub        *core.Hub
	translator *translate.Router
	log        *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(hub *core.Hub, translator *translate.Router, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		hub:        hub,
		translator: translator,
		log:        logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// TranslateRequest represents a single translation request body.
type TranslateRequest struct {
	Text       string `json:"text" binding:"required"`
	TargetLang string `json:"targetLang" binding:"required"`
	SourceLang string `json:"sourceLang"`
	Class      string `json:"class"`
}

// Translate handles a single translation.
// POST /api/translate
func (h *APIHandlers) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid translate request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	res, err := h.translator.Translate(c.Request.Context(), translate.Request{
		Text:       req.Text,
		TargetLang: req.TargetLang,
		SourceLang: req.SourceLang,
		Class:      translate.Class(req.Class),
	})
	if err != nil {
		h.writeTranslateError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// BatchItemRequest is one entry of a batch translation request.
type BatchItemRequest struct {
	Text  string `json:"text" binding:"required"`
	Class string `json:"class"`
}

// TranslateBatchRequest represents the batch translation request body.
type TranslateBatchRequest struct {
	TargetLang string             `json:"targetLang" binding:"required"`
	Items      []BatchItemRequest `json:"items" binding:"required,min=1"`
}

// TranslateBatchResponse represents the batch translation response.
type TranslateBatchResponse struct {
	Results []translate.Result `json:"results"`
}

// TranslateBatch handles batch translation. Items fail independently;
// the response always matches the request length.
// POST /api/translate/batch
func (h *APIHandlers) TranslateBatch(c *gin.Context) {
	var req TranslateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid batch request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	items := make([]translate.BatchItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = translate.BatchItem{Text: item.Text, Class: translate.Class(item.Class)}
	}
	results := h.translator.TranslateBatch(c.Request.Context(), req.TargetLang, items)
	c.JSON(http.StatusOK, TranslateBatchResponse{Results: results})
}

// DetectRequest represents the language detection request body.
type DetectRequest struct {
	Text string `json:"text" binding:"required"`
}

// DetectResponse represents the language detection response. Lang is
// empty when detection failed or the language is unsupported.
type DetectResponse struct {
	Lang string `json:"lang"`
}

// Detect handles best-effort language detection.
// POST /api/detect
func (h *APIHandlers) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid detect request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, DetectResponse{Lang: h.translator.DetectLanguage(c.Request.Context(), req.Text)})
}

// OnlineResponse lists currently online users plus last-seen Unix
// timestamps for users who disconnected.
type OnlineResponse struct {
	Count    int              `json:"count"`
	Users    []string         `json:"users"`
	LastSeen map[string]int64 `json:"lastSeen,omitempty"`
}

// Online returns the set of online users.
// GET /api/online
func (h *APIHandlers) Online(c *gin.Context) {
	users := h.hub.ListOnline()

	offline := h.hub.OfflineSince()
	lastSeen := make(map[string]int64, len(offline))
	for userID, ts := range offline {
		lastSeen[userID] = ts.Unix()
	}

	c.JSON(http.StatusOK, OnlineResponse{Count: len(users), Users: users, LastSeen: lastSeen})
}

// History returns the in-memory history for a room.
// GET /api/rooms/:room/history
func (h *APIHandlers) History(c *gin.Context) {
	roomID := c.Param("room")
	msgs := h.hub.History(roomID)

	messages := make([]proto.MessagePayload, 0, len(msgs))
	for _, msg := range msgs {
		messages = append(messages, messagePayload(msg))
	}
	c.JSON(http.StatusOK, proto.HistoryPayload{RoomID: roomID, Messages: messages})
}

func (h *APIHandlers) writeTranslateError(c *gin.Context, err error) {
	var terr *translate.Error
	if errors.As(err, &terr) {
		status := http.StatusBadGateway
		if terr.Code == translate.CodeBackendUnavailable {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, ErrorResponse{Error: terr.Error(), Code: terr.Code})
		return
	}
	h.log.Error().Err(err).Msg("translation failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
