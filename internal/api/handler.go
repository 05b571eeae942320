package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hydroassist/go-hydro-chatbot/internal/actions"
	"github.com/hydroassist/go-hydro-chatbot/internal/models"
	"github.com/hydroassist/go-hydro-chatbot/internal/nlu"
	"github.com/hydroassist/go-hydro-chatbot/internal/render"
)

type Handler struct {
	actions *actions.Actions
}

func NewHandler(a *actions.Actions) *Handler {
	return &Handler{actions: a}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/chat", gin.CustomRecovery(chatRecovery), h.chat)
	r.POST("/webhook", h.actionWebhook)
	r.POST("/webhooks/rest/webhook", gin.CustomRecovery(webhookRecovery), h.restWebhook)
	r.POST("/model/parse", h.parse)
	r.GET("/health", h.health)
	r.GET("/", h.root)
}

// chat is the context-enriched front door: the upstream backend already
// resolved location, shelters and risk zones, so the reply is rendered
// locally with no outbound call.
func (h *Handler) chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	intent, confidence := nlu.Classify(req.Message)
	text := render.ContextResponse(intent, req.ChatContext)

	c.JSON(http.StatusOK, models.ChatResponse{
		Message:    text,
		Response:   text, // kept for frontend compatibility
		Intent:     intent,
		Confidence: confidence,
	})
}

type actionRequest struct {
	NextAction string `json:"next_action"`
	Tracker    struct {
		LatestMessage struct {
			Text     string          `json:"text"`
			Entities []models.Entity `json:"entities"`
		} `json:"latest_message"`
	} `json:"tracker"`
}

// actionWebhook serves the conversational runtime's action-server protocol:
// it runs the named action against the latest message and returns the
// uttered responses.
func (h *Handler) actionWebhook(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action request"})
		return
	}

	msg := actions.Message{
		Text:     req.Tracker.LatestMessage.Text,
		Entities: req.Tracker.LatestMessage.Entities,
	}
	texts := h.actions.Run(c.Request.Context(), req.NextAction, msg)

	responses := make([]gin.H, 0, len(texts))
	for _, t := range texts {
		responses = append(responses, gin.H{"text": t})
	}
	c.JSON(http.StatusOK, gin.H{"events": []any{}, "responses": responses})
}

type webhookRequest struct {
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

type webhookReply struct {
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}

// restWebhook is the legacy front door: a bare message with no pre-resolved
// context, routed to the API-backed actions by keyword classification.
func (h *Handler) restWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, []webhookReply{{
			RecipientID: "user",
			Text:        "Lo siento, ocurrió un error procesando tu mensaje. Por favor intenta nuevamente.",
		}})
		return
	}

	sender := req.Sender
	if sender == "" {
		sender = "user"
	}

	texts := h.dispatch(c.Request.Context(), req.Message)
	replies := make([]webhookReply, 0, len(texts))
	for _, t := range texts {
		replies = append(replies, webhookReply{RecipientID: sender, Text: t})
	}
	c.JSON(http.StatusOK, replies)
}

// dispatch routes a free-text message to an action using the chat intent
// rules. Greetings, farewells and location prompts answer locally; the rest
// goes through the emergency API.
func (h *Handler) dispatch(ctx context.Context, message string) []string {
	intent, _ := nlu.Classify(message)
	msg := actions.Message{Text: message}

	switch intent {
	case models.IntentFindShelter:
		return h.actions.FindShelter(ctx, msg)
	case models.IntentReportEmergency:
		return h.actions.ReportEmergency(ctx, msg)
	case models.IntentCheckRisk:
		return h.actions.ConsultRisk(ctx, msg)
	case models.IntentShareLocation, models.IntentGreet, models.IntentGoodbye:
		return []string{render.ContextResponse(intent, models.ChatContext{})}
	default:
		return h.actions.DefaultFallback(ctx, msg)
	}
}

// parse serves the legacy intent-analysis endpoint used by integration
// tests.
func (h *Handler) parse(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	name, confidence := nlu.ParseIntent(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"intent":   gin.H{"name": name, "confidence": confidence},
		"entities": []any{},
		"text":     req.Text,
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "HydroAssist Chatbot is running"})
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":          "HydroAssist Chatbot Server",
		"version":       "2.0.0",
		"description":   "Servidor de chatbot para gestión de emergencias hídricas",
		"main_endpoint": "/chat",
		"endpoints": gin.H{
			"chat":    "/chat",
			"actions": "/webhook",
			"webhook": "/webhooks/rest/webhook (Legacy)",
			"parse":   "/model/parse (Testing)",
			"health":  "/health",
		},
	})
}

// chatRecovery keeps internal failures out of the user-visible text: the
// chat envelope carries a generic apology plus the detail as a diagnostic
// field.
func chatRecovery(c *gin.Context, err any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"message":    "Lo siento, ocurrió un error procesando tu mensaje.",
		"intent":     "error",
		"confidence": 1.0,
		"error":      fmt.Sprint(err),
	})
}

func webhookRecovery(c *gin.Context, err any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, []webhookReply{{
		RecipientID: "user",
		Text:        "Lo siento, ocurrió un error procesando tu mensaje. Por favor intenta nuevamente.",
	}})
}
