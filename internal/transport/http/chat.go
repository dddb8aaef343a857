package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/chat"
	"github.com/kmcneely/bloodlink/pkg/store"
)

type openSessionRequest struct {
	UserID      string `json:"userId"`
	OtherUserID string `json:"otherUserId"`
}

// OpenSession handles POST /api/chat/open: find-or-create the conversation
// between two users
func (h *Handler) OpenSession(c *fiber.Ctx) error {
	var req openSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errors.New("invalid request body"))
	}

	userA, err := h.store.Users.Get(req.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	userB, err := h.store.Users.Get(req.OtherUserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	session := h.chat.OpenSession(userA, userB)
	return c.JSON(fiber.Map{"session": session})
}

// GetSession handles GET /api/chat/:sessionId, returning the session along
// with current suggestion state so the UI can poll for the auto-reply
func (h *Handler) GetSession(c *fiber.Ctx) error {
	session, err := h.store.Sessions.Get(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"session":     session,
		"suggestions": h.chat.Suggestions(session.ID),
		"generating":  h.chat.Generating(session.ID),
	})
}

type sendMessageRequest struct {
	SenderID string `json:"senderId"`
	Text     string `json:"text"`
}

// SendMessage handles POST /api/chat/:sessionId/messages
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errors.New("invalid request body"))
	}

	session, err := h.chat.SendMessage(c.Params("sessionId"), req.SenderID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrNotParticipant):
			return badRequest(c, err)
		case errors.Is(err, store.ErrSessionNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			h.logger.Error("Send message failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
	}
	return c.JSON(fiber.Map{"session": session})
}

type smartRepliesRequest struct {
	RequesterName string `json:"requesterName"`
	DonorName     string `json:"donorName"`
}

// GenerateSmartReplies handles POST /api/chat/:sessionId/replies. A gateway
// failure is a soft outcome: an empty list with a warning, not a 5xx.
func (h *Handler) GenerateSmartReplies(c *fiber.Ctx) error {
	var req smartRepliesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errors.New("invalid request body"))
	}

	replies, err := h.chat.GenerateSmartReplies(c.Context(), c.Params("sessionId"), req.RequesterName, req.DonorName)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"replies": []string{}, "warning": "Could not generate smart replies."})
	}
	return c.JSON(fiber.Map{"replies": replies})
}
