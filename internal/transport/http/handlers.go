package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/clients/geminiclient"
	"github.com/kmcneely/bloodlink/pkg/core/chat"
	"github.com/kmcneely/bloodlink/pkg/core/eligibility"
	"github.com/kmcneely/bloodlink/pkg/core/model"
	"github.com/kmcneely/bloodlink/pkg/core/services"
	"github.com/kmcneely/bloodlink/pkg/store"
)

// Handler exposes the core operations as JSON endpoints for the SPA
type Handler struct {
	store   *store.Store
	chat    *chat.Manager
	gemini  *geminiclient.Client
	booking services.BookingBackend
	logger  *zap.Logger
}

func NewHandler(st *store.Store, chatMgr *chat.Manager, gemini *geminiclient.Client, booking services.BookingBackend, logger *zap.Logger) *Handler {
	return &Handler{
		store:   st,
		chat:    chatMgr,
		gemini:  gemini,
		booking: booking,
		logger:  logger,
	}
}

// Register mounts all routes under /api
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/donors", h.SearchDonors)
	api.Post("/eligibility", h.CompleteQuestionnaire)
	api.Post("/appointments", h.ScheduleAppointment)

	api.Get("/requests", h.ListRequests)
	api.Post("/requests", h.CreateRequest)

	api.Get("/events", h.ListEvents)
	api.Post("/events", h.CreateEvent)

	api.Get("/history/:donorId", h.ViewHistory)
	api.Get("/badges", h.ListBadges)

	api.Post("/chat/open", h.OpenSession)
	api.Get("/chat/:sessionId", h.GetSession)
	api.Post("/chat/:sessionId/messages", h.SendMessage)
	api.Post("/chat/:sessionId/replies", h.GenerateSmartReplies)
}

// badRequest maps an error to a 400 response body
func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// SearchDonors handles GET /api/donors with bloodGroup, rhFactor and
// location query filters
func (h *Handler) SearchDonors(c *fiber.Ctx) error {
	filters := services.DonorFilters{
		BloodGroup: c.Query("bloodGroup"),
		RhFactor:   c.Query("rhFactor"),
		Location:   c.Query("location"),
	}

	donors, err := services.SearchDonors(c.Context(), h.store.Donors, h.logger, filters)
	if err != nil {
		return badRequest(c, err)
	}
	return c.JSON(fiber.Map{"donors": donors})
}

type questionnaireRequest struct {
	DonorID       string `json:"donorId"`
	Age           string `json:"age"`
	Weight        string `json:"weight"`
	RecentIllness string `json:"recentIllness"`
	Medication    string `json:"medication"`
	RecentTattoo  string `json:"recentTattoo"`
}

// CompleteQuestionnaire handles POST /api/eligibility
func (h *Handler) CompleteQuestionnaire(c *fiber.Ctx) error {
	var req questionnaireRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errors.New("invalid request body"))
	}

	result, err := services.CompleteQuestionnaire(c.Context(), h.store.Donors, h.logger, req.DonorID, eligibility.Answers{
		Age:           eligibility.Answer(req.Age),
		Weight:        eligibility.Answer(req.Weight),
		RecentIllness: eligibility.Answer(req.RecentIllness),
		Medication:    eligibility.Answer(req.Medication),
		RecentTattoo:  eligibility.Answer(req.RecentTattoo),
	})
	if err != nil {
		if errors.Is(err, eligibility.ErrIncomplete) {
			return badRequest(c, err)
		}
		if errors.Is(err, store.ErrDonorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("Questionnaire completion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
	return c.JSON(fiber.Map{"eligible": result.Eligible, "reason": result.Reason})
}

type appointmentRequest struct {
	ActorID string `json:"actorId"`
	DonorID string `json:"donorId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

// ScheduleAppointment handles POST /api/appointments. A backend failure is
// a 200 with scheduled=false: it is a business outcome with a retry
// affordance, not a transport error.
func (h *Handler) ScheduleAppointment(c *fiber.Ctx) error {
	var req appointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errors.New("invalid request body"))
	}
	if req.ActorID == "" {
		req.ActorID = store.SeedDonorUserID
	}

	outcome, err := services.ScheduleAppointment(
		c.Context(),
		h.store.Donors,
		h.store.History,
		h.booking,
		h.logger,
		req.ActorID,
		req.DonorID,
		services.AppointmentDetails{Date: req.Date, Time: req.Time, Notes: req.Notes},
	)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDetails) || errors.Is(err, services.ErrNoBloodProfile) {
			return badRequest(c, err)
		}
		if errors.Is(err, store.ErrDonorNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		h.logger.Error("Scheduling attempt errored", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}

	return c.JSON(fiber.Map{
		"scheduled": outcome.Scheduled,
		"reason":    outcome.Reason,
		"donation":  outcome.Donation,
	})
}

// ListRequests handles GET /api/requests
func (h *Handler) ListRequests(c *fiber.Ctx) error {
	requests := services.ListRequests(c.Context(), h.store.Requests, h.logger)
	return c.JSON(fiber.Map{"requests": requests})
}

type createRequestBody struct {
	RequesterID   string `json:"requesterId"`
	BloodGroup    string `json:"bloodGroup"`
	RhFactor      string `json:"rhFactor"`
	UnitsRequired int    `json:"unitsRequired"`
	Location      string `json:"location"`
	Urgency       string `json:"urgency"`
	Note          string `json:"note"`
	PointsOffered int    `json:"pointsOffered"`
}

// CreateRequest handles POST /api/requests
func (h *Handler) CreateRequest(c *fiber.Ctx) error {
	var req createRequestBody
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errors.New("invalid request body"))
	}

	requester, err := h.resolveRequester(req.RequesterID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := services.CreateRequest(c.Context(), h.store.Requests, h.logger, services.CreateRequestInput{
		Requester:     requester,
		BloodGroup:    req.BloodGroup,
		RhFactor:      req.RhFactor,
		UnitsRequired: req.UnitsRequired,
		Location:      req.Location,
		Urgency:       req.Urgency,
		Note:          req.Note,
		PointsOffered: req.PointsOffered,
	})
	if err != nil {
		return badRequest(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"request": created})
}

// ListEvents handles GET /api/events
func (h *Handler) ListEvents(c *fiber.Ctx) error {
	events := services.ListEvents(c.Context(), h.store.Events, h.logger)
	return c.JSON(fiber.Map{"events": events})
}

type createEventBody struct {
	Title       string `json:"title"`
	Theme       string `json:"theme"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Organizer   string `json:"organizer"`
	RRule       string `json:"rrule"`
	Occurrences int    `json:"occurrences"`
}

// CreateEvent handles POST /api/events
func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	var req createEventBody
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errors.New("invalid request body"))
	}

	date, err := time.ParseInLocation("2006-01-02T15:04", req.Date, time.Local)
	if err != nil {
		return badRequest(c, errors.New("date must be formatted as 2006-01-02T15:04"))
	}

	result, err := services.CreateEvent(c.Context(), h.store.Events, h.gemini, h.logger, services.CreateEventInput{
		Title:       req.Title,
		Theme:       req.Theme,
		Description: req.Description,
		Location:    req.Location,
		Date:        date,
		Organizer:   req.Organizer,
		RRule:       req.RRule,
		Occurrences: req.Occurrences,
	})
	if err != nil {
		return badRequest(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"events": result.Events})
}

// ViewHistory handles GET /api/history/:donorId
func (h *Handler) ViewHistory(c *fiber.Ctx) error {
	donorID := c.Params("donorId")
	history := services.ViewHistory(c.Context(), h.store.History, h.logger, donorID)
	return c.JSON(fiber.Map{"history": history})
}

// ListBadges handles GET /api/badges
func (h *Handler) ListBadges(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"badges": h.store.Badges.List()})
}

// resolveRequester finds a requester account, defaulting to the seeded
// hospital when no id is supplied; the demo app has no authentication layer
func (h *Handler) resolveRequester(id string) (model.User, error) {
	if id == "" {
		id = store.SeedRequesterUserID
	}
	return h.store.Users.Get(id)
}
