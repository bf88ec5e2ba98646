package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/RestartDK/selene/internal/agent"
	"github.com/RestartDK/selene/internal/domain"
	"github.com/RestartDK/selene/internal/service"
)

// Handler exposes the core services over HTTP. The current user is fixed
// process-wide configuration: the server simulates a single signed-in
// identity instead of real auth.
type Handler struct {
	currentUserID string
	feed          *service.FeedService
	social        *service.SocialService
	invites       *service.InviteService
	bookings      *service.BookingService
	concierge     *agent.Concierge
}

func NewHandler(
	currentUserID string,
	feed *service.FeedService,
	social *service.SocialService,
	invites *service.InviteService,
	bookings *service.BookingService,
	concierge *agent.Concierge,
) *Handler {
	return &Handler{
		currentUserID: currentUserID,
		feed:          feed,
		social:        social,
		invites:       invites,
		bookings:      bookings,
		concierge:     concierge,
	}
}

// RegisterHandlers wires every public route onto the engine.
func RegisterHandlers(r *gin.Engine, h *Handler) {
	r.GET("/health", h.GetHealth)

	r.GET("/venues", h.GetVenues)
	r.GET("/venues/:id", h.GetVenue)
	r.POST("/venues/:id/heart", h.HeartVenue)
	r.DELETE("/venues/:id/heart", h.UnheartVenue)

	r.GET("/social/friends", h.GetFriends)
	r.GET("/social/interested/:venueId", h.GetInterestedFriends)
	r.GET("/users/me", h.GetCurrentUser)

	r.GET("/invites", h.GetInvites)
	r.POST("/invites", h.CreateInvites)
	r.PATCH("/invites/:id", h.UpdateInvite)

	r.GET("/bookings", h.GetBookings)
	r.POST("/bookings", h.CreateBooking)

	r.GET("/agent/suggestion", h.GetSuggestion)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetVenues(c *gin.Context) {
	feed, err := h.feed.BuildFeed(c.Request.Context(), h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *Handler) GetVenue(c *gin.Context) {
	venue, err := h.feed.GetVenue(c.Request.Context(), c.Param("id"), h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, venue)
}

func (h *Handler) HeartVenue(c *gin.Context) {
	venueID := c.Param("id")
	logger := log.WithField("venue_id", venueID)

	interest, created, err := h.social.Heart(c.Request.Context(), venueID, h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Already interested",
			"interest": interest,
		})
		return
	}

	logger.Info("interest added")
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Interest added",
		"interest": interest,
		"venue":    h.enrichedOrNil(c, venueID),
	})
}

func (h *Handler) UnheartVenue(c *gin.Context) {
	venueID := c.Param("id")
	logger := log.WithField("venue_id", venueID)

	if err := h.social.Unheart(c.Request.Context(), venueID, h.currentUserID); err != nil {
		h.respondError(c, err)
		return
	}

	logger.Info("interest removed")
	c.JSON(http.StatusOK, gin.H{
		"message": "Interest removed",
		"venue":   h.enrichedOrNil(c, venueID),
	})
}

// enrichedOrNil re-enriches a venue for heart/unheart responses; a missing
// venue degrades to null instead of failing the mutation that succeeded.
func (h *Handler) enrichedOrNil(c *gin.Context, venueID string) any {
	venue, err := h.feed.GetVenue(c.Request.Context(), venueID, h.currentUserID)
	if err != nil {
		if !errors.Is(err, service.ErrVenueNotFound) {
			log.WithError(err).WithField("venue_id", venueID).Error("failed to enrich venue")
		}
		return nil
	}
	return venue
}

func (h *Handler) GetFriends(c *gin.Context) {
	friends, err := h.social.Friends(c.Request.Context(), h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"friends": friends,
		"count":   len(friends),
	})
}

func (h *Handler) GetInterestedFriends(c *gin.Context) {
	venueID := c.Param("venueId")

	interested, err := h.social.InterestedFriends(c.Request.Context(), venueID, h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"venueId":           venueID,
		"interestedFriends": interested,
		"count":             len(interested),
	})
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, err := h.social.CurrentUser(c.Request.Context(), h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) GetInvites(c *gin.Context) {
	list, err := h.invites.List(c.Request.Context(), h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type createInviteRequest struct {
	VenueID      string    `json:"venueId" binding:"required"`
	ToUserIDs    []string  `json:"toUserIds" binding:"required"`
	ProposedTime time.Time `json:"proposedTime" binding:"required"`
}

func (h *Handler) CreateInvites(c *gin.Context) {
	var body createInviteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.invites.Create(c.Request.Context(), body.VenueID, body.ToUserIDs, body.ProposedTime, h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	log.WithFields(log.Fields{"venue_id": body.VenueID, "count": len(created)}).Info("invites created")
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Created %d invite(s)", len(created)),
		"invites": created,
	})
}

type updateInviteRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted declined"`
}

func (h *Handler) UpdateInvite(c *gin.Context) {
	inviteID := c.Param("id")
	logger := log.WithField("invite_id", inviteID)

	var body updateInviteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid status. Must be 'accepted' or 'declined'"})
		return
	}

	invite, err := h.invites.UpdateStatus(c.Request.Context(), inviteID, domain.InviteStatus(body.Status), h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	logger.WithField("status", invite.Status).Info("invite updated")
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Invite %s", invite.Status),
		"invite":  invite,
	})
}

func (h *Handler) GetBookings(c *gin.Context) {
	bookings, err := h.bookings.ListForUser(c.Request.Context(), h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

type createBookingRequest struct {
	VenueID   string    `json:"venueId" binding:"required"`
	PartySize int       `json:"partySize" binding:"required,gt=0"`
	DateTime  time.Time `json:"dateTime" binding:"required"`
	GuestIDs  []string  `json:"guestIds"`
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var body createBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing required fields: venueId, partySize, dateTime"})
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), body.VenueID, body.PartySize, body.DateTime, body.GuestIDs, h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	log.WithFields(log.Fields{
		"venue_id":          body.VenueID,
		"confirmation_code": booking.ConfirmationCode,
	}).Info("booking confirmed")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed!",
		"booking": booking,
	})
}

func (h *Handler) GetSuggestion(c *gin.Context) {
	venueID := c.Query("venueId")
	if venueID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Missing required query parameter: venueId"})
		return
	}

	suggestion, err := h.concierge.Suggest(c.Request.Context(), venueID, h.currentUserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	// No interested friends means no basis for a suggestion; the client
	// expects a literal null.
	c.JSON(http.StatusOK, suggestion)
}

// respondError maps service errors onto HTTP statuses and the {error}
// body shape the client expects.
func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var stateErr *service.InvalidStateError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: stateErr.Message()})
	case errors.Is(err, service.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Venue not found"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "User not found"})
	case errors.Is(err, service.ErrInviteNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Invite not found"})
	case errors.Is(err, service.ErrInterestNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Interest not found"})
	case errors.Is(err, service.ErrNotRecipient):
		c.JSON(http.StatusForbidden, errorResponse{Error: "Only the recipient can update this invite"})
	default:
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
