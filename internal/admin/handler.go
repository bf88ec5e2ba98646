package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/RestartDK/selene/internal/domain"
	"github.com/RestartDK/selene/internal/store"
)

// Handler exposes raw collection access on the admin port. This is the
// surface that seeds and mutates users and venues; the public API treats
// both as read-only.
type Handler struct {
	store store.Store
}

func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

// RegisterHandlers wires the admin routes onto the engine.
func RegisterHandlers(r *gin.Engine, h *Handler) {
	r.GET("/admin/collections", h.ListCollections)
	r.GET("/admin/collections/:name", h.GetCollection)
	r.PUT("/admin/collections/:name", h.ReplaceCollection)
}

func (h *Handler) ListCollections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"collections": store.Collections})
}

func (h *Handler) GetCollection(c *gin.Context) {
	name := c.Param("name")
	ctx := c.Request.Context()

	var (
		data any
		err  error
	)
	switch name {
	case store.CollectionUsers:
		data, err = h.store.LoadUsers(ctx)
	case store.CollectionVenues:
		data, err = h.store.LoadVenues(ctx)
	case store.CollectionInterests:
		data, err = h.store.LoadInterests(ctx)
	case store.CollectionInvites:
		data, err = h.store.LoadInvites(ctx)
	case store.CollectionBookings:
		data, err = h.store.LoadBookings(ctx)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	if err != nil {
		log.WithError(err).WithField("collection", name).Error("failed to load collection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, data)
}

func (h *Handler) ReplaceCollection(c *gin.Context) {
	name := c.Param("name")
	ctx := c.Request.Context()

	var err error
	switch name {
	case store.CollectionUsers:
		var users []domain.User
		if bindErr := c.ShouldBindJSON(&users); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		err = h.store.SaveUsers(ctx, users)
	case store.CollectionVenues:
		var venues []domain.Venue
		if bindErr := c.ShouldBindJSON(&venues); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		err = h.store.SaveVenues(ctx, venues)
	case store.CollectionInterests:
		var interests []domain.Interest
		if bindErr := c.ShouldBindJSON(&interests); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		err = h.store.SaveInterests(ctx, interests)
	case store.CollectionInvites:
		var invites []domain.Invite
		if bindErr := c.ShouldBindJSON(&invites); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		err = h.store.SaveInvites(ctx, invites)
	case store.CollectionBookings:
		var bookings []domain.Booking
		if bindErr := c.ShouldBindJSON(&bookings); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		err = h.store.SaveBookings(ctx, bookings)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	if err != nil {
		log.WithError(err).WithField("collection", name).Error("failed to replace collection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	log.WithField("collection", name).Info("collection replaced")
	c.Status(http.StatusNoContent)
}
