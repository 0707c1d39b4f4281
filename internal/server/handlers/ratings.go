package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abdulah-eng/driverApp/internal/ratings"
	"github.com/Abdulah-eng/driverApp/internal/server/resp"
	"github.com/Abdulah-eng/driverApp/internal/trips"
)

type RatingsHandler struct {
	logger  *zap.Logger
	ratings *ratings.Repo
	trips   *trips.Repo
}

func NewRatingsHandler(logger *zap.Logger, ratingsRepo *ratings.Repo, tripsRepo *trips.Repo) *RatingsHandler {
	return &RatingsHandler{logger: logger, ratings: ratingsRepo, trips: tripsRepo}
}

type submitRatingReq struct {
	Score   int      `json:"score"`
	Comment *string  `json:"comment,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// POST /v1/trips/:id/rating — once per trip, score 1..5. Score 0 ("no stars
// selected") never reaches the DB.
func (h *RatingsHandler) Submit(c *gin.Context) {
	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var req submitRatingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := ratings.ValidateScore(req.Score); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.trips.FindByID(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "trip not found")
			return
		}
		h.logger.Error("find trip failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	rt, err := h.ratings.Create(c.Request.Context(), ratings.CreateRating{
		TripID:   t.ID,
		DriverID: t.DriverID,
		Score:    req.Score,
		Comment:  req.Comment,
		Tags:     req.Tags,
	})
	if err != nil {
		if errors.Is(err, ratings.ErrAlreadyRated) {
			resp.Error(c, http.StatusConflict, "trip already rated")
			return
		}
		h.logger.Error("create rating failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.Created(c, gin.H{"rating": rt})
}

// GET /v1/ratings — the calling driver's received ratings.
func (h *RatingsHandler) List(c *gin.Context) {
	list, err := h.ratings.ListByDriver(c.Request.Context(), currentUserID(c), 100)
	if err != nil {
		h.logger.Error("list ratings failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.OK(c, gin.H{"ratings": list})
}
