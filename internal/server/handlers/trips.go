package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abdulah-eng/driverApp/internal/domain"
	"github.com/Abdulah-eng/driverApp/internal/money"
	"github.com/Abdulah-eng/driverApp/internal/server/resp"
	"github.com/Abdulah-eng/driverApp/internal/trips"
)

type TripsHandler struct {
	logger *zap.Logger
	trips  *trips.Repo
}

func NewTripsHandler(logger *zap.Logger, tripsRepo *trips.Repo) *TripsHandler {
	return &TripsHandler{logger: logger, trips: tripsRepo}
}

type createTripReq struct {
	PickupLocation  string   `json:"pickup_location" binding:"required"`
	DropoffLocation string   `json:"dropoff_location" binding:"required"`
	PickupLat       *float64 `json:"pickup_lat,omitempty"`
	PickupLng       *float64 `json:"pickup_lng,omitempty"`
	DropoffLat      *float64 `json:"dropoff_lat,omitempty"`
	DropoffLng      *float64 `json:"dropoff_lng,omitempty"`
	PassengerName   *string  `json:"passenger_name,omitempty"`
	PassengerPhone  *string  `json:"passenger_phone,omitempty"`
	Fare            string   `json:"fare" binding:"required"`
	VehicleType     string   `json:"vehicle_type" binding:"required"`
}

// POST /v1/trips — a new trip always starts pending; assignment is someone
// else's job.
func (h *TripsHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	fare, err := money.Parse(req.Fare)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.trips.Create(c.Request.Context(), trips.CreateTrip{
		DriverID:        currentUserID(c),
		PickupLocation:  strings.TrimSpace(req.PickupLocation),
		DropoffLocation: strings.TrimSpace(req.DropoffLocation),
		PickupLat:       req.PickupLat,
		PickupLng:       req.PickupLng,
		DropoffLat:      req.DropoffLat,
		DropoffLng:      req.DropoffLng,
		PassengerName:   req.PassengerName,
		PassengerPhone:  req.PassengerPhone,
		Fare:            fare,
		VehicleType:     strings.TrimSpace(req.VehicleType),
	})
	if err != nil {
		h.logger.Error("create trip failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.Created(c, gin.H{"trip": t})
}

// GET /v1/trips?status=&limit=
func (h *TripsHandler) List(c *gin.Context) {
	var f trips.ListFilter
	if s := c.Query("status"); s != "" {
		st, ok := domain.ParseTripStatus(s)
		if !ok {
			resp.Error(c, http.StatusBadRequest, "invalid status (allowed: pending, active, completed, cancelled)")
			return
		}
		f.Status = &st
	}
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 200 {
			resp.Error(c, http.StatusBadRequest, "invalid limit (1..200)")
			return
		}
		f.Limit = n
	}

	list, err := h.trips.List(c.Request.Context(), currentUserID(c), f)
	if err != nil {
		h.logger.Error("list trips failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.OK(c, gin.H{"trips": list})
}

// GET /v1/trips/:id
func (h *TripsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid trip id")
		return
	}

	t, err := h.trips.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "trip not found")
			return
		}
		h.logger.Error("find trip failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	if t.DriverID != currentUserID(c) {
		resp.Error(c, http.StatusNotFound, "trip not found")
		return
	}
	resp.OK(c, gin.H{"trip": t})
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// PATCH /v1/trips/:id/status — the only write path a trip has after
// creation. At-most-once: there is no dedupe key, callers must not blindly
// retry.
func (h *TripsHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	target, ok := domain.ParseTripStatus(req.Status)
	if !ok {
		resp.Error(c, http.StatusBadRequest, "invalid status (allowed: pending, active, completed, cancelled)")
		return
	}

	existing, err := h.trips.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, trips.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "trip not found")
			return
		}
		h.logger.Error("find trip failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	if existing.DriverID != currentUserID(c) {
		resp.Error(c, http.StatusNotFound, "trip not found")
		return
	}

	t, err := h.trips.UpdateStatus(c.Request.Context(), id, target)
	if err != nil {
		switch {
		case errors.Is(err, trips.ErrNotFound):
			resp.Error(c, http.StatusNotFound, "trip not found")
		case errors.Is(err, trips.ErrInvalidTransition):
			resp.Error(c, http.StatusConflict, "invalid status transition")
		default:
			h.logger.Error("update trip status failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
		}
		return
	}
	resp.OK(c, gin.H{"trip": t})
}
