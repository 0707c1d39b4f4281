package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abdulah-eng/driverApp/internal/domain"
	"github.com/Abdulah-eng/driverApp/internal/earnings"
	"github.com/Abdulah-eng/driverApp/internal/money"
	"github.com/Abdulah-eng/driverApp/internal/server/resp"
)

type EarningsHandler struct {
	logger   *zap.Logger
	earnings *earnings.Repo
}

func NewEarningsHandler(logger *zap.Logger, earningsRepo *earnings.Repo) *EarningsHandler {
	return &EarningsHandler{logger: logger, earnings: earningsRepo}
}

func (h *EarningsHandler) fetch(c *gin.Context) ([]earnings.Earning, domain.Period, bool) {
	period := domain.PeriodAll
	if s := c.Query("period"); s != "" {
		p, ok := domain.ParsePeriod(s)
		if !ok {
			resp.Error(c, http.StatusBadRequest, "invalid period (allowed: today, week, month, all)")
			return nil, "", false
		}
		period = p
	}

	var since *time.Time
	if start, ok := earnings.PeriodStart(period, time.Now()); ok {
		since = &start
	}

	rows, err := h.earnings.ListByDriver(c.Request.Context(), currentUserID(c), since)
	if err != nil {
		h.logger.Error("list earnings failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return nil, "", false
	}
	return rows, period, true
}

// GET /v1/earnings?period=today|week|month|all
func (h *EarningsHandler) Summary(c *gin.Context) {
	rows, period, ok := h.fetch(c)
	if !ok {
		return
	}
	resp.OK(c, gin.H{
		"period":  period,
		"summary": earnings.Aggregate(rows, time.Now()),
	})
}

// GET /v1/earnings/entries?period=
func (h *EarningsHandler) Entries(c *gin.Context) {
	rows, period, ok := h.fetch(c)
	if !ok {
		return
	}
	resp.OK(c, gin.H{
		"period":  period,
		"entries": rows,
	})
}

type createEarningReq struct {
	TripID      *uuid.UUID `json:"trip_id,omitempty"`
	Amount      string     `json:"amount" binding:"required"`
	Type        string     `json:"type" binding:"required"`
	Description string     `json:"description,omitempty"`
}

// POST /v1/earnings — append-only; entries are never edited.
func (h *EarningsHandler) Create(c *gin.Context) {
	var req createEarningReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	typ, ok := domain.ParseEarningType(req.Type)
	if !ok {
		resp.Error(c, http.StatusBadRequest, "invalid type (allowed: trip, tip, bonus)")
		return
	}

	e, err := h.earnings.Append(c.Request.Context(), earnings.CreateEarning{
		DriverID:    currentUserID(c),
		TripID:      req.TripID,
		Amount:      amount,
		Type:        typ,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error("append earning failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.Created(c, gin.H{"earning": e})
}
