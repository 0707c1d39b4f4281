package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Abdulah-eng/driverApp/internal/notifications"
	"github.com/Abdulah-eng/driverApp/internal/server/resp"
)

type NotificationsHandler struct {
	logger *zap.Logger
	notifs *notifications.Repo

	internalToken string
}

func NewNotificationsHandler(logger *zap.Logger, notifsRepo *notifications.Repo, internalToken string) *NotificationsHandler {
	return &NotificationsHandler{logger: logger, notifs: notifsRepo, internalToken: internalToken}
}

type notificationView struct {
	notifications.Notification
	Time string `json:"time"`
}

// GET /v1/notifications?unread=true — unread_count is recomputed on every
// read, never kept as a counter.
func (h *NotificationsHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	unreadOnly := c.Query("unread") == "true"

	list, err := h.notifs.List(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		h.logger.Error("list notifications failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	unread, err := h.notifs.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("unread count failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	now := time.Now()
	views := make([]notificationView, 0, len(list))
	for _, n := range list {
		views = append(views, notificationView{
			Notification: n,
			Time:         notifications.RelativeTime(n.CreatedAt, now),
		})
	}

	resp.OK(c, gin.H{
		"notifications": views,
		"unread_count":  unread,
	})
}

// PATCH /v1/notifications/:id/read — idempotent; re-marking a read
// notification succeeds without touching the row.
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notifs.MarkRead(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			resp.Error(c, http.StatusNotFound, "notification not found")
			return
		}
		h.logger.Error("mark read failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.OK(c, gin.H{"event": "read"})
}

// POST /v1/notifications/read-all
func (h *NotificationsHandler) MarkAllRead(c *gin.Context) {
	affected, err := h.notifs.MarkAllRead(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.logger.Error("mark all read failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.OK(c, gin.H{
		"event":    "read_all",
		"affected": affected,
	})
}

type createNotificationReq struct {
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	Title   string    `json:"title" binding:"required"`
	Message string    `json:"message" binding:"required"`
	Type    string    `json:"type,omitempty"`
}

// canCreateNotificationFor decides who may insert a notification: a user for
// themselves always, anyone else only with the configured internal token.
// An empty configured token disables the cross-user path entirely.
func canCreateNotificationFor(callerID, targetID uuid.UUID, presented, configured string) bool {
	if callerID == targetID {
		return true
	}
	return configured != "" && presented == configured
}

// POST /v1/notifications — how backend jobs insert messages for a user.
func (h *NotificationsHandler) Create(c *gin.Context) {
	var req createNotificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if !canCreateNotificationFor(currentUserID(c), req.UserID, strings.TrimSpace(c.GetHeader("X-Internal-Token")), h.internalToken) {
		resp.Error(c, http.StatusForbidden, "cannot create notifications for another user")
		return
	}

	n, err := h.notifs.Create(c.Request.Context(), notifications.CreateNotification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	})
	if err != nil {
		h.logger.Error("create notification failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.Created(c, gin.H{"notification": n})
}
