package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulah-eng/driverApp/internal/server/resp"
	"github.com/Abdulah-eng/driverApp/internal/users"
)

type ProfileHandler struct {
	logger *zap.Logger
	users  *users.Repo
}

func NewProfileHandler(logger *zap.Logger, usersRepo *users.Repo) *ProfileHandler {
	return &ProfileHandler{logger: logger, users: usersRepo}
}

// GET /v1/profile — the "who am I" call the app restores its session with.
func (h *ProfileHandler) Get(c *gin.Context) {
	u, err := h.users.FindByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusUnauthorized, "user not found")
			return
		}
		h.logger.Error("find user failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.OK(c, gin.H{"user": u})
}

type patchProfileReq struct {
	FullName  *string `json:"full_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// PATCH /v1/profile
func (h *ProfileHandler) Patch(c *gin.Context) {
	var req patchProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.FullName != nil {
		v := strings.TrimSpace(*req.FullName)
		if len(v) < 2 {
			resp.Error(c, http.StatusBadRequest, "full_name is too short")
			return
		}
		req.FullName = &v
	}
	if req.Email != nil {
		v := strings.TrimSpace(*req.Email)
		if !strings.Contains(v, "@") {
			resp.Error(c, http.StatusBadRequest, "invalid email")
			return
		}
		req.Email = &v
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), currentUserID(c), users.UpdateProfile{
		FullName:  req.FullName,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusUnauthorized, "user not found")
			return
		}
		h.logger.Error("update profile failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.OK(c, gin.H{"user": u})
}
