package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Abdulah-eng/driverApp/internal/security"
	"github.com/Abdulah-eng/driverApp/internal/server/resp"
	"github.com/Abdulah-eng/driverApp/internal/store"
	"github.com/Abdulah-eng/driverApp/internal/telegram"
	"github.com/Abdulah-eng/driverApp/internal/users"
	"github.com/Abdulah-eng/driverApp/internal/util"
)

type AuthHandler struct {
	logger *zap.Logger

	users    *users.Repo
	otp      *store.OTPStore
	sessions *store.SignupSessionStore
	refresh  *store.RefreshStore
	resets   *store.ResetStore
	jwtm     *security.JWTManager
	tg       *telegram.GatewayClient

	otpTTL time.Duration
	otpLen int
}

func NewAuthHandler(
	logger *zap.Logger,
	usersRepo *users.Repo,
	otpStore *store.OTPStore,
	sessionStore *store.SignupSessionStore,
	refreshStore *store.RefreshStore,
	resetStore *store.ResetStore,
	jwtm *security.JWTManager,
	tg *telegram.GatewayClient,
	otpTTL time.Duration,
	otpLen int,
) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		users:    usersRepo,
		otp:      otpStore,
		sessions: sessionStore,
		refresh:  refreshStore,
		resets:   resetStore,
		jwtm:     jwtm,
		tg:       tg,
		otpTTL:   otpTTL,
		otpLen:   otpLen,
	}
}

func (h *AuthHandler) issueSession(c *gin.Context, u *users.User, event string) {
	tokens, refreshClaims, err := h.jwtm.Issue(u.ID)
	if err != nil {
		resp.Error(c, http.StatusInternalServerError, "token issue failed")
		return
	}
	_ = h.refresh.Put(c.Request.Context(), refreshClaims.UserID, refreshClaims.JTI)

	resp.OK(c, gin.H{
		"event":  event,
		"tokens": tokens,
		"user":   u,
	})
}

type signupReq struct {
	Phone    string  `json:"phone" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Email    *string `json:"email,omitempty"`
	FullName string  `json:"full_name" binding:"required"`
}

// POST /v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}

	// All validation happens before any DB work.
	phone, err := util.NormalizeE164(req.Phone)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(req.FullName)
	if len(name) < 2 {
		resp.Error(c, http.StatusBadRequest, "full_name is too short")
		return
	}
	if req.Email != nil {
		v := strings.TrimSpace(*req.Email)
		if v == "" {
			req.Email = nil
		} else if !strings.Contains(v, "@") {
			resp.Error(c, http.StatusBadRequest, "invalid email")
			return
		} else {
			req.Email = &v
		}
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	u, err := h.users.Create(c.Request.Context(), users.CreateUser{
		Phone:        phone,
		PasswordHash: hash,
		Email:        req.Email,
		FullName:     name,
	})
	if err != nil {
		if errors.Is(err, users.ErrPhoneTaken) {
			resp.Error(c, http.StatusConflict, "phone already registered")
			return
		}
		h.logger.Error("create user failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	h.issueSession(c, u, "signup")
}

type loginReq struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	phone, err := util.NormalizeE164(req.Phone)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.FindByPhone(c.Request.Context(), phone)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			resp.Error(c, http.StatusUnauthorized, "invalid phone or password")
			return
		}
		h.logger.Error("find user by phone failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	if !util.ComparePassword(u.PasswordHash, req.Password) {
		resp.Error(c, http.StatusUnauthorized, "invalid phone or password")
		return
	}

	h.issueSession(c, u, "login")
}

type sendOTPReq struct {
	Phone string `json:"phone" binding:"required"`
}

// POST /v1/auth/phone
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	phone, err := util.NormalizeE164(req.Phone)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	code, err := util.GenerateNumericOTP(h.otpLen)
	if err != nil {
		resp.Error(c, http.StatusInternalServerError, "otp generation failed")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	requestID, err := h.tg.SendVerificationMessage(ctx, phone, code, int(h.otpTTL.Seconds()))
	if err != nil {
		h.logger.Warn("telegram sendVerificationMessage failed", zap.Error(err))
		resp.Error(c, http.StatusBadGateway, "otp send failed")
		return
	}

	ip := strings.TrimSpace(c.ClientIP())
	if err := h.otp.Save(ctx, phone, code, requestID, ip); err != nil {
		switch {
		case errors.Is(err, store.ErrOTPCooldown):
			resp.Error(c, http.StatusTooManyRequests, "otp cooldown")
		case errors.Is(err, store.ErrOTPRateLimited):
			resp.Error(c, http.StatusTooManyRequests, "otp rate limited")
		default:
			h.logger.Error("otp save failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	resp.OK(c, gin.H{
		"event":       "otp_sent",
		"ttl_seconds": int(h.otpTTL.Seconds()),
	})
}

type verifyOTPReq struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// POST /v1/auth/otp/verify
// A known phone logs straight in; an unknown one gets a single-use signup
// session to finish registration with.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	phone, err := util.NormalizeE164(req.Phone)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	otp := strings.TrimSpace(req.OTP)
	if len(otp) < 4 || len(otp) > 8 || !util.IsNumeric(otp) {
		resp.Error(c, http.StatusBadRequest, "otp must be numeric 4..8 digits")
		return
	}

	if _, err := h.otp.Verify(c.Request.Context(), phone, otp); err != nil {
		switch {
		case errors.Is(err, store.ErrOTPExpired):
			resp.Error(c, http.StatusUnauthorized, "otp expired")
		case errors.Is(err, store.ErrOTPInvalid):
			resp.Error(c, http.StatusUnauthorized, "otp invalid")
		case errors.Is(err, store.ErrOTPMaxAttempts):
			resp.Error(c, http.StatusTooManyRequests, "otp max attempts exceeded")
		default:
			h.logger.Error("otp verify error", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	u, err := h.users.FindByPhone(c.Request.Context(), phone)
	if err == nil {
		h.issueSession(c, u, "login")
		return
	}
	if !errors.Is(err, users.ErrNotFound) {
		h.logger.Error("find user by phone failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	sessionID, err := h.sessions.Create(c.Request.Context(), phone)
	if err != nil {
		h.logger.Error("create signup session failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	resp.OK(c, gin.H{
		"event":      "register",
		"session_id": sessionID,
	})
}

type completeSignupReq struct {
	SessionID string  `json:"session_id" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	FullName  string  `json:"full_name" binding:"required"`
	Email     *string `json:"email,omitempty"`
}

// POST /v1/auth/otp/signup
func (h *AuthHandler) CompleteSignup(c *gin.Context) {
	var req completeSignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(req.FullName)
	if len(name) < 2 {
		resp.Error(c, http.StatusBadRequest, "full_name is too short")
		return
	}

	phone, err := h.sessions.Consume(c.Request.Context(), strings.TrimSpace(req.SessionID))
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			resp.Error(c, http.StatusUnauthorized, "session_id expired or invalid")
			return
		}
		h.logger.Error("consume signup session failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	// Idempotency / race: if the phone got registered meanwhile, log in.
	if existing, err := h.users.FindByPhone(c.Request.Context(), phone); err == nil {
		h.issueSession(c, existing, "login")
		return
	} else if !errors.Is(err, users.ErrNotFound) {
		h.logger.Error("find user by phone failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	u, err := h.users.Create(c.Request.Context(), users.CreateUser{
		Phone:        phone,
		PasswordHash: hash,
		Email:        req.Email,
		FullName:     name,
	})
	if err != nil {
		h.logger.Error("create user failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	h.issueSession(c, u, "signup")
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	claims, err := h.jwtm.ParseRefresh(strings.TrimSpace(req.RefreshToken))
	if err != nil {
		resp.Error(c, http.StatusUnauthorized, "invalid refresh_token")
		return
	}
	// rotate: old jti must still exist
	if err := h.refresh.Consume(c.Request.Context(), claims.UserID, claims.JTI); err != nil {
		resp.Error(c, http.StatusUnauthorized, "invalid refresh_token")
		return
	}

	u, err := h.users.FindByID(c.Request.Context(), mustParseUUID(claims.UserID))
	if err != nil {
		resp.Error(c, http.StatusUnauthorized, "invalid refresh_token")
		return
	}

	h.issueSession(c, u, "refresh")
}

// POST /v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	claims, err := h.jwtm.ParseRefresh(strings.TrimSpace(req.RefreshToken))
	if err == nil {
		_ = h.refresh.Consume(c.Request.Context(), claims.UserID, claims.JTI)
	}
	// logout always succeeds from the client's perspective
	resp.OK(c, gin.H{"event": "logout"})
}

type resetRequestReq struct {
	Phone string `json:"phone" binding:"required"`
}

// POST /v1/auth/reset-password/request
func (h *AuthHandler) ResetPasswordRequest(c *gin.Context) {
	var req resetRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	phone, err := util.NormalizeE164(req.Phone)
	if err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.FindByPhone(c.Request.Context(), phone)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			// don't leak which phones exist
			resp.OK(c, gin.H{"event": "reset_requested"})
			return
		}
		h.logger.Error("find user by phone failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	code, err := util.GenerateNumericOTP(h.otpLen)
	if err != nil {
		resp.Error(c, http.StatusInternalServerError, "otp generation failed")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()
	if _, err := h.tg.SendVerificationMessage(ctx, phone, code, int(h.otpTTL.Seconds())); err != nil {
		h.logger.Warn("telegram sendVerificationMessage failed", zap.Error(err))
		resp.Error(c, http.StatusBadGateway, "otp send failed")
		return
	}

	sessionID, err := h.resets.Create(ctx, u.ID, phone, code)
	if err != nil {
		h.logger.Error("create reset session failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	resp.OK(c, gin.H{
		"event":      "reset_requested",
		"session_id": sessionID,
	})
}

type resetConfirmReq struct {
	SessionID   string `json:"session_id" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// POST /v1/auth/reset-password/confirm
func (h *AuthHandler) ResetPasswordConfirm(c *gin.Context) {
	var req resetConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := util.ValidatePassword(req.NewPassword); err != nil {
		resp.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := h.resets.Verify(c.Request.Context(), strings.TrimSpace(req.SessionID), strings.TrimSpace(req.OTP))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrResetExpired):
			resp.Error(c, http.StatusUnauthorized, "reset session expired")
		case errors.Is(err, store.ErrResetInvalidOTP):
			resp.Error(c, http.StatusUnauthorized, "otp invalid")
		case errors.Is(err, store.ErrResetMaxAttempts):
			resp.Error(c, http.StatusTooManyRequests, "otp max attempts exceeded")
		default:
			h.logger.Error("reset verify error", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.users.UpdatePassword(c.Request.Context(), userID, hash); err != nil {
		h.logger.Error("update password failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	resp.OK(c, gin.H{"event": "password_reset"})
}
