package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abdulah-eng/driverApp/internal/server/mw"
)

func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(mw.CtxUserID).(uuid.UUID)
}

// mustParseUUID is only for values that were uuid strings when we minted them
// (JWT claims); Nil falls through to a not-found downstream.
func mustParseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
