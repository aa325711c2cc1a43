package handler

import (
	"errors"
	"io"
	"time"

	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/response"
	"github.com/bukusaku/bukusaku-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionKey is where the auth middleware stores the session claims.
const SessionKey = "session"

// GetSession extracts the session claims from the Gin context
func GetSession(c *gin.Context) *utils.SessionClaims {
	v, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*utils.SessionClaims)
	return claims
}

// paramID parses a UUID path parameter, answering 400 when it is malformed.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// bindOptionalJSON binds the body when there is one. An empty body leaves
// req untouched.
func bindOptionalJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	response.BadRequest(c, "Invalid request body: "+err.Error())
	return false
}

// parseDay reads a YYYY-MM-DD query value as the start of that day in loc.
func parseDay(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
