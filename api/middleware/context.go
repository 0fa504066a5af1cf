package middleware

import (
	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey  = "auth_user_id"
	contextProfileKey = "auth_profile"
)

func SetAuthContext(c echo.Context, userID string, profile string) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextProfileKey, profile)
}

func UserIDFromContext(c echo.Context) (string, bool) {
	userID, ok := c.Get(contextUserIDKey).(string)
	return userID, ok && userID != ""
}

func ProfileFromContext(c echo.Context) (string, bool) {
	profile, ok := c.Get(contextProfileKey).(string)
	return profile, ok
}
