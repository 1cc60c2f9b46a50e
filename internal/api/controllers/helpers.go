package controllers

import (
	"net/http"
	"strconv"

	"datecourse/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUserID reads the id stored by JWTAuthMiddleware. It writes a 401 and
// returns false when the id is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

func parsePaging(c *gin.Context, defaultSize string) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", defaultSize))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}
	return page, pageSize, true
}
