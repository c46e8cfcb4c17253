package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeneeldumasia/mp/internal/domain/entity"
	"github.com/jeneeldumasia/mp/internal/presentation/http/dto/response"
)

// bindJSON decodes the body into req, answering 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// saleID reads the :id path parameter
func saleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid sale ID")
		return 0, false
	}
	return uint(id), true
}

// dateOrToday defaults an empty date query to the local calendar day
func dateOrToday(date string) string {
	if date = strings.TrimSpace(date); date != "" {
		return date
	}
	return time.Now().Format(entity.DateLayout)
}
