package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vidstream/vidstream-backend/pkg/apperr"
	"github.com/vidstream/vidstream-backend/pkg/response"
)

// fail writes a structured rejection derived from the error taxonomy. Faults
// are reported opaquely; everything else carries its machine code.
func fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= 500 {
		response.Fail(c, status, "internal error", nil)
		return
	}
	response.Fail(c, status, err.Error(), gin.H{
		"code": apperr.CodeOf(err),
		"kind": apperr.KindOf(err).String(),
	})
}

func actor(c *gin.Context) (userID, username string) {
	return c.GetString("userID"), c.GetString("userName")
}
