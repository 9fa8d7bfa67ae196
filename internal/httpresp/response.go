package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes data as the 200 body unchanged. Listing endpoints return bare
// arrays, which is what clients already parse.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Message writes the {"message": ...} acknowledgement used after deletes.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
