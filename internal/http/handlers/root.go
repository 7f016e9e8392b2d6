package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Todo API is running"})
}

// TestDB runs SELECT 1 and reports the outcome in the body; it always
// answers 200.
func (h *Handler) TestDB(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	var result int
	if err := h.DB.GetContext(ctx, &result, "SELECT 1"); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "connected", "result": result})
}
