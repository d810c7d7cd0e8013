package card

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the public card routes. Everything is
// unauthenticated.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.Index)
	r.POST("/generate", h.Generate)
	r.GET("/view/:id", h.View)
}
