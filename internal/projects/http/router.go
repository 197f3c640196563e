package http

import "github.com/gin-gonic/gin"

// Register mounts the project routes on the given group.
func Register(rg *gin.RouterGroup, h *Handler) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("/:id/drive-sync", h.resync)
}
