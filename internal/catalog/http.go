package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register mounts the read-only catalog routes.
func Register(rg *gin.RouterGroup, repo *Repo) {
	rg.GET("/methodologies", func(c *gin.Context) {
		category := c.Query("category")
		if category != "" && category != CategoryMining && category != CategoryAssembling {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown category"})
			return
		}

		items, err := repo.List(c.Request.Context(), category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "methodologies": items})
	})
}
