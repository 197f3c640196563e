package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/paper-planes/pm-backend/internal/codegen"
	"github.com/paper-planes/pm-backend/internal/projects/domain"
	"github.com/paper-planes/pm-backend/internal/projects/service"
	"github.com/paper-planes/pm-backend/internal/vault"
)

type Handler struct {
	svc *service.ProjectService
}

func NewHandler(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	in := service.CreateInput{
		Name:      strings.TrimSpace(req.Name),
		Client:    strings.TrimSpace(req.Client),
		Group:     domain.Group(req.Group),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if in.Name == "" || in.Client == "" || !in.Group.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name, client and group (left|right) are required"})
		return
	}

	result, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		status, msg := creationErrorStatus(err)
		c.JSON(status, gin.H{"ok": false, "error": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":       true,
		"project":  result.Project,
		"drive":    result.Drive,
		"warnings": result.Warnings,
	})
}

func (h *Handler) list(c *gin.Context) {
	filter := domain.ListFilter{
		Status:     domain.Status(c.Query("status")),
		Text:       c.Query("q"),
		SortBy:     domain.SortField(c.Query("sort")),
		Descending: c.Query("order") == "desc",
	}
	if filter.Status != "" && !filter.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown status"})
		return
	}
	if filter.SortBy != "" && !filter.SortBy.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown sort field"})
		return
	}

	items, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

// resync re-triggers the Drive mirror for an existing project. Failures stay
// warnings here too; the response is 200 with the sync outcome.
func (h *Handler) resync(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid id"})
		return
	}

	result, err := h.svc.Resync(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"project":  result.Project,
		"drive":    result.Drive,
		"warnings": result.Warnings,
	})
}

func creationErrorStatus(err error) (int, string) {
	var formatErr *codegen.FormatError
	var fsErr *vault.FilesystemError

	switch {
	case errors.Is(err, domain.ErrDuplicateCode):
		return http.StatusConflict, "project code already exists, regenerate and retry"
	case errors.As(err, &formatErr):
		return http.StatusBadGateway, formatErr.Error()
	case errors.As(err, &fsErr):
		return http.StatusInternalServerError, fsErr.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
