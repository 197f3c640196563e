package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/paper-planes/pm-backend/internal/api/http"
	"github.com/paper-planes/pm-backend/internal/api/http/middleware"
	"github.com/paper-planes/pm-backend/internal/catalog"
	projectshttp "github.com/paper-planes/pm-backend/internal/projects/http"
	"github.com/paper-planes/pm-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sql.DB
	Projects    *service.ProjectService
	Catalog     *catalog.Repo
	Log         *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	projectsGroup := api.Group("/projects")
	projectshttp.Register(projectsGroup, projectshttp.NewHandler(dep.Projects))

	catalog.Register(api, dep.Catalog)

	return r
}
