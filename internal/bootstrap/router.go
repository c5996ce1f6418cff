package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	httpapi "github.com/clientdeck/portal-backend/internal/api/http"
	"github.com/clientdeck/portal-backend/internal/api/http/middleware"
	"github.com/clientdeck/portal-backend/internal/auth"
	authhttp "github.com/clientdeck/portal-backend/internal/auth/http"
	authrepo "github.com/clientdeck/portal-backend/internal/auth/repository"
	authservice "github.com/clientdeck/portal-backend/internal/auth/service"
	"github.com/clientdeck/portal-backend/internal/dashboard"
	projhttp "github.com/clientdeck/portal-backend/internal/projects/http"
	"github.com/clientdeck/portal-backend/internal/projects/repository"
	projservice "github.com/clientdeck/portal-backend/internal/projects/service"
	"github.com/clientdeck/portal-backend/internal/todos"
	"github.com/clientdeck/portal-backend/internal/uploads"
)

const statsCacheTTL = 30 * time.Second

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Cache       *redis.Client
	JWTSecret   []byte
	TokenTTL    time.Duration
	LoginRate   float64
	LoginBurst  int
	UploadDir   string
	Log         zerolog.Logger
}

// BuildRouter assembles every repository, service and handler behind the
// HTTP surface. All protected routes hang off one authenticated group; the
// admin-only ones off one admin group inside it.
func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Log))
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	projectRepo := repository.NewProjectRepository(dep.DB)
	chatRepo := repository.NewChatRepository(dep.DB)
	fileRepo := repository.NewFileRepository(dep.DB)
	adminRepo := authrepo.NewAdminRepository(dep.DB)
	todoRepo := todos.NewRepo(dep.DB)

	statsCache := dashboard.NewStatsCache(dep.Cache, statsCacheTTL)

	authSvc := authservice.NewAuthService(adminRepo, projectRepo, dep.JWTSecret, dep.TokenTTL, dep.Log)
	projectSvc := projservice.NewProjectService(projectRepo, chatRepo, fileRepo, statsCache, dep.Log)
	chatSvc := projservice.NewChatService(chatRepo, fileRepo, dep.Log)
	dashSvc := dashboard.NewService(projectRepo, todoRepo, statsCache, dep.Log)

	uploadSvc, err := uploads.NewService(dep.UploadDir, fileRepo, dep.Log)
	if err != nil {
		return nil, err
	}

	authGroup := r.Group("/auth")
	authGroup.Use(auth.LoginRateLimit(rate.Limit(dep.LoginRate), dep.LoginBurst))
	authhttp.New(authSvc).Register(authGroup)

	api := r.Group("")
	api.Use(auth.RequireAuth(dep.JWTSecret))

	projhttp.New(projectSvc, chatSvc).Register(api)
	uploads.NewHandler(uploadSvc).Register(api)

	adminGroup := api.Group("")
	adminGroup.Use(auth.RequireAdmin())
	dashboard.NewHandler(dashSvc).Register(adminGroup)
	todos.NewHandler(todoRepo).Register(adminGroup)

	// Blob serving is unauthenticated: holding the URL is the capability.
	r.Static("/files", uploadSvc.Dir())

	return r, nil
}
