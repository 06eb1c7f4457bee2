package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/adcraft-app/adcraft-backend/config"
	httpapi "github.com/adcraft-app/adcraft-backend/internal/api/http"
	apimw "github.com/adcraft-app/adcraft-backend/internal/api/http/middleware"
	"github.com/adcraft-app/adcraft-backend/internal/auth"
	authhttp "github.com/adcraft-app/adcraft-backend/internal/auth/http"
	authmw "github.com/adcraft-app/adcraft-backend/internal/auth/middleware"
	authsvc "github.com/adcraft-app/adcraft-backend/internal/auth/service"
	projecthttp "github.com/adcraft-app/adcraft-backend/internal/projects/http"
	"github.com/adcraft-app/adcraft-backend/internal/projects/repository"
	projectsvc "github.com/adcraft-app/adcraft-backend/internal/projects/service"
	"github.com/adcraft-app/adcraft-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	DB          *sqlx.DB
	Redis       *redis.Client // nil disables the identity cache
	Verifier    auth.SessionVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestIDMiddleware())
	if cfg.App.MetricsEnabled {
		r.Use(apimw.Metrics())
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Security.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	httpapi.NewHealthHandler(dep.ServiceName, cfg.App.Version, dep.DB).RegisterRoutes(r)
	if cfg.App.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	userRepo := users.NewRepo(dep.DB)
	var (
		lookup users.Lookup = userRepo
		cache  authsvc.CacheInvalidator
	)
	if dep.Redis != nil {
		cached := users.NewCachedLookup(userRepo, dep.Redis, cfg.Redis.CacheTTL)
		lookup, cache = cached, cached
	}
	session := authmw.NewSession(dep.Verifier, users.NewResolver(lookup, cfg.Database.Timeout), cfg.Session.CookieName)

	accounts := authsvc.NewAccountService(userRepo, cache, cfg.Database.Timeout)
	authhttp.New(accounts).Register(r.Group("/api/auth"), session.RequireClaim(), session.RequireUser())

	projectRepo := repository.NewProjectRepository(dep.DB)
	briefRepo := repository.NewBriefRepository(dep.DB)
	briefLimiter := apimw.NewUserRateLimiter(cfg.Security.BriefRatePerMinute, cfg.Security.BriefRateBurst)

	projecthttp.New(
		projectsvc.NewProjectService(projectRepo, briefRepo, cfg.Database.Timeout),
		projectsvc.NewBriefService(briefRepo, projectRepo, cfg.Database.Timeout),
		session,
		cfg.Server.LoginPath,
	).Register(r, session.RequireUser(), briefLimiter.Middleware(auth.UserDBID))

	return r
}
