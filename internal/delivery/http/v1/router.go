package v1

import (
	"net/http"
	"time"

	"go-talentpool-backend/config"
	"go-talentpool-backend/internal/delivery/http/middleware"
	"go-talentpool-backend/internal/delivery/http/response"
	"go-talentpool-backend/internal/domain"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC    domain.AuthUsecase
	ProfileUC domain.ProfileUsecase
	Redis     *goredis.Client // optional, nil means in-memory rate limiting
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORS(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Send(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authLimiter := middleware.NewRateLimiter(deps.Redis, middleware.AuthRateLimitConfig(
		deps.Config.RateLimitAuthThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))

	NewAuthHandler(r, deps.AuthUC, authLimiter.Handler())
	NewProfileHandler(r, deps.ProfileUC)

	return r
}
