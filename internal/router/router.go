package router

import (
	"log/slog"
	"net/http"

	"account-book/internal/auth"
	"account-book/internal/config"
	"account-book/internal/handler"
	"account-book/internal/logging"
	"account-book/internal/middleware"
	"account-book/internal/ownership"
	"account-book/internal/repository"
	"account-book/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the store, services and handlers into a gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(logging.RequestLogger(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	store := repository.New(db)
	resolver := ownership.NewResolver(store, logger)
	paging := service.Paging{DefaultLimit: cfg.App.DefaultLimit, MaxLimit: cfg.App.MaxLimit}

	users := service.NewUserService(store, auth.NewIssuer(cfg.JWT), cfg.Security.BcryptCost, logger)
	books := service.NewBookService(store, resolver, paging, logger)
	categories := service.NewCategoryService(store, resolver, paging, logger)
	logs := service.NewLogService(store, resolver, paging, logger)
	audit := service.NewAuditService(store, cfg.Security.EncryptionKey, paging, logger)

	// ====== API ======
	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(users)
	api.POST("/users/signup", authHandler.SignUp)
	api.POST("/users/login", authHandler.Login)

	// everything below needs a verified identity
	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(auth.NewVerifier(cfg.JWT.Secret, store)),
		middleware.AuditMiddleware(audit),
	)

	profileHandler := handler.NewProfileHandler(users)
	protected.GET("/users/me", profileHandler.Me)
	protected.PATCH("/users/me", profileHandler.Update)

	auditHandler := handler.NewAuditHandler(audit)
	protected.GET("/users/me/audit-logs", auditHandler.List)

	accountBooks := protected.Group("/account-books")

	categoryHandler := handler.NewCategoryHandler(categories)
	accountBooks.GET("/categories", categoryHandler.List)
	accountBooks.POST("/categories", categoryHandler.Create)
	accountBooks.PATCH("/categories/:id", categoryHandler.Update)
	accountBooks.DELETE("/categories/:id", categoryHandler.Delete)
	accountBooks.PATCH("/categories/:id/restore", categoryHandler.Restore)

	logHandler := handler.NewLogHandler(logs)
	accountBooks.GET("/logs", logHandler.List)
	accountBooks.POST("/logs", logHandler.Create)
	accountBooks.PATCH("/logs/:id", logHandler.Update)
	accountBooks.DELETE("/logs/:id", logHandler.Delete)
	accountBooks.PATCH("/logs/:id/restore", logHandler.Restore)

	bookHandler := handler.NewBookHandler(books)
	accountBooks.GET("", bookHandler.List)
	accountBooks.POST("", bookHandler.Create)
	accountBooks.PATCH("/:id", bookHandler.Update)
	accountBooks.DELETE("/:id", bookHandler.Delete)
	accountBooks.PATCH("/:id/restore", bookHandler.Restore)
	accountBooks.GET("/:id/export", bookHandler.Export)

	return r
}
