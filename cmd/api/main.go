package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jobtracker/internal/config"
	"jobtracker/internal/database"
	"jobtracker/internal/handlers"
	"jobtracker/internal/logger"
	"jobtracker/internal/middleware"
	"jobtracker/internal/services"
)

func main() {
	// .env is optional; deployments configure through the environment.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("database connection failed", logger.Error(err))
	}

	userService := services.NewUserService(db)
	appService := services.NewApplicationService(db)

	authHandler := handlers.NewAuthHandler(userService, log)
	appHandler := handlers.NewApplicationHandler(appService, log)

	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.Production(),
	})
	r.Use(sessions.Sessions("sid", store))

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/db-health", handlers.DBHealth(db))

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authHandler.Me)
		}

		apps := api.Group("/applications", middleware.RequireAuth())
		{
			apps.GET("", appHandler.List)
			apps.POST("", appHandler.Create)
			apps.PUT("/:id", appHandler.Update)
			apps.DELETE("/:id", appHandler.Delete)
		}
	}

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", logger.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", logger.Error(err))
	}
	log.Info("server stopped")
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowCredentials = true
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	if len(cfg.CORSOrigins) > 0 {
		c.AllowOrigins = cfg.CORSOrigins
		return c
	}
	// Credentials forbid the wildcard origin, so dev reflects any caller.
	c.AllowOriginFunc = func(string) bool { return true }
	return c
}
