package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"faceattend/internal/attendance"
	"faceattend/internal/auth"
	"faceattend/internal/config"
	"faceattend/internal/faceclient"
	"faceattend/internal/httpmiddleware"
	"faceattend/internal/metrics"
	"faceattend/internal/store"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)
	sessions := auth.NewSessions(redisClient.Client)

	// The face client is shared process-wide; the model behind it is loaded
	// once by the face service, not per request.
	face := faceclient.New(cfg.FaceServiceURL, cfg.FaceSkip, cfg.FaceTimeout)
	if err := face.Health(context.Background()); err != nil {
		log.Printf("WARNING: face service not available: %v", err)
	} else {
		log.Println("face service connected")
	}

	repo := attendance.NewRepository(db.Client)
	svc := attendance.NewService(repo, face)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(corsMiddleware())
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Client.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	r.POST("/v1/attendance", func(c *gin.Context) {
		roll := c.PostForm("roll")
		name := c.PostForm("name")
		photo, err := readPhoto(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
			return
		}

		res, err := svc.SubmitAttendance(c.Request.Context(), roll, name, photo)
		if err != nil {
			metrics.AttendanceDecisions.WithLabelValues("error").Inc()
			writeError(c, err)
			return
		}

		if res.AlreadyPresent {
			metrics.AttendanceDecisions.WithLabelValues("already_present").Inc()
			c.JSON(http.StatusOK, gin.H{
				"already_present": true,
				"status":          res.Status,
				"timestamp":       res.Timestamp,
				"message":         "already marked present at " + res.Timestamp.Format(time.DateTime),
			})
			return
		}
		metrics.AttendanceDecisions.WithLabelValues(res.Status).Inc()
		c.JSON(http.StatusOK, gin.H{"status": res.Status, "timestamp": res.Timestamp})
	})

	r.POST("/v1/admin/login", func(c *gin.Context) {
		photo, err := readPhoto(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
			return
		}

		if err := svc.AdminLogin(c.Request.Context(), photo); err != nil {
			if errors.Is(err, attendance.ErrNotRecognized) {
				metrics.AdminLogins.WithLabelValues("rejected").Inc()
			} else {
				metrics.AdminLogins.WithLabelValues("error").Inc()
			}
			writeError(c, err)
			return
		}

		token, err := auth.Issue(cfg.JWTIssuer, cfg.JWTSigningKey, cfg.SessionTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
			return
		}
		if err := sessions.Create(c.Request.Context(), token.ID, cfg.SessionTTL); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
			return
		}
		metrics.AdminLogins.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, gin.H{
			"access_token": token.Value,
			"expires_at":   token.ExpiresAt.Unix(),
		})
	})

	// Admin enrollment is open only until the first credential exists
	// (bootstrap); after that it requires a live admin session.
	r.POST("/v1/admin/enroll", func(c *gin.Context) {
		enrolled, err := svc.AdminEnrolled(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if enrolled && !hasAdminSession(c, cfg, sessions) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin session required to re-enroll"})
			return
		}

		photo, err := readPhoto(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
			return
		}
		if err := svc.EnrollAdmin(c.Request.Context(), photo); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "admin face enrolled successfully"})
	})

	adminGroup := r.Group("/v1/admin", auth.AdminAuth(cfg.JWTSigningKey, cfg.JWTIssuer, sessions))

	adminGroup.POST("/users", func(c *gin.Context) {
		roll := c.PostForm("roll")
		name := c.PostForm("name")
		photo, err := readPhoto(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
			return
		}
		if err := svc.EnrollUser(c.Request.Context(), roll, name, photo); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "user added successfully"})
	})

	adminGroup.POST("/users/:roll/attendance", func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ts, err := svc.OverrideAttendance(c.Request.Context(), c.Param("roll"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": req.Status, "timestamp": ts})
	})

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		users, err := svc.Dashboard(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		if users == nil {
			users = []attendance.Identity{}
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	})

	adminGroup.POST("/logout", func(c *gin.Context) {
		claimsAny, _ := c.Get("claims")
		claims, _ := claimsAny.(auth.Claims)
		if err := sessions.Revoke(c.Request.Context(), claims.ID); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
			return
		}
		c.Status(http.StatusNoContent)
	})

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// readPhoto pulls the uploaded photo bytes out of a multipart request.
func readPhoto(c *gin.Context) ([]byte, error) {
	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// hasAdminSession checks the bearer token outside the middleware chain, for
// the enroll route's bootstrap rule.
func hasAdminSession(c *gin.Context, cfg config.App, sessions *auth.Sessions) bool {
	authz := c.GetHeader("Authorization")
	if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return false
	}
	claims, err := auth.Parse(strings.TrimSpace(authz[len("bearer "):]), cfg.JWTSigningKey, cfg.JWTIssuer)
	if err != nil {
		return false
	}
	live, err := sessions.Valid(c.Request.Context(), claims.ID)
	return err == nil && live
}

// writeError maps core outcomes onto HTTP responses. Every failure gets a
// specific cause; unexpected errors are logged and masked.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, attendance.ErrMissingInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, faceclient.ErrNoFaceDetected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no face detected in photo"})
	case errors.Is(err, attendance.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, attendance.ErrAdminNotEnrolled):
		c.JSON(http.StatusConflict, gin.H{"error": "admin face is not enrolled, enroll first"})
	case errors.Is(err, attendance.ErrNotRecognized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "face not recognized"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
