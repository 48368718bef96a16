package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ATLAS-backend/internal/attendance"
	"ATLAS-backend/internal/locations"
	"ATLAS-backend/internal/organizations"
	"ATLAS-backend/internal/platform/auth"
	"ATLAS-backend/internal/platform/db"
	"ATLAS-backend/internal/shifts"
	"ATLAS-backend/internal/tickets"
)

func main() {
	// 設定読み込み
	cfg, err := db.LoadConfig("config/config.yaml")
	if err != nil {
		panic(err)
	}

	// 動作モード取得
	mode := cfg.Mode
	log.Printf("[INFO] mode:%s\n", mode)

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: go run main.go [dev|release]")
		return
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("[ERROR] jwt_secret is not configured (config/config.yaml or ATLAS_JWT_SECRET)")
	}
	secret := []byte(cfg.Auth.JWTSecret)

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	// API仕様（チェックイン済みの openapi.yaml を表示）
	r.StaticFile("/openapi.yaml", "docs/openapi.yaml")
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.yaml")))

	// サービス組み立て
	authSvc := auth.NewService(conn, secret, cfg.Auth.TokenTTL)
	orgSvc := organizations.NewService(conn)
	shiftSvc := shifts.NewService(conn)
	locSvc := locations.NewService(conn)
	attSvc := attendance.NewService(conn, shiftSvc, locSvc)
	ticketSvc := tickets.NewService(conn)

	// /api/v2
	api := r.Group("/api/v2")
	auth.RegisterRoutes(api, authSvc)

	protected := api.Group("", auth.RequireAuth(secret))
	attendance.RegisterRoutes(protected, attSvc)
	shifts.RegisterRoutes(protected, shiftSvc)
	tickets.RegisterRoutes(protected, ticketSvc)
	locations.RegisterRoutes(protected, locSvc)

	// 組織管理は owner/admin のみ
	admin := protected.Group("", auth.RequireRole(auth.RoleOwner, auth.RoleAdmin))
	organizations.RegisterRoutes(admin, orgSvc)

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: r,
	}

	var certFile, keyFile string

	// TLS設定
	if mode == "dev" {
		//開発用
		certFile = fmt.Sprintf("config/tls/dev/%s", cfg.Certificate.Cert)
		keyFile = fmt.Sprintf("config/tls/dev/%s", cfg.Certificate.Key)
	} else {
		//本番用
		certFile = fmt.Sprintf("config/tls/release/%s", cfg.Certificate.Cert)
		keyFile = fmt.Sprintf("config/tls/release/%s", cfg.Certificate.Key)
	}

	go func() {
		log.Printf("[INFO] listening on https://0.0.0.0%s", cfg.Listen)
		if err := srv.ListenAndServeTLS(certFile, keyFile); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
