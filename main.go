// Package main, velora backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//   1. Config'i yükle
//   2. Database'i başlat (embedded migration'lar ile)
//   3. Repository'leri oluştur
//   4. WebSocket Hub'ı başlat
//   5. Service'leri oluştur (repository'ler + hub ile)
//   6. Handler'ları ve middleware'i oluştur
//   7. Route'ları bağla, CORS yapılandır
//   8. HTTP Server'ı başlat, graceful shutdown bekle
//
// Global değişken YOK — her şey burada oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/seline/velora/config"
	"github.com/seline/velora/database"
	"github.com/seline/velora/middleware"
	"github.com/seline/velora/static"
	"github.com/seline/velora/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] velora server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	// Migration'lar binary'ye gömülüdür — deployment'ta ayrıca SQL
	// dosyası taşımak gerekmez.
	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to access embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrations)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	repos := initRepositories(db.Conn)

	// ─── 4. WebSocket Hub ───
	// Hub, admin dashboard bağlantılarını yöneten merkezi yapıdır.
	// `go hub.Run()` ayrı bir goroutine'de event loop başlatır.
	// Service'ler hub'a EventPublisher interface'i üzerinden erişir.
	hub := ws.NewHub()
	go hub.Run()

	// ─── 5. Service Layer ───
	svcs, err := initServices(cfg, repos, hub)
	if err != nil {
		log.Fatalf("[main] failed to initialize services: %v", err)
	}

	// ─── 6. Handler + Middleware ───
	h := initHandlers(svcs, hub)
	authMW := middleware.NewAuthMiddleware(svcs.Auth, repos.Admin)

	// ─── 7. Router ───
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"velora"}`)
	})

	initRoutes(mux, h, authMW, cfg.Upload.Dir)

	// Frontend — binary'ye gömülü React build'i (varsa) servis edilir.
	// dist/ boşsa (development) Vite dev server frontend'i üstlenir.
	registerFrontend(mux)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// ─── 8. HTTP Server + Graceful Shutdown ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler.Handler(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantılarını kapat, sonra HTTP server'ı —
	// yeni request kabulü durur, mevcut request'ler 5sn içinde biter.
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}

// registerFrontend, gömülü frontend build'ini SPA fallback ile servis eder.
//
// /api/* dışındaki her path önce dist/ içinde dosya olarak aranır;
// bulunamazsa index.html döner — React Router client-side routing bu
// sayede derin linklerde de çalışır.
func registerFrontend(mux *http.ServeMux) {
	dist, err := fs.Sub(static.FrontendFS, "dist")
	if err != nil {
		log.Printf("[main] frontend not embedded: %v", err)
		return
	}

	// index.html yoksa build gömülmemiş demektir — route register etme,
	// kök path 404 dönsün (development modu).
	if _, err := fs.Stat(dist, "index.html"); err != nil {
		log.Println("[main] no frontend build embedded, serving API only")
		return
	}

	fileServer := http.FileServer(http.FS(dist))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" {
			if _, err := fs.Stat(dist, path); err == nil {
				fileServer.ServeHTTP(w, r)
				return
			}
		}
		http.ServeFileFS(w, r, dist, "index.html")
	})
}
