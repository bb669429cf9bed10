// cmd/web/main.go
//
// Showcase – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load config (YAML + env overlay + Vault secret resolution).
//
//  4. Open the database pool and ensure the three tables exist.
//
//  5. Open the optional GeoLite2 database for signup analytics.
//
//  6. Wire services, the admin gate, and the router; serve with hardened
//     timeouts.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/yanizio/showcase/internal/config"
	"github.com/yanizio/showcase/internal/content"
	"github.com/yanizio/showcase/internal/database"
	"github.com/yanizio/showcase/internal/gate"
	"github.com/yanizio/showcase/internal/logger"
	"github.com/yanizio/showcase/internal/requestinfo"
	"github.com/yanizio/showcase/internal/server"
	"github.com/yanizio/showcase/internal/signup"
	"github.com/yanizio/showcase/internal/web"
)

const serverEnvPath = "/usr/local/etc/showcase/global.env"

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config (YAML + env + Vault) ─────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Database connect + schema ───────────────────────────────────
	//
	dsn, err := database.BuildDSN(cfg.Database.DSN, cfg.Database.Password)
	if err != nil {
		logOut.Fatalf("build dsn: %v", err)
	}

	ctx := context.Background()
	logOut.Infow("connecting to database …")
	db, err := database.Open(ctx, dsn)
	if err != nil {
		logOut.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logOut.Fatalf("ensure schema: %v", err)
	}
	logOut.Infow("database online")

	// Log capture count as an early sanity check.
	var captured int
	_ = db.Get(&captured, `SELECT COUNT(*) FROM email_record`)
	logOut.Infow("signup records found", "count", captured)

	//
	// ── 3.  Optional GeoLite2 lookup for signup analytics ───────────────
	//
	if cfg.GeoIP.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.GeoIP.DBPath); err != nil {
			logOut.Warnw("geoip disabled", "path", cfg.GeoIP.DBPath, "err", err)
		} else {
			logOut.Infow("geoip online", "path", cfg.GeoIP.DBPath)
		}
	}

	//
	// ── 4.  Services, gate, router ──────────────────────────────────────
	//
	handlers := &web.Handlers{
		Signups: signup.NewService(db),
		Content: content.NewService(db),
	}
	adminGate := gate.New(cfg.Admin.Username, cfg.Admin.Password)

	root := web.NewRouter(handlers, adminGate, cfg.CORS.Origins)

	//
	// ── 5.  Serve ───────────────────────────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, root)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
}
