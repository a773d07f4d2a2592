package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/excel"
	server "github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/http_server"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/observability"
	redisad "github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/redis"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/scraper"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/app"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/shared"
	mysqlrepo "github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db (scraping variant tables)
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	kv := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	repo := mysqlrepo.New(db)
	scraperCl := scraper.New(cfg.ScraperBase, cfg.ScraperKey, cfg.ScraperRPS)

	cmd := app.NewCommandService(kv, kv)
	q := app.NewQueryService(kv, kv, cfg.CacheTTL)
	scr := app.NewScrapeService(scraperCl, repo, excel.NewWriter())

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Cmd: cmd, Q: q, Scr: scr})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
