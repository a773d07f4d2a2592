package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/excel"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/observability"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/adapters/scraper"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/app"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/domain"
	"github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/shared"
	mysqlrepo "github.com/sakan811/Find-the-Best-Place-to-Stay-with-Price-per-Review/internal/storage/mysql"
)

// Batch variant of the scrape: one search per configured city, bounded
// concurrency, all rows appended to a single fresh snapshot.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if len(cfg.Cities) == 0 {
		log.Fatal().Msg("SCRAPE_CITIES is empty; nothing to do")
	}

	checkIn := env("CHECK_IN", time.Now().AddDate(0, 0, 1).Format("2006-01-02"))
	checkOut := env("CHECK_OUT", time.Now().AddDate(0, 0, 2).Format("2006-01-02"))
	currency := env("CURRENCY", domain.DefaultCurrency)

	log.Info().
		Str("base", cfg.ScraperBase).
		Int("workers", cfg.Workers).
		Strs("cities", cfg.Cities).
		Str("check_in", checkIn).
		Str("check_out", checkOut).
		Msg("scrape job starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	client := scraper.New(cfg.ScraperBase, cfg.ScraperKey, cfg.ScraperRPS)
	svc := app.NewScrapeService(client, repo, excel.NewWriter())

	// One snapshot per run: truncate once, append per city.
	if err := svc.Reset(ctx); err != nil {
		log.Fatal().Err(err).Msg("truncate room prices failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, city := range cfg.Cities {
		city := city

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			req := domain.ScrapeRequest{
				City:             city,
				CheckIn:          checkIn,
				CheckOut:         checkOut,
				GroupAdults:      1,
				NumRooms:         1,
				SelectedCurrency: currency,
			}
			rows, err := svc.Collect(ctx, req)
			if err != nil {
				if errors.Is(err, domain.ErrNoResults) {
					log.Warn().Str("city", city).Msg("no results")
					return
				}
				log.Warn().Str("city", city).Err(err).Msg("scrape failed")
				return
			}
			if err := svc.SaveRoomPrices(ctx, rows); err != nil {
				log.Warn().Str("city", city).Err(err).Msg("save failed")
				return
			}
			log.Info().Str("city", city).Int("rows", len(rows)).Msg("scrape ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("scrape job completed")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
