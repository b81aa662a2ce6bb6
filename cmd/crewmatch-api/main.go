// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"crewmatch/internal/ai"
	"crewmatch/internal/config"
	httptransport "crewmatch/internal/http"
	"crewmatch/internal/infra"
	"crewmatch/internal/maps"
	"crewmatch/internal/modules/booking"
	"crewmatch/internal/modules/location"
	"crewmatch/internal/modules/matching"
	"crewmatch/internal/modules/pricing"
	"crewmatch/internal/modules/worker"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	geocoder, err := maps.NewGeocodeService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	workerStore := worker.NewStore(dbPool)
	workerSvc := worker.NewService(workerStore)

	pricingStore := pricing.NewStore(dbPool)
	pricingSvc := pricing.NewService(pricingStore, cfg.Pricing)
	if err := pricingSvc.RefreshFeeRate(ctx); err != nil {
		log.Warnf("fee rate refresh: %v", err)
	}

	bookingStore := booking.NewStore(dbPool)
	bookingSvc := booking.NewService(bookingStore, pricingSvc)

	presenceStore := location.NewStore(redisClient)
	presenceSvc := location.NewService(presenceStore)

	engine := matching.NewEngine(matching.EngineDeps{
		Geocoder:    geocoder,
		Workers:     workerStore,
		Assignments: bookingStore,
		Pricing:     pricingSvc,
		Log:         log,
	}, cfg.Matching)

	var planner ai.BriefPlanner
	if cfg.AI.GeminiKey != "" {
		planner, err = ai.NewGeminiPlanner(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
	}

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Engine:   engine,
		Booking:  bookingSvc,
		Workers:  workerSvc,
		Presence: presenceSvc,
		Planner:  planner,
		Log:      log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.WithField("addr", cfg.HTTP.Addr).Info("crewmatch api listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
