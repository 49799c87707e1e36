package main

import (
	"context"
	"time"

	"fitbooker/internal/bookings/events"
	bookinghandler "fitbooker/internal/bookings/handler"
	bookingrepo "fitbooker/internal/bookings/repository"
	bookingservice "fitbooker/internal/bookings/service"
	"fitbooker/internal/bookings/validator"
	classhandler "fitbooker/internal/classes/handler"
	classrepo "fitbooker/internal/classes/repository"
	classservice "fitbooker/internal/classes/service"
	"fitbooker/internal/seed"
	"fitbooker/pkg/app"
	"fitbooker/pkg/config"
)

const ServiceName = "fitbooker"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting FitBooker service")

	catalog := classrepo.NewMemoryCatalog()
	ledger := bookingrepo.NewMemoryLedger()

	classService := classservice.NewClassService(catalog, cfg)
	seedCatalog(cfg, classService)

	publisher := newPublisher(cfg)
	bookingService := bookingservice.NewBookingService(
		catalog,
		ledger,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		classhandler.NewHealthHandler(catalog, cfg.Log),
		classhandler.NewClassHandler(classService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.Run()

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}
}

func seedCatalog(cfg *config.Config, classService classservice.ClassService) {
	loc, err := time.LoadLocation(cfg.SeedTimezone)
	if err != nil {
		cfg.Log.Fatal("Invalid seed timezone", "timezone", cfg.SeedTimezone, "error", err)
	}

	classes := seed.GenerateSchedule(cfg.SeedDaysAhead, loc, time.Now())
	if err := classService.Populate(context.Background(), classes); err != nil {
		cfg.Log.Fatal("Failed to seed class catalog", "error", err)
	}
	cfg.Log.Info("Class catalog seeded", "classes", len(classes), "days_ahead", cfg.SeedDaysAhead)
}

func newPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Event publishing disabled")
		return nil
	}

	publisher, err := events.NewKafkaPublisher(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}
	cfg.Log.Info("Event publishing enabled", "topic", cfg.KafkaTopic)
	return publisher
}
