package main

import (
	"fmt"
	"os"

	"waste-service/internal/auth"
	"waste-service/internal/client"
	"waste-service/internal/config"
	"waste-service/internal/db"
	httphandler "waste-service/internal/http"
	"waste-service/internal/http/middleware"
	"waste-service/internal/logger"
	"waste-service/internal/repository"
	"waste-service/internal/routing"
	"waste-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	binRepo := repository.NewBinRepository(database)
	truckRepo := repository.NewTruckRepository(database)
	routeRepo := repository.NewRouteRepository(database)

	distances := routing.NewKilinochchiDistanceSource(cfg.Routing.DepotLocation)
	optimizer := routing.NewOptimizer(distances, routing.NewNearestNeighborStrategy(distances))

	sensorClient := client.NewSensorClient(cfg)

	binService := service.NewBinService(binRepo, sensorClient)
	truckService := service.NewTruckService(truckRepo)
	routeService := service.NewRouteService(binRepo, truckRepo, routeRepo, optimizer, distances, cfg.Routing.DepotLocation)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(binService, truckService, routeService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Str("depot", cfg.Routing.DepotLocation).Msg("starting waste collection service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
