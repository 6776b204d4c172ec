package main

import (
	"log"

	"github.com/optourism/firenzecard-backend-go/internal/api"
	"github.com/optourism/firenzecard-backend-go/internal/config"
	"github.com/optourism/firenzecard-backend-go/internal/database"
	"github.com/optourism/firenzecard-backend-go/internal/export"
	"github.com/optourism/firenzecard-backend-go/internal/handler"
	"github.com/optourism/firenzecard-backend-go/internal/repository"
	"github.com/optourism/firenzecard-backend-go/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	visitRepo := repository.NewVisitRepository(db)
	museumRepo := repository.NewMuseumRepository(db)
	nationalRepo := repository.NewNationalRepository(db)

	exporter := export.New(cfg.ExportPath)
	analysisService := service.NewAnalysisService(visitRepo, museumRepo, nationalRepo, exporter)
	vizService := service.NewVisualizationService(analysisService)

	router := api.SetupRouter(api.Handlers{
		Analysis:      handler.NewAnalysisHandler(analysisService, cfg),
		Museums:       handler.NewMuseumHandler(museumRepo, analysisService),
		Visualization: handler.NewVisualizationHandler(vizService),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
