package app

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"

	"campuspulse/internal/cache"
	"campuspulse/internal/config"
	"campuspulse/internal/repository"
	"campuspulse/internal/service"
	"campuspulse/internal/transport/rest"
	"campuspulse/internal/transport/ws"
)

// App wires the repositories, caches, and services together.
type App struct {
	Config *config.Config

	ResponseRepo repository.ResponseRepo
	SnapshotRepo repository.SnapshotRepo

	AuthService        *service.AuthService
	AggregationService *service.AggregationService
	ResponseService    *service.ResponseService
	WSHub              *ws.Hub

	container *rest.Container
	scheduler *cron.Cron
}

// New builds the application graph on top of the given stores.
func New(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *App {
	responseRepo := repository.NewResponseRepo(db)
	snapshotRepo := repository.NewSnapshotRepo(db)

	snapshotCache := cache.NewSnapshotCache(rdb, cfg.SnapshotTTL)
	listingCache := cache.NewExpiring(cfg.RawDataTTL)

	wsHub := ws.NewHub()

	authSvc := service.NewAuthService(cfg)
	aggregationSvc := service.NewAggregationService(responseRepo, snapshotRepo, snapshotCache)
	findingsSvc := service.NewFindingsService()
	recsSvc := service.NewRecommendationsService()
	decisionSvc := service.NewDecisionService(findingsSvc, recsSvc)
	comparisonSvc := service.NewComparisonService(responseRepo)
	responseSvc := service.NewResponseService(responseRepo, listingCache)

	return &App{
		Config:             cfg,
		ResponseRepo:       responseRepo,
		SnapshotRepo:       snapshotRepo,
		AuthService:        authSvc,
		AggregationService: aggregationSvc,
		ResponseService:    responseSvc,
		WSHub:              wsHub,
		container: &rest.Container{
			AuthService:            authSvc,
			AggregationService:     aggregationSvc,
			FindingsService:        findingsSvc,
			RecommendationsService: recsSvc,
			DecisionService:        decisionSvc,
			ComparisonService:      comparisonSvc,
			ResponseService:        responseSvc,
			WSHub:                  wsHub,
		},
	}
}

// Container returns the router dependency container.
func (a *App) Container() *rest.Container {
	return a.container
}

// StartScheduler launches the background snapshot refresh job.
func (a *App) StartScheduler() error {
	a.scheduler = cron.New()
	_, err := a.scheduler.AddFunc(a.Config.RefreshSchedule, func() {
		ctx := context.Background()
		snapshot, err := a.AggregationService.Refresh(ctx)
		if err != nil {
			log.Printf("[scheduler] snapshot refresh failed: %v", err)
			return
		}
		a.WSHub.Broadcast(ws.MsgSnapshotRefreshed, map[string]interface{}{
			"total_responses": snapshot.TotalResponses,
			"computed_at":     snapshot.ComputedAt,
		})
		log.Printf("[scheduler] snapshot refreshed, %d responses", snapshot.TotalResponses)
	})
	if err != nil {
		return err
	}
	a.scheduler.Start()
	log.Printf("[scheduler] refresh job scheduled: %s", a.Config.RefreshSchedule)
	return nil
}

// StopScheduler stops the refresh job and waits for a running one.
func (a *App) StopScheduler() {
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}
}
