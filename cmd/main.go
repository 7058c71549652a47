package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/config"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/db"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/logging"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/model"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/repository"
	"github.com/SobhanFatemi/online-cafe-reservation-system/internal/service"
)

func main() {
	// 1. Env and config.
	_ = godotenv.Load()

	appCfg, err := config.ParseAppConfig("config.yaml")
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}
	if err := logging.Setup(appCfg); err != nil {
		log.Fatalf("setup logging: %v", err)
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}

	// 2. Database.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Model migrations.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Repositories (GORM implementations).
	slotRepo := repository.NewGormSlotRepository(gormDB)
	tableRepo := repository.NewGormTableRepository(gormDB)
	hoursRepo := repository.NewGormWorkingHourRepository(gormDB)
	settingRepo := repository.NewGormSettingRepository(gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settings, err := settingRepo.Load(ctx)
	if err != nil {
		log.Fatalf("load cafe settings: %v", err)
	}

	// 5. The maintenance daemon only drives slot generation; booking,
	// ordering and availability are called in-process by the embedding
	// application.
	slotSvc := service.NewSlotService(gormDB, slotRepo, tableRepo, hoursRepo, service.NewSettings(settings), nil)

	// 6. Seed the slot horizon on start, then keep it topped up.
	if created, skipped, err := slotSvc.Generate(ctx, 0); err != nil {
		log.WithError(err).Error("initial slot generation failed")
	} else {
		log.WithFields(log.Fields{"created": created, "skipped": skipped}).Info("initial slot generation done")
	}

	interval := time.Duration(appCfg.Scheduler.GenerateIntervalMin) * time.Minute
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if created, skipped, err := slotSvc.Generate(ctx, 0); err != nil {
					log.WithError(err).Error("scheduled slot generation failed")
				} else if created > 0 {
					log.WithFields(log.Fields{"created": created, "skipped": skipped}).Info("scheduled slot generation done")
				}
			}
		}
	}()

	log.Info("cafe reservation core started")

	// 7. Graceful shutdown on signal.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down...")
	cancel()
}
