package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	eventapi "github.com/aliskhannn/notify-pipeline/internal/api/handlers/event"
	jobapi "github.com/aliskhannn/notify-pipeline/internal/api/handlers/job"
	notifapi "github.com/aliskhannn/notify-pipeline/internal/api/handlers/notification"
	"github.com/aliskhannn/notify-pipeline/internal/api/router"
	"github.com/aliskhannn/notify-pipeline/internal/api/server"
	"github.com/aliskhannn/notify-pipeline/internal/batch"
	"github.com/aliskhannn/notify-pipeline/internal/cache"
	"github.com/aliskhannn/notify-pipeline/internal/config"
	"github.com/aliskhannn/notify-pipeline/internal/consumer"
	"github.com/aliskhannn/notify-pipeline/internal/model"
	jobrepo "github.com/aliskhannn/notify-pipeline/internal/repository/batchjob"
	eventrepo "github.com/aliskhannn/notify-pipeline/internal/repository/event"
	notifrepo "github.com/aliskhannn/notify-pipeline/internal/repository/notification"
	eventsvc "github.com/aliskhannn/notify-pipeline/internal/service/event"
	notifsvc "github.com/aliskhannn/notify-pipeline/internal/service/notification"
	"github.com/aliskhannn/notify-pipeline/internal/stream"
	"github.com/aliskhannn/notify-pipeline/pkg/email"
	"github.com/aliskhannn/notify-pipeline/pkg/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	streamClient, err := stream.New(ch, cfg.RabbitMQ.Source, cfg.Retry)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to declare stream topology")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	notificationRepo := notifrepo.NewRepository(db)
	eventRepo := eventrepo.NewRepository(db)
	batchJobRepo := jobrepo.NewRepository(db)

	dbNum, err := strconv.Atoi(cfg.Redis.Database)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse redis database")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, dbNum)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	cacheStore := cache.New(rdb)

	eventService := eventsvc.NewService(eventRepo, streamClient)
	notificationService := notifsvc.NewService(notificationRepo, eventService, streamClient, cacheStore)

	smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to parse email smtp port")
	}

	emailClient := email.NewClient(
		cfg.Email.SMTPHost,
		smtpPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
	)
	telegramClient := telegram.NewClient(cfg.Telegram.Token)

	transports := map[string]consumer.Transport{
		"email":    emailClient,
		"telegram": telegramClient,
	}

	consumerHandler := consumer.NewHandler(notificationService, streamClient, transports, consumer.Config{
		MaxAttempts:    cfg.Consumer.MaxAttempts,
		BackoffBase:    cfg.Consumer.BackoffBase,
		ConfirmDelay:   cfg.Consumer.ConfirmDelay,
		DefaultChannel: cfg.Consumer.DefaultChannel,
	})

	sweep := consumer.NewSweep(consumerHandler, notificationService, cfg.Sweep.BatchSize, cfg.Sweep.Concurrency)

	engine := batch.NewEngine(batchJobRepo, streamClient, eventService, batch.Config{
		Workers:       cfg.Batch.Workers,
		RatePerSecond: cfg.Batch.RatePerSecond,
		MaxAttempts:   cfg.Batch.MaxAttempts,
		BackoffBase:   cfg.Batch.BackoffBase,
	})
	batch.RegisterDefaults(engine, batch.Deps{
		Notifications: notificationRepo,
		Events:        eventRepo,
		Jobs:          batchJobRepo,
	})

	go func() {
		if err := streamClient.Subscribe(ctx, stream.TopicNotifications, consumerHandler.HandleMessage, cfg.Consumer.Group, cfg.Consumer.Workers); err != nil {
			zlog.Logger.Error().Err(err).Msg("notification subscription stopped")
		}
	}()

	go func() {
		if err := streamClient.Subscribe(ctx, stream.TopicBatchJobs, engine.HandleMessage, "batch-processor", engine.Workers()); err != nil {
			zlog.Logger.Error().Err(err).Msg("batch job subscription stopped")
		}
	}()

	scheduler, err := batch.NewScheduler()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create scheduler")
	}

	err = scheduler.AddInterval("pending-sweep", cfg.Sweep.Interval, func() {
		if err := sweep.Run(ctx); err != nil {
			zlog.Logger.Error().Err(err).Msg("sweep pass failed")
		}
	})
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to schedule sweep")
	}

	err = scheduler.AddDailyAt("data-cleanup", cfg.Batch.CleanupAt, func() {
		if _, err := engine.Enqueue(ctx, model.JobDataCleanup, map[string]any{
			"retention_days": cfg.Batch.RetentionDays,
		}); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to enqueue scheduled cleanup")
		}
	})
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to schedule cleanup")
	}

	scheduler.Start()

	notifHandler := notifapi.NewHandler(notificationService, val)
	jobHandler := jobapi.NewHandler(engine, val)
	eventHandler := eventapi.NewHandler(eventService)

	r := router.New(notifHandler, jobHandler, eventHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := scheduler.Stop(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to stop scheduler")
	}

	// Let scheduled retries and confirmations observe the cancelled context.
	consumerHandler.Wait()
	engine.Wait()

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close master DB")
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msgf("failed to close slave DB %d", i)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
