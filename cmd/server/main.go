package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/config"
	"github.com/gomzkevin/airprop-saas/internal/infra"
	"github.com/gomzkevin/airprop-saas/internal/mutacion"
	"github.com/gomzkevin/airprop-saas/internal/repository"
	"github.com/gomzkevin/airprop-saas/internal/router"
	"github.com/gomzkevin/airprop-saas/internal/service"
	"github.com/gomzkevin/airprop-saas/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// notificadorGate adapts the Redis pub/sub notifier to the gate's callback:
// drained mutation outcomes become toasts keyed by resource id.
type notificadorGate struct {
	pub infra.Notificador
}

func (n *notificadorGate) Notificar(recursoID, operacion string, err error) {
	notif := infra.Notificacion{
		RecursoID: recursoID,
		Operacion: operacion,
		Exito:     err == nil,
	}
	if err != nil {
		notif.Detalle = err.Error()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	n.pub.Publicar(ctx, notif)
}

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// NewDatabase already runs migrations and schema patches.
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Composition root: the worker pool, the cron, and the HTTP surface share
	// one dispatcher and one gate registry.
	dispatcher := worker.NewDispatcher(rdb)
	mailer := infra.NewMailer(cfg)

	// Every completed mutation nudges reconciliation for its collection.
	gates := mutacion.NewRegistry(ctx, func(clave string) {
		refreshCtx, refreshCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer refreshCancel()
		if err := dispatcher.EncolarConciliacion(refreshCtx); err != nil {
			log.Warn().Err(err).Str("prototipo_id", clave).Msg("refresh no encolado")
		}
	}, &notificadorGate{pub: infra.NewNotificador(rdb)})

	unidadRepo := repository.NewUnidadRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)

	ledgerSvc := service.NewLedgerService(pagoRepo)
	conciliacionSvc := service.NewConciliacionService(ventaRepo, unidadRepo, ledgerSvc)

	workerHandlers := worker.Handlers{
		Conciliacion: worker.NewConciliacionWorker(conciliacionSvc, dispatcher),
		EstadoCuenta: worker.NewEstadoCuentaWorker(ventaRepo, ledgerSvc, dispatcher, cfg.PDFStoragePath),
		Email:        worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, workerHandlers)
	worker.StartConciliacionCron(ctx, rdb, dispatcher,
		time.Duration(cfg.ConciliacionIntervalSeconds)*time.Second)

	r := router.New(cfg, db, rdb, dispatcher, gates)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("airprop backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
