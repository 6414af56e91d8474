package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/Meetme/internal/adapters/http"
	"github.com/dkeye/Meetme/internal/adapters/gateway"
	"github.com/dkeye/Meetme/internal/app/feed"
	"github.com/dkeye/Meetme/internal/app/meetme"
	"github.com/dkeye/Meetme/internal/config"
	"github.com/dkeye/Meetme/internal/domain"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	flags := pflag.NewFlagSet("meetme", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to yaml config (default: config/config.$CONFIG_ENV.yaml)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("bad flags")
	}

	if err := run(ctx, *configPath); err != nil {
		log.Fatal().Err(err).Msg("meetme control exited")
	}
	log.Info().Msg("Server exited gracefully")
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	bus := feed.NewBus()
	gw, err := gateway.Connect(ctx, gateway.Config{
		URL:            cfg.Gateway.URL,
		Username:       cfg.Gateway.Username,
		Secret:         cfg.Gateway.Secret,
		CommandTimeout: cfg.Gateway.CommandTimeout,
		PingPeriod:     cfg.Gateway.PingPeriod,
	}, bus)
	if err != nil {
		return fmt.Errorf("connect to switch: %w", err)
	}
	defer gw.Close()

	minVersion, err := domain.ParseVersion(cfg.Meetme.MinVersion)
	if err != nil {
		return err
	}
	control, err := meetme.Initialize(ctx, gw, bus, meetme.Settings{
		BaseAddress:    cfg.Meetme.BaseAddress,
		RoomCount:      cfg.Meetme.RoomCount,
		ProbeTimeout:   cfg.Meetme.ProbeTimeout,
		CommandTimeout: cfg.Gateway.CommandTimeout,
		MinVersion:     minVersion,
		Policy:         meetme.SimplePolicy{StaleAfter: cfg.Meetme.StaleAfter},
	})
	if err != nil {
		return fmt.Errorf("initialize meetme control: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router.SetupRouter(cfg, control),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gw.Wait(); err != nil {
			return fmt.Errorf("switch connection: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("Meetme control server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		control.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
		}
		gw.Close()
		return nil
	})
	return g.Wait()
}
