// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/wneessen/geocsv/internal/config"
	"github.com/wneessen/geocsv/internal/geocode"
	"github.com/wneessen/geocsv/internal/http"
	"github.com/wneessen/geocsv/internal/logger"
	"github.com/wneessen/geocsv/internal/pipeline"
)

const purgeJobName = "job_purge_job"

// Service owns the configured geocoding pipeline and the background conversion jobs.
type Service struct {
	config   *config.Config
	logger   *logger.Logger
	http     *http.Client
	geocoder geocode.Geocoder
	pipeline *pipeline.Pipeline

	// jobCtx is the parent context of all background conversions, it is canceled on shutdown
	jobCtx     context.Context
	cancelJobs context.CancelFunc
	running    sync.WaitGroup

	jobsLock sync.RWMutex
	jobs     map[string]*job
}

func New(conf *config.Config, log *logger.Logger) (*Service, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}

	client := http.New(log)
	geocoder, err := selectGeocodeProvider(conf, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode provider: %w", err)
	}
	resolver := geocode.NewResolver(geocoder, conf.LinkFormat(), log)
	opts := pipeline.Options{
		Delimiter:   conf.Delimiter(),
		Concurrency: conf.Pipeline.Concurrency,
	}

	jobCtx, cancel := context.WithCancel(context.Background())
	service := &Service{
		config:     conf,
		logger:     log,
		http:       client,
		geocoder:   geocoder,
		pipeline:   pipeline.New(resolver, opts, log),
		jobCtx:     jobCtx,
		cancelJobs: cancel,
		jobs:       make(map[string]*job),
	}
	log.Debug("geocoding service initialized", slog.String("provider", geocoder.Name()),
		slog.String("language", conf.Language().String()), slog.Int("concurrency", opts.Concurrency))
	return service, nil
}

// Provider returns the name of the configured geocoding provider.
func (s *Service) Provider() string {
	return s.geocoder.Name()
}

// Convert geocodes the CSV table read from input and writes the augmented table to output. No
// output is written unless every row has been processed.
func (s *Service) Convert(ctx context.Context, input io.Reader, output io.Writer,
	progress pipeline.ProgressFunc,
) (*pipeline.Output, error) {
	batch, err := s.pipeline.Prepare(input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("geocoding CSV table", slog.Int("rows", batch.Rows()),
		slog.String("provider", s.geocoder.Name()))

	result, err := batch.Run(ctx, progress)
	if err != nil {
		return nil, err
	}
	if _, err = output.Write(result.Data); err != nil {
		return nil, fmt.Errorf("failed to write geocoded CSV: %w", err)
	}
	s.logger.Info("geocoding completed", slog.Any("summary", result.Summary))
	return result, nil
}

// Run starts the job janitor and blocks until the context is canceled. On return all running
// conversions have been canceled and finished.
func (s *Service) Run(ctx context.Context) error {
	defer func() {
		s.cancelJobs()
		s.running.Wait()
	}()

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err = s.createScheduledJob(ctx, scheduler, s.config.Server.CleanupInterval, s.purgeJobs,
		purgeJobName); err != nil {
		return err
	}
	scheduler.Start()

	<-ctx.Done()
	return scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, scheduler gocron.Scheduler, interval time.Duration,
	task func(context.Context), jobName string,
) error {
	_, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}
