// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wneessen/geocsv/internal/logger"
	"github.com/wneessen/geocsv/internal/pipeline"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrJobNotDone  = errors.New("job has not finished yet")
)

// JobStatus is the lifecycle state of a background conversion.
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// JobInfo is a point-in-time snapshot of a background conversion.
type JobInfo struct {
	ID        string            `json:"id"`
	Status    JobStatus         `json:"status"`
	Rows      int               `json:"rows"`
	Progress  float64           `json:"progress"`
	Latitude  string            `json:"latitude_column"`
	Longitude string            `json:"longitude_column"`
	Summary   *pipeline.Summary `json:"summary,omitempty"`
	Error     string            `json:"error,omitempty"`
	Created   time.Time         `json:"created"`
	Finished  *time.Time        `json:"finished,omitempty"`
}

type job struct {
	mu       sync.RWMutex
	info     JobInfo
	output   *pipeline.Output
	err      error
	finished time.Time
}

// Submit parses the input synchronously and geocodes it in the background. Parsing and column
// detection errors are returned immediately and no job is created.
func (s *Service) Submit(input io.Reader) (string, error) {
	batch, err := s.pipeline.Prepare(input)
	if err != nil {
		return "", err
	}

	j := &job{info: JobInfo{
		ID:        uuid.NewString(),
		Status:    JobPending,
		Rows:      batch.Rows(),
		Latitude:  batch.Columns.LatitudeName,
		Longitude: batch.Columns.LongitudeName,
		Created:   time.Now(),
	}}
	s.jobsLock.Lock()
	s.jobs[j.info.ID] = j
	s.jobsLock.Unlock()

	s.logger.Info("geocoding job submitted", slog.String("job", j.info.ID), slog.Int("rows", j.info.Rows))
	s.running.Go(func() {
		s.runJob(s.jobCtx, j, batch)
	})
	return j.info.ID, nil
}

func (s *Service) runJob(ctx context.Context, j *job, batch *pipeline.Batch) {
	j.mu.Lock()
	j.info.Status = JobRunning
	j.mu.Unlock()

	output, err := batch.Run(ctx, func(progress float64) {
		j.mu.Lock()
		j.info.Progress = progress
		j.mu.Unlock()
	})

	j.mu.Lock()
	defer j.mu.Unlock()
	j.finished = time.Now()
	j.info.Finished = &j.finished
	if err != nil {
		j.err = err
		j.info.Status = JobFailed
		j.info.Error = err.Error()
		s.logger.Error("geocoding job failed", slog.String("job", j.info.ID), logger.Err(err))
		return
	}
	j.output = output
	j.info.Status = JobDone
	j.info.Progress = 1
	j.info.Summary = &output.Summary
	s.logger.Info("geocoding job completed", slog.String("job", j.info.ID),
		slog.Any("summary", output.Summary))
}

// Job returns a snapshot of the job with the given id.
func (s *Service) Job(id string) (JobInfo, error) {
	j, err := s.lookupJob(id)
	if err != nil {
		return JobInfo{}, err
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.info, nil
}

// Result returns the geocoded output of a finished job. ErrJobNotDone is returned while the job
// is still pending or running.
func (s *Service) Result(id string) (*pipeline.Output, error) {
	j, err := s.lookupJob(id)
	if err != nil {
		return nil, err
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	switch j.info.Status {
	case JobDone:
		return j.output, nil
	case JobFailed:
		return nil, j.err
	default:
		return nil, ErrJobNotDone
	}
}

func (s *Service) lookupJob(id string) (*job, error) {
	s.jobsLock.RLock()
	defer s.jobsLock.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return j, nil
}

// purgeJobs removes finished jobs whose results have been kept longer than the configured TTL.
func (s *Service) purgeJobs(context.Context) {
	deadline := time.Now().Add(-s.config.Server.ResultTTL)

	s.jobsLock.Lock()
	defer s.jobsLock.Unlock()
	for id, j := range s.jobs {
		j.mu.RLock()
		expired := !j.finished.IsZero() && j.finished.Before(deadline)
		j.mu.RUnlock()
		if expired {
			delete(s.jobs, id)
			s.logger.Debug("purged expired geocoding job", slog.String("job", id))
		}
	}
}
