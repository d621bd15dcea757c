// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
)

// ScanCounterWorker increments access-object scan counters off the
// PIN-verification request path. Increments are fire-and-forget: the
// verification response never waits on them, a full queue drops the
// increment, and a failed UPDATE is logged and forgotten.
type ScanCounterWorker struct {
	logger     *logger.Logger
	repository store.AccessObjectRepository
	queue      chan string
	ctx        context.Context
}

// NewScanCounterWorker constructs a worker draining a buffered queue of
// access-object ids. The worker stops when ctx is cancelled.
func NewScanCounterWorker(ctx context.Context, repository store.AccessObjectRepository, queueSize int, logger *logger.Logger) *ScanCounterWorker {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &ScanCounterWorker{
		logger:     logger,
		repository: repository,
		queue:      make(chan string, queueSize),
		ctx:        ctx,
	}
}

// Run starts the draining goroutine. Implements [Worker].
func (w *ScanCounterWorker) Run() {
	go func() {
		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Str("func", "*ScanCounterWorker.Run").Msg("scan counter worker stopped")
				return
			case id := <-w.queue:
				if err := w.repository.IncrementScanCount(w.ctx, id); err != nil {
					w.logger.Err(err).Str("func", "*ScanCounterWorker.Run").Str("access_object_id", id).Msg("error incrementing scan counter")
				}
			}
		}
	}()
}

// Enqueue submits an increment without blocking. When the queue is full
// the increment is dropped; lost increments under load are an accepted
// race, exactly-once counting is not a requirement.
func (w *ScanCounterWorker) Enqueue(id string) {
	select {
	case w.queue <- id:
	default:
		w.logger.Debug().Str("func", "*ScanCounterWorker.Enqueue").Str("access_object_id", id).Msg("scan counter queue full, increment dropped")
	}
}
