package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"airhr/resume-analyzer/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueBatch(batchID uuid.UUID)
}

type worker struct {
	batchRepo   repositories.BatchRepository
	analyzer    AnalyzerService
	batchQueue  chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	batchRepo repositories.BatchRepository,
	analyzer AnalyzerService,
	concurrency int,
) Worker {
	return &worker{
		batchRepo:   batchRepo,
		analyzer:    analyzer,
		batchQueue:  make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processBatches(ctx, i+1)
	}

	// Re-enqueue batches that were queued before a restart
	w.wg.Add(1)
	go w.pollPendingBatches(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueBatch implements Worker.
func (w *worker) EnqueueBatch(batchID uuid.UUID) {
	select {
	case w.batchQueue <- batchID:
		log.Printf("📥 Batch %s enqueued\n", batchID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue batch %s\n", batchID)
	}
}

func (w *worker) processBatches(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case batchID := <-w.batchQueue:
			log.Printf("👷 Worker #%d processing batch %s\n", workerID, batchID)
			if err := w.analyzer.ProcessBatch(ctx, batchID); err != nil {
				log.Printf("❌ Worker #%d failed to process batch %s: %v\n", workerID, batchID, err)
			} else {
				log.Printf("✅ Worker #%d completed batch %s\n", workerID, batchID)
			}
		}
	}
}

func (w *worker) pollPendingBatches(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.batchRepo.FindPendingBatches(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending batches: %v\n", err)
				continue
			}

			for _, batch := range pending {
				w.EnqueueBatch(batch.ID)
			}
		}
	}
}
