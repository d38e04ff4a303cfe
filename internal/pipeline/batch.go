package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-ai/server/internal/logger"
)

type BatchStatus string

const (
	BatchProcessing BatchStatus = "processing"
	BatchCompleted  BatchStatus = "completed"
)

// Batch tracks one background generation run. Item failures do not abort the
// batch; they are counted and the remaining items still render.
type Batch struct {
	ID            string      `json:"batch_id"`
	UserID        string      `json:"user_id"`
	Status        BatchStatus `json:"status"`
	Total         int         `json:"total"`
	Completed     int         `json:"completed"`
	Failed        int         `json:"failed"`
	GenerationIDs []string    `json:"generation_ids"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Progress returns percent of items processed, failures included
func (b *Batch) Progress() float64 {
	if b.Total == 0 {
		return 0
	}

	return float64(b.Completed+b.Failed) / float64(b.Total) * 100
}

// BatchRunner executes generation batches in the background and tracks their
// status in memory. Batches are progress handles, not durable jobs: the
// generations themselves are persisted per item, and a restart only loses
// the in-flight counters.
type BatchRunner struct {
	orch *Orchestrator

	mu      sync.Mutex
	batches map[string]*Batch
}

func NewBatchRunner(orch *Orchestrator) *BatchRunner {
	return &BatchRunner{
		orch:    orch,
		batches: make(map[string]*Batch),
	}
}

// Start registers the batch and begins processing it in the background. The
// returned snapshot is immediately valid for status polling.
func (r *BatchRunner) Start(userID string, requests []Request) Batch {
	batch := &Batch{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    BatchProcessing,
		Total:     len(requests),
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.batches[batch.ID] = batch
	r.mu.Unlock()

	go r.run(batch.ID, requests)

	return *batch
}

// Get returns a snapshot of the batch, owner-scoped like every other read
func (r *BatchRunner) Get(batchID, userID string) (Batch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch, ok := r.batches[batchID]
	if !ok || batch.UserID != userID {
		return Batch{}, false
	}

	snapshot := *batch
	snapshot.GenerationIDs = append([]string(nil), batch.GenerationIDs...)

	return snapshot, true
}

// processing is detached from the originating request: the client polls the
// status endpoint instead of holding the connection open
func (r *BatchRunner) run(batchID string, requests []Request) {
	ctx := context.Background()

	for i, req := range requests {
		rec, err := r.orch.Generate(ctx, req)

		r.mu.Lock()
		batch := r.batches[batchID]

		if err != nil {
			batch.Failed++
			r.mu.Unlock()

			logger.ErrorErr(err, "batch item failed",
				"batch_id", batchID,
				"item", i,
				"user_id", req.UserID,
			)

			continue
		}

		batch.Completed++
		batch.GenerationIDs = append(batch.GenerationIDs, rec.ID)
		r.mu.Unlock()
	}

	r.mu.Lock()
	batch := r.batches[batchID]
	batch.Status = BatchCompleted
	r.mu.Unlock()

	logger.Info("batch generation finished",
		"batch_id", batchID,
		"completed", batch.Completed,
		"failed", batch.Failed,
	)
}
