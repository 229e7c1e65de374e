// Package jobs defines the background jobs cozyloom dispatches through
// pkg/queue. Jobs are side-channel work only; they never mutate catalog
// or order state.
package jobs

import (
	"github.com/shashiranjanraj/cozyloom/pkg/logger"
	"github.com/shashiranjanraj/cozyloom/pkg/queue"
)

// LowStockAlertJob notifies operations that a blanket model dropped to or
// below the configured threshold after a decrement.
type LowStockAlertJob struct {
	BlanketID    uint   `json:"blanket_id"`
	ModelName    string `json:"model_name"`
	CurrentStock int    `json:"current_stock"`
	Threshold    int    `json:"threshold"`
}

func (j *LowStockAlertJob) Handle() error {
	// The alert channel is the structured log stream for now; the ops
	// dashboard tails it. Swap in a mail/webhook sender here when one
	// exists.
	logger.Warn("low stock alert",
		"blanket_id", j.BlanketID,
		"model_name", j.ModelName,
		"current_stock", j.CurrentStock,
		"threshold", j.Threshold,
	)
	return nil
}

// Register makes every job type known to the queue so workers can
// deserialize payloads. Call once at boot, before StartWorkers.
func Register() {
	queue.Register("*jobs.LowStockAlertJob", func() queue.Job { return &LowStockAlertJob{} })
}
