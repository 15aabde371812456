package jobs

import (
	"context"
	"time"

	"auction-market/internal/services"

	log "github.com/sirupsen/logrus"
)

// Settler runs one settlement pass. Satisfied by services.SettlementService.
type Settler interface {
	SettleClosedAuctions(ctx context.Context) (*services.PassSummary, error)
}

// SettlementJob wakes on a fixed interval and settles newly closed auctions.
// The loop alternates between idle and one pass at a time; a failed pass is
// logged and the next tick retries from scratch. Nothing a pass does can take
// the loop down.
type SettlementJob struct {
	settler  Settler
	interval time.Duration
	stopChan chan struct{}
}

// NewSettlementJob creates a new settlement job
func NewSettlementJob(settler Settler, interval time.Duration) *SettlementJob {
	return &SettlementJob{
		settler:  settler,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the settlement loop and blocks until Stop is called
func (j *SettlementJob) Start() {
	log.Printf("[Settlement] Starting settlement job (interval: %v)", j.interval)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.runPass()
		case <-j.stopChan:
			log.Println("[Settlement] Stopping settlement job")
			return
		}
	}
}

// Stop stops the settlement loop
func (j *SettlementJob) Stop() {
	close(j.stopChan)
}

// runPass executes one settlement pass. All errors stop here.
func (j *SettlementJob) runPass() {
	ctx := context.Background()

	summary, err := j.settler.SettleClosedAuctions(ctx)
	if err != nil {
		log.Printf("[Settlement] Pass failed, retrying next tick: %v", err)
		return
	}

	if summary.Auctions == 0 {
		return
	}

	log.Printf("[Settlement] Pass complete: %d auctions, %d settled, %d no-bid, %d skipped, %d notify failures",
		summary.Auctions, summary.Settled, summary.NoBids, summary.Skipped, summary.NotifyFailures)
}
