package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"studyspot-backend/internal/repository"
)

const (
	// ExpiredCheckInQueue feeds check-ins whose window lapsed without a
	// manual checkout to the recording workers.
	ExpiredCheckInQueue = "queue:expired-checkins"

	sweepInterval  = time.Minute
	sweepBatchSize = 200
)

// Reconciler is the scheduled pass behind passive expiry. Readers already
// treat lapsed check-ins as inactive; the sweeper makes sure their sessions
// eventually get recorded instead of leaking out of the statistics.
type Reconciler struct {
	checkIns *repository.CheckInRepo
	redis    *redis.Client
	stopChan chan struct{}
}

func NewReconciler(checkIns *repository.CheckInRepo, redisClient *redis.Client) *Reconciler {
	return &Reconciler{
		checkIns: checkIns,
		redis:    redisClient,
		stopChan: make(chan struct{}),
	}
}

func (r *Reconciler) Start() {
	go r.loop()
	log.Printf("Check-in reconciler started (every %s)", sweepInterval)
}

func (r *Reconciler) Stop() {
	select {
	case <-r.stopChan:
		return
	default:
		close(r.stopChan)
	}
}

func (r *Reconciler) loop() {
	// Run on startup as well as by interval.
	r.sweep(context.Background())

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.sweep(context.Background())
		}
	}
}

// sweep enqueues every expired-but-active check-in for recording. Workers
// are the ones that flip the flag, so a check-in enqueued twice is still
// recorded once.
func (r *Reconciler) sweep(ctx context.Context) {
	expired, err := r.checkIns.ListExpiredActive(ctx, sweepBatchSize)
	if err != nil {
		log.Printf("reconciler: failed to list expired check-ins: %v", err)
		return
	}

	for _, c := range expired {
		if err := r.redis.RPush(ctx, ExpiredCheckInQueue, c.ID.String()).Err(); err != nil {
			log.Printf("reconciler: failed to enqueue check-in %s: %v", c.ID, err)
		}
	}

	if len(expired) > 0 {
		log.Printf("reconciler: enqueued %d expired check-ins", len(expired))
	}
}
