package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studyspot-backend/internal/services"
)

// Pool drains the expired-check-in queue and runs the session recorder for
// each entry. Recording is guarded twice: a short Redis lock keeps workers
// from duplicating effort, and the deactivate-flag flip in the store is
// what actually guarantees at-most-once recording.
type Pool struct {
	redis       *redis.Client
	checkIns    *services.CheckInService
	workerCount int
	stopChan    chan struct{}
}

func NewPool(redisClient *redis.Client, checkIns *services.CheckInService, workerCount int) *Pool {
	return &Pool{
		redis:       redisClient,
		checkIns:    checkIns,
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		go p.worker(i)
	}
	log.Printf("Started %d recording worker goroutines", p.workerCount)
}

func (p *Pool) Stop() {
	close(p.stopChan)
}

func (p *Pool) worker(id int) {
	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		// BLPOP with 30s timeout
		result, err := p.redis.BLPop(ctx, 30*time.Second, services.ExpiredCheckInQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}
		if len(result) < 2 {
			continue
		}

		checkInID, err := uuid.Parse(result[1])
		if err != nil {
			log.Printf("Worker %d: bad check-in id on queue: %q", id, result[1])
			continue
		}

		// Try to acquire lock
		lockKey := fmt.Sprintf("checkin_lock:%s", checkInID.String())
		locked, err := p.redis.SetNX(ctx, lockKey, "1", time.Minute).Result()
		if err != nil || !locked {
			continue // Another worker has this check-in
		}

		if err := p.checkIns.RecordExpired(ctx, checkInID); err != nil {
			// Leave the check-in for the next sweep instead of retrying here;
			// a blind requeue could double-enqueue a half-recorded closure.
			log.Printf("Worker %d: failed to record expired check-in %s: %v", id, checkInID, err)
		}

		p.redis.Del(ctx, lockKey)
	}
}
