package cron

import (
	"context"
	"log"
	"time"

	"cliniq/config"
	"cliniq/services/scheduling"

	"github.com/hibiken/asynq"
)

const TypeStaleSweep = "booking:sweep"

// sweepInterval drives the recurring stale-booking sweep.
const sweepInterval = time.Hour

// InitSweepWorker runs the async worker in background and enqueues the
// recurring sweep task that closes out yesterday's still-active bookings.
func InitSweepWorker(svc scheduling.SchedulingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeStaleSweep, handleSweepTask(svc))

	go func() {
		log.Println("[SweepWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go enqueueSweeps(redisOpts)
}

// enqueueSweeps schedules the sweep task on a fixed interval. The task is
// idempotent, so overlapping runs after a worker restart are harmless.
func enqueueSweeps(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		task := asynq.NewTask(TypeStaleSweep, nil)
		if _, err := client.Enqueue(task); err != nil {
			log.Printf("[SweepWorker] failed to enqueue sweep: %v", err)
		}
		<-ticker.C
	}
}

func handleSweepTask(svc scheduling.SchedulingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		closed, err := svc.ExpireStale(ctx)
		if err != nil {
			log.Printf("[SweepHandler] sweep failed: %v", err)
			return err
		}
		if closed > 0 {
			log.Printf("[SweepHandler] closed %d stale bookings", closed)
		}
		return nil
	}
}
