// File: medibook/cron/worker.go
package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"medibook/config"
	"medibook/models"
	"medibook/services/payment"
	"medibook/services/refund"

	"github.com/hibiken/asynq"
)

const TypeRefundPoll = "refund:poll"

// pollDelay is how long after initiation the first provider-side refund
// status check runs; refund webhooks usually arrive well before it.
const pollDelay = 5 * time.Minute

// RefundPollPayload is the task body for a deferred refund status check.
type RefundPollPayload struct {
	RefundID string `json:"refundId"`
}

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// AsynqRefundPoller schedules deferred refund status polls on the task queue.
type AsynqRefundPoller struct {
	client *asynq.Client
}

// NewRefundPoller builds the enqueue side of the refund poll queue.
func NewRefundPoller() *AsynqRefundPoller {
	return &AsynqRefundPoller{client: asynq.NewClient(queueRedisOpts())}
}

func (p *AsynqRefundPoller) EnqueuePoll(refundID string) error {
	payload, err := json.Marshal(RefundPollPayload{RefundID: refundID})
	if err != nil {
		return fmt.Errorf("failed to encode refund poll payload: %w", err)
	}
	task := asynq.NewTask(TypeRefundPoll, payload)
	if _, err := p.client.Enqueue(task, asynq.ProcessIn(pollDelay), asynq.MaxRetry(10)); err != nil {
		return fmt.Errorf("failed to enqueue refund poll: %w", err)
	}
	return nil
}

func (p *AsynqRefundPoller) Close() error {
	return p.client.Close()
}

// InitRefundWorker runs the async worker in background. It is the fallback
// path for refunds whose completion webhook never arrives.
func InitRefundWorker(gateway payment.Gateway, tracker refund.TrackerService) {
	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRefundPoll, handleRefundPoll(gateway, tracker))

	go func() {
		log.Println("[RefundWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RefundWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RefundWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleRefundPoll(gateway payment.Gateway, tracker refund.TrackerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p RefundPollPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[RefundPoll] invalid payload: %v", err)
			return err
		}

		rec, err := tracker.Get(ctx, p.RefundID)
		if err != nil {
			log.Printf("[RefundPoll] no record for refund %s: %v", p.RefundID, err)
			return nil
		}
		if rec.Status != models.RefundStatusInitiated {
			// Webhook got there first.
			return nil
		}

		status, err := gateway.GetRefundStatus(ctx, p.RefundID)
		if err != nil {
			log.Printf("[RefundPoll] status check for %s failed: %v", p.RefundID, err)
			return err
		}
		if status == models.RefundStatusInitiated {
			// Still settling; let asynq retry with backoff.
			return fmt.Errorf("refund %s still pending at the gateway", p.RefundID)
		}

		if err := tracker.UpdateStatus(ctx, p.RefundID, status); err != nil {
			log.Printf("[RefundPoll] failed to finalize refund %s as %s: %v", p.RefundID, status, err)
			return err
		}
		log.Printf("[RefundPoll] refund %s finalized as %s", p.RefundID, status)
		return nil
	}
}
