package queue

import (
	"context"
	"log"
	"sync"
	"time"

	"casetrack/internal/models"
	"casetrack/internal/repository"
)

const (
	// MaxRetries is the maximum number of automatic retries for failed writes.
	MaxRetries = 3
	// RetryDelay is the base delay between retries (exponential backoff).
	RetryDelay = 5 * time.Second
	// WriteTimeout is the timeout for activity writes during shutdown.
	WriteTimeout = 5 * time.Second
)

// Recorder drains activity jobs from the queue and persists them. Activity
// logging is write-behind: request handlers enqueue and return, the recorder
// absorbs database hiccups with retries.
type Recorder struct {
	queue        *MemoryQueue
	activities   repository.ActivityRepository
	workerCount  int
	wg           sync.WaitGroup
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewRecorder creates a new activity recorder.
func NewRecorder(queue *MemoryQueue, activities repository.ActivityRepository, workerCount int) *Recorder {
	return &Recorder{
		queue:       queue,
		activities:  activities,
		workerCount: workerCount,
		shutdownCh:  make(chan struct{}),
	}
}

// Start begins recording jobs with the configured number of workers.
func (r *Recorder) Start(ctx context.Context) {
	for i := 0; i < r.workerCount; i++ {
		r.wg.Add(1)
		go r.worker(ctx, i)
	}
	log.Printf("Activity recorder started with %d workers", r.workerCount)
}

// Stop gracefully stops the recorder, waiting for workers to finish.
func (r *Recorder) Stop() {
	r.shutdownOnce.Do(func() {
		close(r.shutdownCh)
		r.queue.Close()
	})
	r.wg.Wait()
	log.Println("Activity recorder stopped")
}

func (r *Recorder) worker(ctx context.Context, id int) {
	defer r.wg.Done()
	log.Printf("Worker %d started", id)

	for {
		job, err := r.queue.Dequeue(ctx)
		if err != nil {
			if err == ErrQueueClosed || err == context.Canceled {
				log.Printf("Worker %d shutting down", id)
				return
			}
			continue
		}
		r.record(ctx, job)
	}
}

func (r *Recorder) record(ctx context.Context, job ActivityJob) {
	activity := &models.Activity{
		UserID:     job.ActorID,
		Action:     job.Action,
		Resource:   job.Resource,
		ResourceID: job.ResourceID,
		Message:    job.Message,
	}

	if err := r.activities.Create(ctx, activity); err != nil {
		log.Printf("Failed to record %s %s activity for user %s: %v",
			job.Resource, job.Action, job.ActorID.Hex(), err)
		r.handleFailure(job)
		return
	}
}

func (r *Recorder) handleFailure(job ActivityJob) {
	job.RetryCount++

	if job.RetryCount >= MaxRetries {
		// Activity entries are advisory; after max retries the entry is dropped.
		log.Printf("Max retries reached, dropping %s %s activity for user %s",
			job.Resource, job.Action, job.ActorID.Hex())
		return
	}

	// Calculate exponential backoff delay
	delay := RetryDelay * time.Duration(1<<uint(job.RetryCount-1))
	log.Printf("Retrying activity write for user %s in %v (attempt %d/%d)",
		job.ActorID.Hex(), delay, job.RetryCount+1, MaxRetries)

	// Schedule retry with delay. Uses shutdownCh instead of ctx so an
	// in-flight retry gets one last direct write during graceful shutdown.
	go func() {
		select {
		case <-r.shutdownCh:
			writeCtx, cancel := context.WithTimeout(context.Background(), WriteTimeout)
			defer cancel()
			activity := &models.Activity{
				UserID:     job.ActorID,
				Action:     job.Action,
				Resource:   job.Resource,
				ResourceID: job.ResourceID,
				Message:    job.Message,
			}
			if err := r.activities.Create(writeCtx, activity); err != nil {
				log.Printf("Dropping activity for user %s after shutdown: %v", job.ActorID.Hex(), err)
			}
			return
		case <-time.After(delay):
			if err := r.queue.Enqueue(job); err != nil {
				log.Printf("Failed to re-enqueue activity for user %s: %v", job.ActorID.Hex(), err)
			}
		}
	}()
}
