package service

import (
	"log"

	"casetrack/internal/queue"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recordActivity enqueues an audit entry for a completed mutation. Entries
// are written asynchronously; when the queue is full the entry is dropped
// with a warning instead of failing the request that triggered it.
func recordActivity(q queue.Queue, actorID primitive.ObjectID, action, resource string, resourceID primitive.ObjectID, message string) {
	if q == nil {
		return
	}

	job := queue.ActivityJob{
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Message:    message,
	}
	if err := q.Enqueue(job); err != nil {
		log.Printf("WARN: dropping activity entry (%s %s %s): %v", action, resource, resourceID.Hex(), err)
	}
}
