package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"casetrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recordingRepo implements repository.ActivityRepository for testing.
type recordingRepo struct {
	mu         sync.Mutex
	created    []models.Activity
	createErrs int
}

func (r *recordingRepo) Create(ctx context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErrs > 0 {
		r.createErrs--
		return errors.New("write failed")
	}
	r.created = append(r.created, *activity)
	return nil
}

func (r *recordingRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Activity, int, error) {
	return nil, 0, nil
}

func (r *recordingRepo) Created() []models.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Activity, len(r.created))
	copy(out, r.created)
	return out
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestRecorder_RecordsEnqueuedJobs(t *testing.T) {
	q := NewMemoryQueue(10)
	repo := &recordingRepo{}
	recorder := NewRecorder(q, repo, 2)

	recorder.Start(context.Background())
	defer recorder.Stop()

	actorID := primitive.NewObjectID()
	resourceID := primitive.NewObjectID()
	require.NoError(t, q.Enqueue(ActivityJob{
		ActorID:    actorID,
		Action:     models.ActionCreated,
		Resource:   models.ResourceClient,
		ResourceID: resourceID,
		Message:    "created client Jane Doe",
	}))

	waitFor(t, time.Second, func() bool { return len(repo.Created()) == 1 })

	created := repo.Created()[0]
	assert.Equal(t, actorID, created.UserID)
	assert.Equal(t, models.ActionCreated, created.Action)
	assert.Equal(t, models.ResourceClient, created.Resource)
	assert.Equal(t, resourceID, created.ResourceID)
	assert.Equal(t, "created client Jane Doe", created.Message)
}

func TestRecorder_ProcessesMultipleJobs(t *testing.T) {
	q := NewMemoryQueue(20)
	repo := &recordingRepo{}
	recorder := NewRecorder(q, repo, 3)

	recorder.Start(context.Background())
	defer recorder.Stop()

	for i := 0; i < 10; i++ {
		require.NoError(t, q.Enqueue(ActivityJob{
			ActorID:  primitive.NewObjectID(),
			Action:   models.ActionUpdated,
			Resource: models.ResourceNote,
		}))
	}

	waitFor(t, 2*time.Second, func() bool { return len(repo.Created()) == 10 })
}

func TestRecorder_StopDrainsQueue(t *testing.T) {
	q := NewMemoryQueue(10)
	repo := &recordingRepo{}
	recorder := NewRecorder(q, repo, 1)

	recorder.Start(context.Background())

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(ActivityJob{
			ActorID:  primitive.NewObjectID(),
			Action:   models.ActionDeleted,
			Resource: models.ResourceUser,
		}))
	}

	recorder.Stop()

	assert.Len(t, repo.Created(), 5)
}

func TestRecorder_StopIsIdempotent(t *testing.T) {
	q := NewMemoryQueue(10)
	recorder := NewRecorder(q, &recordingRepo{}, 1)

	recorder.Start(context.Background())

	recorder.Stop()
	assert.NotPanics(t, recorder.Stop)
}
