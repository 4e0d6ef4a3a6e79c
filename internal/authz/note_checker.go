package authz

import (
	"context"
	"log"

	"casetrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NoteFacts are the ownership and state facts a note check needs.
type NoteFacts struct {
	OwnerID       primitive.ObjectID  // note author
	ClientOwnerID *primitive.ObjectID // user assigned to the note's client
	IsMain        bool
	Hidden        bool
	Deleted       bool
}

// NoteChecker decides grant/deny for note operations.
type NoteChecker struct {
	store      *HierarchyStore
	logDenials bool
}

// NewNoteChecker creates a NoteChecker that logs denials.
func NewNoteChecker(store *HierarchyStore) *NoteChecker {
	return &NoteChecker{store: store, logDenials: true}
}

// Silent returns a copy that does not log denials.
func (c *NoteChecker) Silent() *NoteChecker {
	return &NoteChecker{store: c.store}
}

// CanCreate grants newcomer-or-above for normal notes and advisor-or-above
// for main notes. The one-main-note-per-client rule is enforced by the note
// service before authorization is consulted.
func (c *NoteChecker) CanCreate(ctx context.Context, actx *Context, isMain bool) (bool, error) {
	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	minimum := models.RoleNewcomer
	if isMain {
		minimum = models.RoleAdvisor
	}
	if satisfiesRole(ranks, actorRank, minimum) {
		return true, nil
	}
	return c.deny(actx, "create note"), nil
}

// CanRead grants newcomer-or-above for normal and main notes. Deleted notes
// require managing_advisor-or-above. Hidden notes require advisor-or-above,
// unless the actor authored the note or owns the client, in which case the
// note is visible regardless of rank.
func (c *NoteChecker) CanRead(ctx context.Context, actx *Context, facts NoteFacts) (bool, error) {
	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if facts.Deleted {
		if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) {
			return true, nil
		}
		return c.deny(actx, "read deleted note"), nil
	}

	if facts.Hidden {
		if facts.OwnerID == actx.ActorID {
			return true, nil
		}
		if facts.ClientOwnerID != nil && *facts.ClientOwnerID == actx.ActorID {
			return true, nil
		}
		if satisfiesRole(ranks, actorRank, models.RoleAdvisor) {
			return true, nil
		}
		return c.deny(actx, "read hidden note"), nil
	}

	if satisfiesRole(ranks, actorRank, models.RoleNewcomer) {
		return true, nil
	}
	return c.deny(actx, "read note"), nil
}

// CanUpdate grants the note's author or managing_advisor-or-above. The
// advisor-or-above restriction for main notes lives in the privilege
// determiner, which is where the looser main-note rules are combined.
func (c *NoteChecker) CanUpdate(ctx context.Context, actx *Context, facts NoteFacts) (bool, error) {
	if facts.OwnerID == actx.ActorID {
		return true, nil
	}

	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) {
		return true, nil
	}
	return c.deny(actx, "update note"), nil
}

// CanDelete grants the note's author or managing_advisor-or-above. Deleting
// the main note is an invalid operation rejected by the note service before
// this check runs.
func (c *NoteChecker) CanDelete(ctx context.Context, actx *Context, facts NoteFacts) (bool, error) {
	if facts.OwnerID == actx.ActorID {
		return true, nil
	}

	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) {
		return true, nil
	}
	return c.deny(actx, "delete note"), nil
}

func (c *NoteChecker) resolve(ctx context.Context, actx *Context) (int, map[string]int, error) {
	actorRank, err := actx.resolveActorRank(ctx, c.store)
	if err != nil {
		return RankUnknown, nil, err
	}
	ranks, err := actx.rankTable(ctx, c.store)
	if err != nil {
		return RankUnknown, nil, err
	}
	return actorRank, ranks, nil
}

func (c *NoteChecker) deny(actx *Context, action string) bool {
	if c.logDenials {
		log.Printf("authorization denied: actor %s may not %s", actx.ActorID.Hex(), action)
	}
	return false
}
