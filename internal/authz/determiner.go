package authz

import (
	"context"

	"casetrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrivilegeDeterminer combines checker results into one Privilege value per
// resource, probing from the strongest capability downward and returning on
// the first grant. All underlying checks run silently: a denial here is an
// expected branch of rendering, not a security event.
type PrivilegeDeterminer struct {
	store      *HierarchyStore
	clients    *ClientChecker
	notes      *NoteChecker
	users      *UserChecker
	activities *ActivityChecker
	roles      *RoleChecker
}

// NewPrivilegeDeterminer creates a PrivilegeDeterminer over the given store.
func NewPrivilegeDeterminer(store *HierarchyStore) *PrivilegeDeterminer {
	return &PrivilegeDeterminer{
		store:      store,
		clients:    NewClientChecker(store).Silent(),
		notes:      NewNoteChecker(store).Silent(),
		users:      NewUserChecker(store).Silent(),
		activities: NewActivityChecker(store).Silent(),
		roles:      NewRoleChecker(store),
	}
}

// ClientPrivilege computes the actor's privilege over a client.
func (d *PrivilegeDeterminer) ClientPrivilege(ctx context.Context, actx *Context, facts ClientFacts) (Privilege, error) {
	if ok, err := d.clients.CanDelete(ctx, actx, facts); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeDelete, nil
	}
	if ok, err := d.clients.CanUpdate(ctx, actx, facts); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeUpdate, nil
	}
	if ok, err := d.clients.CanCreate(ctx, actx); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeCreate, nil
	}
	if ok, err := d.clients.CanRead(ctx, actx, facts); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeRead, nil
	}
	return PrivilegeNone, nil
}

// NotePrivilege computes the actor's privilege over an existing note. The
// main note is never delete-eligible, and updating it additionally requires
// advisor-or-above.
func (d *PrivilegeDeterminer) NotePrivilege(ctx context.Context, actx *Context, facts NoteFacts) (Privilege, error) {
	if !facts.IsMain {
		if ok, err := d.notes.CanDelete(ctx, actx, facts); err != nil {
			return PrivilegeNone, err
		} else if ok {
			return PrivilegeDelete, nil
		}
	}

	canUpdate, err := d.notes.CanUpdate(ctx, actx, facts)
	if err != nil {
		return PrivilegeNone, err
	}
	if canUpdate && facts.IsMain {
		canUpdate, err = d.roles.IsAuthorizedByRole(ctx, actx, models.RoleAdvisor)
		if err != nil {
			return PrivilegeNone, err
		}
	}
	if canUpdate {
		return PrivilegeUpdate, nil
	}

	if ok, err := d.notes.CanCreate(ctx, actx, facts.IsMain); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeCreate, nil
	}
	if ok, err := d.notes.CanRead(ctx, actx, facts); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeRead, nil
	}
	return PrivilegeNone, nil
}

// NoteListPrivilege computes the note capability offered on a client page.
// An actor may be allowed to create notes without being allowed to read the
// client's hidden notes; in that case OnlyCreate is returned instead of
// Create so the UI offers the form but not the list.
func (d *PrivilegeDeterminer) NoteListPrivilege(ctx context.Context, actx *Context, clientOwnerID *primitive.ObjectID) (Privilege, error) {
	canCreate, err := d.notes.CanCreate(ctx, actx, false)
	if err != nil {
		return PrivilegeNone, err
	}

	// Probe with a hidden note authored by someone else: the strictest read
	// the client page can require of this actor.
	hiddenProbe := NoteFacts{Hidden: true, ClientOwnerID: clientOwnerID}
	canReadHidden, err := d.notes.CanRead(ctx, actx, hiddenProbe)
	if err != nil {
		return PrivilegeNone, err
	}

	if canCreate && canReadHidden {
		return PrivilegeCreate, nil
	}
	if canCreate {
		return PrivilegeOnlyCreate, nil
	}

	canRead, err := d.notes.CanRead(ctx, actx, NoteFacts{ClientOwnerID: clientOwnerID})
	if err != nil {
		return PrivilegeNone, err
	}
	if canRead {
		return PrivilegeRead, nil
	}
	return PrivilegeNone, nil
}

// UserPrivilege computes the actor's privilege over a user account.
func (d *PrivilegeDeterminer) UserPrivilege(ctx context.Context, actx *Context, target UserFacts) (Privilege, error) {
	if ok, err := d.users.CanDelete(ctx, actx, target); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeDelete, nil
	}
	if ok, err := d.users.CanUpdate(ctx, actx, target); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeUpdate, nil
	}
	if ok, err := d.users.CanCreate(ctx, actx); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeCreate, nil
	}
	if ok, err := d.users.CanRead(ctx, actx, target); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeRead, nil
	}
	return PrivilegeNone, nil
}

// ActivityPrivilege computes the actor's privilege over a user's activity
// log. Activity is read-only, so the result is Read or None.
func (d *PrivilegeDeterminer) ActivityPrivilege(ctx context.Context, actx *Context, target UserFacts) (Privilege, error) {
	if ok, err := d.activities.CanRead(ctx, actx, target); err != nil {
		return PrivilegeNone, err
	} else if ok {
		return PrivilegeRead, nil
	}
	return PrivilegeNone, nil
}
