package service

import (
	"context"
	"fmt"
	"time"

	"casetrack/internal/authz"
	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/queue"
	"casetrack/internal/repository"
	"casetrack/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const birthdateLayout = "2006-01-02"

// ClientService handles business logic for client operations.
type ClientService struct {
	clients     repository.ClientRepository
	notes       repository.NoteRepository
	users       repository.UserRepository
	store       *authz.HierarchyStore
	checker     *authz.ClientChecker
	noteChecker *authz.NoteChecker
	roleChecker *authz.RoleChecker
	determiner  *authz.PrivilegeDeterminer
	storage     storage.Storage
	queue       queue.Queue
}

// ClientServiceConfig holds the dependencies for creating a ClientService.
type ClientServiceConfig struct {
	Clients     repository.ClientRepository
	Notes       repository.NoteRepository
	Users       repository.UserRepository
	Store       *authz.HierarchyStore
	Checker     *authz.ClientChecker
	NoteChecker *authz.NoteChecker
	RoleChecker *authz.RoleChecker
	Determiner  *authz.PrivilegeDeterminer
	Storage     storage.Storage
	Queue       queue.Queue
}

// NewClientService creates a new ClientService.
func NewClientService(cfg ClientServiceConfig) *ClientService {
	return &ClientService{
		clients:     cfg.Clients,
		notes:       cfg.Notes,
		users:       cfg.Users,
		store:       cfg.Store,
		checker:     cfg.Checker,
		noteChecker: cfg.NoteChecker,
		roleChecker: cfg.RoleChecker,
		determiner:  cfg.Determiner,
		storage:     cfg.Storage,
		queue:       cfg.Queue,
	}
}

// CreateClient creates a client together with its main note. The main note
// exists for the client's whole lifetime and can never be deleted.
func (s *ClientService) CreateClient(ctx context.Context, actorID primitive.ObjectID, req *models.CreateClientRequest) (*models.Client, error) {
	actx := authz.NewContext(actorID)

	ok, err := s.checker.CanCreate(ctx, actx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	var assignedID *primitive.ObjectID
	if req.AssignedUserID != "" {
		id, err := primitive.ObjectIDFromHex(req.AssignedUserID)
		if err != nil {
			return nil, apperrors.ErrUserNotFound
		}
		if _, err := s.users.FindByID(ctx, id); err != nil {
			return nil, err
		}
		assignedID = &id
	}

	if assignedID != nil {
		ok, err := s.checker.CanAssignUser(ctx, actx, assignedID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.ErrForbidden
		}
	}

	client := &models.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		UserID:    assignedID,
	}
	if req.Birthdate != nil {
		birthdate, err := time.Parse(birthdateLayout, *req.Birthdate)
		if err != nil {
			return nil, err
		}
		client.Birthdate = &birthdate
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	mainNote := &models.Note{
		ClientID: client.ID,
		UserID:   actorID,
		Message:  req.MainNoteMessage,
		IsMain:   true,
	}
	if err := s.notes.Create(ctx, mainNote); err != nil {
		return nil, err
	}

	recordActivity(s.queue, actorID, models.ActionCreated, models.ResourceClient, client.ID,
		fmt.Sprintf("Created client %s %s", client.FirstName, client.LastName))

	return client, nil
}

// ListClients returns a page of clients with the actor's privilege computed
// per item. Soft-deleted clients are only included for managing advisors
// and above.
func (s *ClientService) ListClients(ctx context.Context, actorID primitive.ObjectID, page, limit int) (*models.ClientListResponse, error) {
	actx := authz.NewContext(actorID)
	if err := actx.Preload(ctx, s.store); err != nil {
		return nil, err
	}

	includeDeleted, err := s.roleChecker.IsAuthorizedByRole(ctx, actx, models.RoleManagingAdvisor)
	if err != nil {
		return nil, err
	}

	clients, total, err := s.clients.FindAll(ctx, includeDeleted, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]models.ClientWithPrivilege, 0, len(clients))
	for i := range clients {
		c := clients[i]
		priv, err := s.determiner.ClientPrivilege(ctx, actx, clientFacts(&c))
		if err != nil {
			return nil, err
		}
		items = append(items, models.ClientWithPrivilege{Client: c, Privilege: priv.String()})
	}

	return &models.ClientListResponse{
		Items:      items,
		Pagination: paginate(page, limit, total),
	}, nil
}

// GetClient returns a client with the notes the actor may read, the actor's
// privilege on each of them, and the note-list privilege for the client.
func (s *ClientService) GetClient(ctx context.Context, actorID, id primitive.ObjectID) (*models.ClientDetailResponse, error) {
	actx := authz.NewContext(actorID)
	if err := actx.Preload(ctx, s.store); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	facts := clientFacts(client)
	ok, err := s.checker.CanRead(ctx, actx, facts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	clientPriv, err := s.determiner.ClientPrivilege(ctx, actx, facts)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.FindByClientID(ctx, id)
	if err != nil {
		return nil, err
	}

	visible, err := s.visibleNotes(ctx, actx, client, notes)
	if err != nil {
		return nil, err
	}

	notePriv, err := s.determiner.NoteListPrivilege(ctx, actx, client.UserID)
	if err != nil {
		return nil, err
	}

	return &models.ClientDetailResponse{
		Client:        models.ClientWithPrivilege{Client: *client, Privilege: clientPriv.String()},
		Notes:         visible,
		NotePrivilege: notePriv.String(),
	}, nil
}

// UpdateClient updates a client's profile fields.
func (s *ClientService) UpdateClient(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateClientRequest) (*models.Client, error) {
	actx := authz.NewContext(actorID)

	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.checker.CanUpdate(ctx, actx, clientFacts(client))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	updated, err := s.clients.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	recordActivity(s.queue, actorID, models.ActionUpdated, models.ResourceClient, id,
		fmt.Sprintf("Updated client %s %s", updated.FirstName, updated.LastName))

	return updated, nil
}

// AssignClient assigns a client to a user, or unassigns it when the request
// carries no user id. Advisors may only assign clients to themselves.
func (s *ClientService) AssignClient(ctx context.Context, actorID, id primitive.ObjectID, req *models.AssignClientRequest) (*models.Client, error) {
	actx := authz.NewContext(actorID)

	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var assigneeID *primitive.ObjectID
	if req.UserID != "" {
		uid, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return nil, apperrors.ErrUserNotFound
		}
		if _, err := s.users.FindByID(ctx, uid); err != nil {
			return nil, err
		}
		assigneeID = &uid
	}

	ok, err := s.checker.CanAssignUser(ctx, actx, assigneeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	if err := s.clients.AssignUser(ctx, id, assigneeID); err != nil {
		return nil, err
	}

	recordActivity(s.queue, actorID, models.ActionAssigned, models.ResourceClient, id,
		fmt.Sprintf("Assigned client %s %s", client.FirstName, client.LastName))

	client.UserID = assigneeID
	return client, nil
}

// DeleteClient soft-deletes a client.
func (s *ClientService) DeleteClient(ctx context.Context, actorID, id primitive.ObjectID) error {
	actx := authz.NewContext(actorID)

	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.checker.CanDelete(ctx, actx, clientFacts(client))
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrForbidden
	}

	if err := s.clients.SoftDelete(ctx, id); err != nil {
		return err
	}

	recordActivity(s.queue, actorID, models.ActionDeleted, models.ResourceClient, id,
		fmt.Sprintf("Deleted client %s %s", client.FirstName, client.LastName))

	return nil
}

// visibleNotes filters notes down to what the actor may read and computes
// the actor's privilege per note. Filtering runs silently.
func (s *ClientService) visibleNotes(ctx context.Context, actx *authz.Context, client *models.Client, notes []models.Note) ([]models.NoteWithPrivilege, error) {
	silent := s.noteChecker.Silent()

	visible := make([]models.NoteWithPrivilege, 0, len(notes))
	for i := range notes {
		n := notes[i]
		facts := noteFacts(client, &n)

		ok, err := silent.CanRead(ctx, actx, facts)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		priv, err := s.determiner.NotePrivilege(ctx, actx, facts)
		if err != nil {
			return nil, err
		}

		attachDownloadURL(ctx, s.storage, &n)
		visible = append(visible, models.NoteWithPrivilege{Note: n, Privilege: priv.String()})
	}
	return visible, nil
}

// clientFacts extracts the checker facts from a client document.
func clientFacts(c *models.Client) authz.ClientFacts {
	return authz.ClientFacts{
		OwnerID: c.UserID,
		Deleted: c.DeletedAt != nil,
	}
}

// noteFacts extracts the checker facts from a note and its client.
func noteFacts(c *models.Client, n *models.Note) authz.NoteFacts {
	return authz.NoteFacts{
		OwnerID:       n.UserID,
		ClientOwnerID: c.UserID,
		IsMain:        n.IsMain,
		Hidden:        n.Hidden,
		Deleted:       n.DeletedAt != nil,
	}
}

// paginate computes pagination metadata for a result page.
func paginate(page, limit, total int) models.Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
