package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"casetrack/internal/authz"
	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/queue"
	"casetrack/internal/repository"
	"casetrack/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	uploadURLTTL   = 15 * time.Minute
	downloadURLTTL = 15 * time.Minute
)

// NoteService handles business logic for note operations.
type NoteService struct {
	notes       repository.NoteRepository
	clients     repository.ClientRepository
	checker     *authz.NoteChecker
	roleChecker *authz.RoleChecker
	determiner  *authz.PrivilegeDeterminer
	storage     storage.Storage
	queue       queue.Queue
}

// NoteServiceConfig holds the dependencies for creating a NoteService.
type NoteServiceConfig struct {
	Notes       repository.NoteRepository
	Clients     repository.ClientRepository
	Checker     *authz.NoteChecker
	RoleChecker *authz.RoleChecker
	Determiner  *authz.PrivilegeDeterminer
	Storage     storage.Storage
	Queue       queue.Queue
}

// NewNoteService creates a new NoteService.
func NewNoteService(cfg NoteServiceConfig) *NoteService {
	return &NoteService{
		notes:       cfg.Notes,
		clients:     cfg.Clients,
		checker:     cfg.Checker,
		roleChecker: cfg.RoleChecker,
		determiner:  cfg.Determiner,
		storage:     cfg.Storage,
		queue:       cfg.Queue,
	}
}

// CreateNote creates a note on a client. When an attachment name is given,
// the response carries a pre-signed upload URL for it. A second main note
// on the same client is rejected before authorization is consulted.
func (s *NoteService) CreateNote(ctx context.Context, actorID, clientID primitive.ObjectID, req *models.CreateNoteRequest) (*models.CreateNoteResponse, error) {
	actx := authz.NewContext(actorID)

	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.IsMain {
		existing, err := s.notes.FindMainByClientID(ctx, clientID)
		if err != nil && !errors.Is(err, apperrors.ErrNoteNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.ErrMainNoteExists
		}
	}

	ok, err := s.checker.CanCreate(ctx, actx, req.IsMain)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	note := &models.Note{
		ClientID: clientID,
		UserID:   actorID,
		Message:  req.Message,
		IsMain:   req.IsMain,
		Hidden:   req.Hidden,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	resp := &models.CreateNoteResponse{Note: *note}
	if req.AttachmentName != "" {
		key := fmt.Sprintf("notes/%s/%s", note.ID.Hex(), req.AttachmentName)
		uploadURL, err := s.storage.GetPresignedPutURL(ctx, key, "application/octet-stream", uploadURLTTL)
		if err != nil {
			return nil, err
		}
		if err := s.notes.SetAttachmentKey(ctx, note.ID, key); err != nil {
			return nil, err
		}
		resp.Note.AttachmentKey = key
		resp.UploadURL = uploadURL
	}

	recordActivity(s.queue, actorID, models.ActionCreated, models.ResourceNote, note.ID,
		fmt.Sprintf("Created note on client %s %s", client.FirstName, client.LastName))

	return resp, nil
}

// ListNotes returns the notes of a client the actor may read, with the
// actor's privilege computed per note.
func (s *NoteService) ListNotes(ctx context.Context, actorID, clientID primitive.ObjectID) (*models.NoteListResponse, error) {
	actx := authz.NewContext(actorID)

	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	silent := s.checker.Silent()
	items := make([]models.NoteWithPrivilege, 0, len(notes))
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
		items = append(items, models.NoteWithPrivilege{Note: n, Privilege: priv.String()})
	}

	return &models.NoteListResponse{Items: items}, nil
}

// GetNote returns a single note with the actor's computed privilege.
func (s *NoteService) GetNote(ctx context.Context, actorID, id primitive.ObjectID) (*models.NoteWithPrivilege, error) {
	actx := authz.NewContext(actorID)

	note, client, err := s.findWithClient(ctx, id)
	if err != nil {
		return nil, err
	}

	facts := noteFacts(client, note)
	ok, err := s.checker.CanRead(ctx, actx, facts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	priv, err := s.determiner.NotePrivilege(ctx, actx, facts)
	if err != nil {
		return nil, err
	}

	attachDownloadURL(ctx, s.storage, note)
	return &models.NoteWithPrivilege{Note: *note, Privilege: priv.String()}, nil
}

// UpdateNote updates a note's message or hidden flag. The main note can
// never be hidden, and editing it additionally requires advisor rank.
func (s *NoteService) UpdateNote(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateNoteRequest) (*models.Note, error) {
	actx := authz.NewContext(actorID)

	note, client, err := s.findWithClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if note.IsMain && req.Hidden != nil && *req.Hidden {
		return nil, apperrors.ErrMainNoteCannotHide
	}

	ok, err := s.checker.CanUpdate(ctx, actx, noteFacts(client, note))
	if err != nil {
		return nil, err
	}
	if ok && note.IsMain {
		ok, err = s.roleChecker.IsAdvisorOrAbove(ctx, actx)
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	updated, err := s.notes.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	recordActivity(s.queue, actorID, models.ActionUpdated, models.ResourceNote, id,
		fmt.Sprintf("Updated note on client %s %s", client.FirstName, client.LastName))

	return updated, nil
}

// DeleteNote soft-deletes a note. Deleting the main note is an invalid
// operation, rejected before authorization is consulted.
func (s *NoteService) DeleteNote(ctx context.Context, actorID, id primitive.ObjectID) error {
	actx := authz.NewContext(actorID)

	note, client, err := s.findWithClient(ctx, id)
	if err != nil {
		return err
	}

	if note.IsMain {
		return apperrors.ErrMainNoteUndeletable
	}

	ok, err := s.checker.CanDelete(ctx, actx, noteFacts(client, note))
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrForbidden
	}

	if err := s.notes.SoftDelete(ctx, id); err != nil {
		return err
	}

	recordActivity(s.queue, actorID, models.ActionDeleted, models.ResourceNote, id,
		fmt.Sprintf("Deleted note on client %s %s", client.FirstName, client.LastName))

	return nil
}

// findWithClient loads a note together with its client, which the checkers
// need for the client-owner facts.
func (s *NoteService) findWithClient(ctx context.Context, id primitive.ObjectID) (*models.Note, *models.Client, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	client, err := s.clients.FindByID(ctx, note.ClientID)
	if err != nil {
		return nil, nil, err
	}

	return note, client, nil
}

// attachDownloadURL populates the note's pre-signed download URL when it
// has an attachment. URL generation is best effort; a storage hiccup must
// not fail the read.
func attachDownloadURL(ctx context.Context, store storage.Storage, note *models.Note) {
	if store == nil || note.AttachmentKey == "" {
		return
	}

	url, err := store.GetPresignedURL(ctx, note.AttachmentKey, downloadURLTTL)
	if err != nil {
		log.Printf("WARN: failed to presign attachment %s: %v", note.AttachmentKey, err)
		return
	}
	note.AttachmentURL = url
}
