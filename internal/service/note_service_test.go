package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"casetrack/internal/authz"
	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/repository/mocks"
	storagemocks "casetrack/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

type noteServiceFixture struct {
	svc     *NoteService
	notes   *mocks.MockNoteRepository
	clients *mocks.MockClientRepository
	users   *mocks.MockUserRepository
	storage *storagemocks.MockStorage
	roleSet []models.Role
}

func newNoteServiceFixture(t *testing.T) *noteServiceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	notes := mocks.NewMockNoteRepository(ctrl)
	clients := mocks.NewMockClientRepository(ctrl)
	users := mocks.NewMockUserRepository(ctrl)
	roles := mocks.NewMockRoleRepository(ctrl)

	roleSet := testRoles()
	seedRoles(roles, roleSet)

	storageMock := storagemocks.NewMockStorage(ctrl)
	store := authz.NewHierarchyStore(users, roles)

	svc := NewNoteService(NoteServiceConfig{
		Notes:       notes,
		Clients:     clients,
		Checker:     authz.NewNoteChecker(store),
		RoleChecker: authz.NewRoleChecker(store),
		Determiner:  authz.NewPrivilegeDeterminer(store),
		Storage:     storageMock,
	})

	return &noteServiceFixture{svc: svc, notes: notes, clients: clients, users: users, storage: storageMock, roleSet: roleSet}
}

func (f *noteServiceFixture) role(name string) models.Role {
	return roleNamed(f.roleSet, name)
}

func (f *noteServiceFixture) seedClient(client *models.Client) {
	f.clients.EXPECT().FindByID(gomock.Any(), client.ID).Return(client, nil).AnyTimes()
}

func noteCreatePassthrough() func(ctx context.Context, note *models.Note) error {
	return func(_ context.Context, note *models.Note) error {
		note.ID = primitive.NewObjectID()
		return nil
	}
}

func TestNoteService_CreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("newcomer creates a plain note", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		client := &models.Client{ID: primitive.NewObjectID(), FirstName: "Jonas", LastName: "Weber"}
		f.seedClient(client)

		f.notes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(noteCreatePassthrough())

		resp, err := f.svc.CreateNote(ctx, newcomer.ID, client.ID, &models.CreateNoteRequest{Message: "Called the family."})
		require.NoError(t, err)
		assert.False(t, resp.Note.ID.IsZero())
		assert.Equal(t, newcomer.ID, resp.Note.UserID)
		assert.Empty(t, resp.UploadURL)
	})

	t.Run("attachment request returns an upload URL", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		f.notes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(noteCreatePassthrough())
		f.storage.EXPECT().GetPresignedPutURL(gomock.Any(), gomock.Any(), "application/octet-stream", uploadURLTTL).
			DoAndReturn(func(_ context.Context, key, _ string, _ time.Duration) (string, error) {
				assert.True(t, strings.HasPrefix(key, "notes/"))
				assert.True(t, strings.HasSuffix(key, "/report.pdf"))
				return "https://storage.example.com/upload", nil
			})
		f.notes.EXPECT().SetAttachmentKey(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		resp, err := f.svc.CreateNote(ctx, advisor.ID, client.ID, &models.CreateNoteRequest{
			Message:        "See attached report.",
			AttachmentName: "report.pdf",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/upload", resp.UploadURL)
		assert.NotEmpty(t, resp.Note.AttachmentKey)
	})

	t.Run("second main note is rejected before authorization", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		admin := seedUser(f.users, f.role(models.RoleAdmin))
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		existing := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, IsMain: true}
		f.notes.EXPECT().FindMainByClientID(gomock.Any(), client.ID).Return(existing, nil)

		_, err := f.svc.CreateNote(ctx, admin.ID, client.ID, &models.CreateNoteRequest{Message: "Another main", IsMain: true})
		assert.ErrorIs(t, err, apperrors.ErrMainNoteExists)
	})

	t.Run("newcomer may not create a main note", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		f.notes.EXPECT().FindMainByClientID(gomock.Any(), client.ID).Return(nil, apperrors.ErrNoteNotFound)

		_, err := f.svc.CreateNote(ctx, newcomer.ID, client.ID, &models.CreateNoteRequest{Message: "Main", IsMain: true})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestNoteService_GetNote(t *testing.T) {
	ctx := context.Background()

	t.Run("author reads their hidden note", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		note := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, UserID: newcomer.ID, Hidden: true}
		f.notes.EXPECT().FindByID(gomock.Any(), note.ID).Return(note, nil)

		resp, err := f.svc.GetNote(ctx, newcomer.ID, note.ID)
		require.NoError(t, err)
		assert.Equal(t, note.ID, resp.ID)
		assert.Equal(t, "delete", resp.Privilege)
	})

	t.Run("hidden note is off limits for unrelated newcomers", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		authorID := primitive.NewObjectID()
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		note := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, UserID: authorID, Hidden: true}
		f.notes.EXPECT().FindByID(gomock.Any(), note.ID).Return(note, nil)

		_, err := f.svc.GetNote(ctx, newcomer.ID, note.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("attachment gets a download URL", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		note := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, UserID: advisor.ID, AttachmentKey: "notes/abc/report.pdf"}
		f.notes.EXPECT().FindByID(gomock.Any(), note.ID).Return(note, nil)
		f.storage.EXPECT().GetPresignedURL(gomock.Any(), "notes/abc/report.pdf", downloadURLTTL).
			Return("https://storage.example.com/download", nil)

		resp, err := f.svc.GetNote(ctx, advisor.ID, note.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://storage.example.com/download", resp.AttachmentURL)
	})
}

func TestNoteService_UpdateNote(t *testing.T) {
	ctx := context.Background()
	hidden := true
	message := "Updated message"

	t.Run("hiding the main note is invalid even for admins", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		admin := seedUser(f.users, f.role(models.RoleAdmin))
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		note := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, IsMain: true}
		f.notes.EXPECT().FindByID(gomock.Any(), note.ID).Return(note, nil)

		_, err := f.svc.UpdateNote(ctx, admin.ID, note.ID, &models.UpdateNoteRequest{Hidden: &hidden})
		assert.ErrorIs(t, err, apperrors.ErrMainNoteCannotHide)
	})

	t.Run("main note edits require advisor rank", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		// Authored by the newcomer, so the ownership check passes. The rank
		// requirement still blocks the edit.
		note := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, UserID: newcomer.ID, IsMain: true}
		f.notes.EXPECT().FindByID(gomock.Any(), note.ID).Return(note, nil)

		_, err := f.svc.UpdateNote(ctx, newcomer.ID, note.ID, &models.UpdateNoteRequest{Message: &message})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("author updates their own note", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		note := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, UserID: newcomer.ID}
		f.notes.EXPECT().FindByID(gomock.Any(), note.ID).Return(note, nil)
		f.notes.EXPECT().Update(gomock.Any(), note.ID, gomock.Any()).
			Return(&models.Note{ID: note.ID, Message: message}, nil)

		updated, err := f.svc.UpdateNote(ctx, newcomer.ID, note.ID, &models.UpdateNoteRequest{Message: &message})
		require.NoError(t, err)
		assert.Equal(t, message, updated.Message)
	})
}

func TestNoteService_DeleteNote(t *testing.T) {
	ctx := context.Background()

	t.Run("main note can never be deleted", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		admin := seedUser(f.users, f.role(models.RoleAdmin))
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		note := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, IsMain: true}
		f.notes.EXPECT().FindByID(gomock.Any(), note.ID).Return(note, nil)

		err := f.svc.DeleteNote(ctx, admin.ID, note.ID)
		assert.ErrorIs(t, err, apperrors.ErrMainNoteUndeletable)
	})

	t.Run("author deletes their own note", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		client := &models.Client{ID: primitive.NewObjectID(), FirstName: "Jonas", LastName: "Weber"}
		f.seedClient(client)

		note := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, UserID: newcomer.ID}
		f.notes.EXPECT().FindByID(gomock.Any(), note.ID).Return(note, nil)
		f.notes.EXPECT().SoftDelete(gomock.Any(), note.ID).Return(nil)

		require.NoError(t, f.svc.DeleteNote(ctx, newcomer.ID, note.ID))
	})

	t.Run("advisor may not delete a foreign note", func(t *testing.T) {
		f := newNoteServiceFixture(t)
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))
		authorID := primitive.NewObjectID()
		client := &models.Client{ID: primitive.NewObjectID()}
		f.seedClient(client)

		note := &models.Note{ID: primitive.NewObjectID(), ClientID: client.ID, UserID: authorID}
		f.notes.EXPECT().FindByID(gomock.Any(), note.ID).Return(note, nil)

		err := f.svc.DeleteNote(ctx, advisor.ID, note.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
