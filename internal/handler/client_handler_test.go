package handler

import (
	"context"
	"net/http"
	"testing"

	apperrors "casetrack/internal/errors"
	"casetrack/internal/middleware"
	"casetrack/internal/models"
	"casetrack/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// routerWithActor builds a router that injects an authenticated actor the
// way the auth middleware does.
func routerWithActor(actorID primitive.ObjectID) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, actorID.Hex())
	})
	return router
}

func TestClientHandler_CreateClient(t *testing.T) {
	actor := primitive.NewObjectID()

	t.Run("returns 201", func(t *testing.T) {
		mock := &mocks.MockClientService{
			CreateClientFunc: func(_ context.Context, gotActor primitive.ObjectID, req *models.CreateClientRequest) (*models.Client, error) {
				assert.Equal(t, actor, gotActor)
				return &models.Client{ID: primitive.NewObjectID(), FirstName: req.FirstName}, nil
			},
		}
		router := routerWithActor(actor)
		router.POST("/clients", NewClientHandler(mock).CreateClient)

		w := performJSON(router, http.MethodPost, "/clients", models.CreateClientRequest{
			FirstName:       "Jonas",
			LastName:        "Weber",
			MainNoteMessage: "First contact.",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Jonas")
	})

	t.Run("returns 403 when rank is too low", func(t *testing.T) {
		mock := &mocks.MockClientService{
			CreateClientFunc: func(_ context.Context, _ primitive.ObjectID, _ *models.CreateClientRequest) (*models.Client, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		router := routerWithActor(actor)
		router.POST("/clients", NewClientHandler(mock).CreateClient)

		w := performJSON(router, http.MethodPost, "/clients", models.CreateClientRequest{
			FirstName: "Jonas",
			LastName:  "Weber",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("returns 401 without actor", func(t *testing.T) {
		router := gin.New()
		router.POST("/clients", NewClientHandler(&mocks.MockClientService{}).CreateClient)

		w := performJSON(router, http.MethodPost, "/clients", models.CreateClientRequest{
			FirstName: "Jonas",
			LastName:  "Weber",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestClientHandler_GetClient(t *testing.T) {
	actor := primitive.NewObjectID()
	clientID := primitive.NewObjectID()

	t.Run("returns detail with privileges", func(t *testing.T) {
		mock := &mocks.MockClientService{
			GetClientFunc: func(_ context.Context, _, id primitive.ObjectID) (*models.ClientDetailResponse, error) {
				assert.Equal(t, clientID, id)
				return &models.ClientDetailResponse{
					Client:        models.ClientWithPrivilege{Client: models.Client{ID: id}, Privilege: "update"},
					NotePrivilege: "only_create",
				}, nil
			},
		}
		router := routerWithActor(actor)
		router.GET("/clients/:clientId", NewClientHandler(mock).GetClient)

		w := performJSON(router, http.MethodGet, "/clients/"+clientID.Hex(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "only_create")
	})

	t.Run("returns 404 for unknown client", func(t *testing.T) {
		mock := &mocks.MockClientService{
			GetClientFunc: func(_ context.Context, _, _ primitive.ObjectID) (*models.ClientDetailResponse, error) {
				return nil, apperrors.ErrClientNotFound
			},
		}
		router := routerWithActor(actor)
		router.GET("/clients/:clientId", NewClientHandler(mock).GetClient)

		w := performJSON(router, http.MethodGet, "/clients/"+clientID.Hex(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for malformed id", func(t *testing.T) {
		router := routerWithActor(actor)
		router.GET("/clients/:clientId", NewClientHandler(&mocks.MockClientService{}).GetClient)

		w := performJSON(router, http.MethodGet, "/clients/not-an-id", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestClientHandler_ListClients(t *testing.T) {
	actor := primitive.NewObjectID()

	t.Run("passes pagination through", func(t *testing.T) {
		mock := &mocks.MockClientService{
			ListClientsFunc: func(_ context.Context, _ primitive.ObjectID, page, limit int) (*models.ClientListResponse, error) {
				assert.Equal(t, 2, page)
				assert.Equal(t, 5, limit)
				return &models.ClientListResponse{Items: []models.ClientWithPrivilege{}}, nil
			},
		}
		router := routerWithActor(actor)
		router.GET("/clients", NewClientHandler(mock).ListClients)

		w := performJSON(router, http.MethodGet, "/clients?page=2&limit=5", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("defaults bad pagination values", func(t *testing.T) {
		mock := &mocks.MockClientService{
			ListClientsFunc: func(_ context.Context, _ primitive.ObjectID, page, limit int) (*models.ClientListResponse, error) {
				assert.Equal(t, 1, page)
				assert.Equal(t, 10, limit)
				return &models.ClientListResponse{}, nil
			},
		}
		router := routerWithActor(actor)
		router.GET("/clients", NewClientHandler(mock).ListClients)

		w := performJSON(router, http.MethodGet, "/clients?page=-1&limit=9999", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestClientHandler_AssignClient(t *testing.T) {
	actor := primitive.NewObjectID()
	clientID := primitive.NewObjectID()

	t.Run("returns 403 when assignment is not allowed", func(t *testing.T) {
		mock := &mocks.MockClientService{
			AssignClientFunc: func(_ context.Context, _, _ primitive.ObjectID, _ *models.AssignClientRequest) (*models.Client, error) {
				return nil, apperrors.ErrForbidden
			},
		}
		router := routerWithActor(actor)
		router.PUT("/clients/:clientId/assign", NewClientHandler(mock).AssignClient)

		w := performJSON(router, http.MethodPut, "/clients/"+clientID.Hex()+"/assign",
			models.AssignClientRequest{UserID: primitive.NewObjectID().Hex()})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("returns 400 for unknown assignee", func(t *testing.T) {
		mock := &mocks.MockClientService{
			AssignClientFunc: func(_ context.Context, _, _ primitive.ObjectID, _ *models.AssignClientRequest) (*models.Client, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		router := routerWithActor(actor)
		router.PUT("/clients/:clientId/assign", NewClientHandler(mock).AssignClient)

		w := performJSON(router, http.MethodPut, "/clients/"+clientID.Hex()+"/assign",
			models.AssignClientRequest{UserID: primitive.NewObjectID().Hex()})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestClientHandler_DeleteClient(t *testing.T) {
	actor := primitive.NewObjectID()
	clientID := primitive.NewObjectID()

	t.Run("returns 204", func(t *testing.T) {
		mock := &mocks.MockClientService{
			DeleteClientFunc: func(_ context.Context, _, id primitive.ObjectID) error {
				assert.Equal(t, clientID, id)
				return nil
			},
		}
		router := routerWithActor(actor)
		router.DELETE("/clients/:clientId", NewClientHandler(mock).DeleteClient)

		w := performJSON(router, http.MethodDelete, "/clients/"+clientID.Hex(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
