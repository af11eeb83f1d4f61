package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/99minutos/auth-service/internal/core/domain"
)

const testNS = "auth_service.users"

func TestUserRepository_FindByUsername(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, testNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "username", Value: "alice"},
			{Key: "password", Value: "$2a$10$abcdefghijklmnopqrstuv"},
			{Key: "created_at", Value: created},
		}))

		user, err := NewUserRepository(mt.DB, 0).FindByUsername(context.Background(), "alice")
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if user.ID != id.Hex() {
			mt.Errorf("ID: want %s, got %s", id.Hex(), user.ID)
		}
		if user.Username != "alice" || user.PasswordHash != "$2a$10$abcdefghijklmnopqrstuv" {
			mt.Errorf("unexpected user: %+v", user)
		}
		if !user.CreatedAt.Equal(created) {
			mt.Errorf("CreatedAt: want %v, got %v", created, user.CreatedAt)
		}
	})

	mt.Run("legacy document without created_at", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(1, testNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "username", Value: "bob"},
			{Key: "password", Value: "hash"},
			{Key: "__v", Value: 0},
		}))

		user, err := NewUserRepository(mt.DB, 0).FindByUsername(context.Background(), "bob")
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if user.Username != "bob" || user.PasswordHash != "hash" {
			mt.Errorf("unexpected user: %+v", user)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))

		_, err := NewUserRepository(mt.DB, 0).FindByUsername(context.Background(), "ghost")
		if !errors.Is(err, domain.ErrUserNotFound) {
			mt.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))

		_, err := NewUserRepository(mt.DB, 0).FindByUsername(context.Background(), "alice")
		if err == nil || errors.Is(err, domain.ErrUserNotFound) {
			mt.Errorf("expected wrapped driver error, got %v", err)
		}
	})
}

func TestUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := NewUserRepository(mt.DB, 0).Create(context.Background(), "alice", "hash")
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(user.ID); err != nil {
			mt.Errorf("expected ObjectID hex, got %q", user.ID)
		}
		if user.Username != "alice" || user.PasswordHash != "hash" {
			mt.Errorf("unexpected user: %+v", user)
		}
		if user.CreatedAt.IsZero() {
			mt.Error("CreatedAt must be set")
		}
	})

	mt.Run("duplicate key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: auth_service.users index: username_1",
		}))

		_, err := NewUserRepository(mt.DB, 0).Create(context.Background(), "alice", "hash")
		if !errors.Is(err, domain.ErrUserExists) {
			mt.Errorf("expected ErrUserExists, got %v", err)
		}
	})

	mt.Run("other write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))

		_, err := NewUserRepository(mt.DB, 0).Create(context.Background(), "alice", "hash")
		if err == nil || errors.Is(err, domain.ErrUserExists) {
			mt.Errorf("expected wrapped write error, got %v", err)
		}
	})
}

func TestUserRepository_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := NewUserRepository(mt.DB, 0).EnsureIndexes(context.Background()); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
	})

	mt.Run("conflicting index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "Index already exists with different options",
		}))

		if err := NewUserRepository(mt.DB, 0).EnsureIndexes(context.Background()); err == nil {
			mt.Error("expected error")
		}
	})
}

func TestNewUserRepository_Timeout(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("configured", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, 25*time.Second)
		if repo.timeout != 25*time.Second {
			mt.Fatalf("expected configured timeout above the default, got %v", repo.timeout)
		}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNS, mtest.FirstBatch))
		if _, err := repo.FindByUsername(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("fallback", func(mt *mtest.T) {
		if repo := NewUserRepository(mt.DB, 0); repo.timeout != defaultTimeout {
			mt.Fatalf("expected default timeout, got %v", repo.timeout)
		}
	})
}
