package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eastlinkgh/connect/internal/domain"
)

// UserStorage реализует интерфейс ports.UserStore поверх MongoDB.
type UserStorage struct {
	col    *mongo.Collection
	logger *slog.Logger
}

func NewUserStorage(db *mongo.Database, logger *slog.Logger) *UserStorage {
	return &UserStorage{
		col:    db.Collection(domain.CollectionUser),
		logger: logger,
	}
}

// Insert сохраняет нового пользователя и возвращает его id.
func (s *UserStorage) Insert(ctx context.Context, user *domain.User) (string, error) {
	start := time.Now()

	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		s.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return "", fmt.Errorf("insert user: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	user.ID = id

	s.logger.Info("user created",
		"user_id", id.Hex(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return id.Hex(), nil
}

// GetByEmail ищет пользователя по email (точное совпадение, как хранится).
func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		s.logger.Error("failed to get user by email", "error", err)
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// GetByID ищет пользователя по строковому ObjectID.
// Некорректный id трактуется как "не найден".
func (s *UserStorage) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var user domain.User
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		s.logger.Error("failed to get user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &user, nil
}

// ReplaceFollows полностью заменяет список подписок пользователя
// и возвращает обновлённый документ.
func (s *UserStorage) ReplaceFollows(ctx context.Context, id string, towns []string) (*domain.User, error) {
	start := time.Now()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	if towns == nil {
		towns = []string{}
	}

	update := bson.M{"$set": bson.M{
		"follows":    towns,
		"updated_at": time.Now().UTC(),
	}}

	var user domain.User
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		s.logger.Error("failed to replace follows", "user_id", id, "error", err)
		return nil, fmt.Errorf("replace follows: %w", err)
	}

	s.logger.Info("follows replaced",
		"user_id", id,
		"count", len(towns),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &user, nil
}
