package storage

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eastlinkgh/connect/internal/domain"
)

// DocumentStorage реализует интерфейс ports.DocumentStore поверх MongoDB.
// Один и тот же код обслуживает все пять сущностных коллекций.
type DocumentStorage struct {
	db     *mongo.Database
	logger *slog.Logger
}

func NewDocumentStorage(db *mongo.Database, logger *slog.Logger) *DocumentStorage {
	return &DocumentStorage{db: db, logger: logger}
}

// Insert вставляет запись в коллекцию, проставляя created_at/updated_at,
// и возвращает строковый id нового документа.
func (s *DocumentStorage) Insert(ctx context.Context, collection string, record any) (string, error) {
	start := time.Now()

	raw, err := bson.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal %s record: %w", collection, err)
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("unmarshal %s record: %w", collection, err)
	}

	now := time.Now().UTC()
	doc["created_at"] = now
	doc["updated_at"] = now

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		s.logger.Error("failed to insert document", "collection", collection, "error", err)
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}

	id := res.InsertedID.(primitive.ObjectID).Hex()
	s.logger.Info("document inserted",
		"collection", collection,
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return id, nil
}

// Find возвращает не более limit документов коллекции по фильтру.
// Порядок не гарантируется.
func (s *DocumentStorage) Find(ctx context.Context, collection string, filter domain.Filter, limit int64) ([]domain.Document, error) {
	start := time.Now()

	cursor, err := s.db.Collection(collection).Find(ctx, buildFilter(filter),
		options.Find().SetLimit(limit),
	)
	if err != nil {
		s.logger.Error("failed to query documents", "collection", collection, "error", err)
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	docs, err := decodeAll(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("decode %s documents: %w", collection, err)
	}

	s.logger.Info("documents queried",
		"collection", collection,
		"found", len(docs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return docs, nil
}

// LatestUpdates возвращает последние limit новостей, отсортированные по
// created_at по убыванию; towns пустой — фильтр по городам не применяется.
func (s *DocumentStorage) LatestUpdates(ctx context.Context, towns []string, limit int64) ([]domain.Document, error) {
	filter := bson.M{}
	if len(towns) > 0 {
		filter["town"] = bson.M{"$in": towns}
	}

	cursor, err := s.db.Collection(domain.CollectionUpdate).Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		s.logger.Error("failed to query stories", "error", err)
		return nil, fmt.Errorf("query stories: %w", err)
	}

	docs, err := decodeAll(ctx, cursor)
	if err != nil {
		return nil, fmt.Errorf("decode stories: %w", err)
	}
	return docs, nil
}

// IncrementTownActivity увеличивает счётчик опубликованных новостей города.
func (s *DocumentStorage) IncrementTownActivity(ctx context.Context, town string, at time.Time) error {
	_, err := s.db.Collection("town_activity").UpdateOne(ctx,
		bson.M{"town": town},
		bson.M{
			"$inc": bson.M{"updates_posted": 1},
			"$set": bson.M{"last_posted_at": at.UTC()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		s.logger.Error("failed to increment town activity", "town", town, "error", err)
		return fmt.Errorf("increment town activity: %w", err)
	}
	return nil
}

// buildFilter переводит domain.Filter в запрос MongoDB.
// Подстрочные совпадения — экранированный $regex с опцией "i":
// пользовательский ввод всегда трактуется как литерал, не как regex.
func buildFilter(f domain.Filter) bson.M {
	query := bson.M{}

	for field, value := range f.Equals {
		query[field] = value
	}

	for field, term := range f.Contains {
		query[field] = containsRegex(term)
	}

	if f.Search.Term != "" && len(f.Search.Fields) > 0 {
		or := make(bson.A, 0, len(f.Search.Fields))
		for _, field := range f.Search.Fields {
			or = append(or, bson.M{field: containsRegex(f.Search.Term)})
		}
		query["$or"] = or
	}

	return query
}

func containsRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// decodeAll вычитывает курсор и приводит _id к строковому полю id,
// как того ожидают клиенты API.
func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]domain.Document, error) {
	defer cursor.Close(ctx)

	docs := []domain.Document{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, serializeDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func serializeDoc(doc bson.M) domain.Document {
	out := domain.Document(doc)
	if oid, ok := out["_id"].(primitive.ObjectID); ok {
		out["id"] = oid.Hex()
		delete(out, "_id")
	}
	return out
}
