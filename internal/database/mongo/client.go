package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eastlinkgh/connect/internal/config"
)

// Client представляет клиент для взаимодействия с MongoDB.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient инициализирует подключение к MongoDB, проверяет его ping-ом
// и создаёт уникальный индекс по email пользователей.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DatabaseURL))
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия соединения с MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MongoDB: %w", err)
	}

	c := &Client{
		client: client,
		db:     client.Database(cfg.DatabaseName),
	}

	if err := c.ensureIndexes(connectCtx); err != nil {
		return nil, fmt.Errorf("ошибка при создании индексов: %w", err)
	}

	return c, nil
}

// ensureIndexes создаёт индексы, без которых приложение не должно работать.
// Уникальный индекс по email закрывает гонку "проверил-вставил" при
// одновременной регистрации.
func (c *Client) ensureIndexes(ctx context.Context) error {
	users := c.db.Collection("user")

	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Database возвращает дескриптор базы данных.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Collection возвращает коллекцию по имени.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// ListCollections возвращает имена коллекций (для /test диагностики).
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	return c.db.ListCollectionNames(ctx, bson.D{})
}

// Ping проверяет доступность базы.
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

// Close закрывает соединение.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
