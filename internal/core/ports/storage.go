package ports

import (
	"context"
	"io"
	"time"

	"github.com/eastlinkgh/connect/internal/domain"
)

// UserStore определяет методы для взаимодействия с хранилищем пользователей.
// Отсутствие пользователя — не ошибка: возвращается (nil, nil).
type UserStore interface {
	Insert(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// ReplaceFollows полностью заменяет список подписок (не merge)
	// и возвращает обновлённого пользователя.
	ReplaceFollows(ctx context.Context, id string, towns []string) (*domain.User, error)
}

// DocumentStore — общий шлюз документов для всех пяти сущностей.
type DocumentStore interface {
	// Insert вставляет провалидированную запись и возвращает новый id.
	Insert(ctx context.Context, collection string, record any) (string, error)
	// Find возвращает не более limit документов по фильтру;
	// порядок не гарантируется.
	Find(ctx context.Context, collection string, filter domain.Filter, limit int64) ([]domain.Document, error)
	// LatestUpdates — лента stories: новости, отсортированные по
	// created_at по убыванию, опционально по списку городов.
	LatestUpdates(ctx context.Context, towns []string, limit int64) ([]domain.Document, error)
	// IncrementTownActivity увеличивает счётчик активности города
	// (используется воркером).
	IncrementTownActivity(ctx context.Context, town string, at time.Time) error
}

// FileStorage определяет методы для взаимодействия с хранилищем медиафайлов.
type FileStorage interface {
	UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error)
}
