package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleUser — роль по умолчанию для новых пользователей.
const RoleUser = "user"

// User представляет модель пользователя в системе.
// Соответствует коллекции 'user' в базе данных.
// Хеш пароля никогда не сериализуется наружу (json:"-").
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Avatar         string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Follows        []string           `bson:"follows" json:"follows"`
	Role           string             `bson:"role" json:"role"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
