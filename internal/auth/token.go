package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается на любую причину отказа: битый токен,
// неверная подпись, истёкший срок, отсутствующий subject. Вызывающий
// код не должен различать причины для конечного пользователя.
var ErrInvalidToken = errors.New("invalid token")

// TokenTTL — фиксированный срок жизни access-токена.
const TokenTTL = 7 * 24 * time.Hour

// TokenIssuer выпускает и проверяет подписанные bearer-токены (HS256).
// Токены самодостаточны: валидность определяется только подписью и
// сроком, без серверного списка отзыва.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    TokenTTL,
	}
}

// Issue создаёт токен с subject и абсолютным сроком now + 7 дней.
func (t *TokenIssuer) Issue(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify проверяет подпись и срок действия и возвращает subject.
func (t *TokenIssuer) Verify(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
