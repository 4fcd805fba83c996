package usecase

import "errors"

// Ошибки уровня бизнес-логики. Тексты совпадают с ответами API:
// handler отдаёт их в поле detail без переформулировки.
var (
	ErrEmailTaken     = errors.New("Email already registered")
	ErrBadCredentials = errors.New("Incorrect email or password")
	// ErrUnauthorized — единый ответ на любую проблему с токеном или
	// пропавшего пользователя; причина не раскрывается.
	ErrUnauthorized = errors.New("Could not validate credentials")
)

// ValidationError — ошибка валидации входной записи, маппится в 400.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// IsValidation сообщает, является ли ошибка ошибкой валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
