package auth

import "golang.org/x/crypto/bcrypt"

// Hasher — одностороннее хеширование паролей через bcrypt.
// Соль и cost встроены в итоговую строку хеша.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// Hash возвращает солёный bcrypt-хеш. Повторные вызовы на одном
// пароле дают разные строки.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify сравнивает пароль с хешем. Любая ошибка (в том числе
// некорректный формат хеша) трактуется как несовпадение.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
