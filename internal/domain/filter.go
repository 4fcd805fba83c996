package domain

// Filter — конъюнкция условий для выборки документов.
// Все группы объединяются через AND; пустые группы игнорируются.
type Filter struct {
	// Equals — точное совпадение поля.
	Equals map[string]string
	// Contains — регистронезависимое вхождение подстроки в поле.
	Contains map[string]string
	// Search — "поисковая строка": совпадение хотя бы по одному
	// из перечисленных полей (регистронезависимая подстрока).
	Search SearchGroup
}

// SearchGroup описывает any-of группу поиска по фиксированному
// набору полей сущности.
type SearchGroup struct {
	Term   string
	Fields []string
}
