package payloads

// UpdatePostedPayload представляет событие публикации новости сообщества,
// передаваемое через RabbitMQ воркеру.
type UpdatePostedPayload struct {
	UpdateID string `json:"update_id"`
	Title    string `json:"title"`
	Town     string `json:"town,omitempty"`
	Category string `json:"category,omitempty"`
}
