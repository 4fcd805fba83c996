package domain

// Имена коллекций MongoDB. Имя коллекции — lowercase имени модели.
const (
	CollectionUser       = "user"
	CollectionBusiness   = "business"
	CollectionProduct    = "product"
	CollectionAttraction = "attraction"
	CollectionReview     = "review"
	CollectionUpdate     = "update"
)

// Collections перечисляет все коллекции для /schema и диагностики.
func Collections() []string {
	return []string{
		CollectionBusiness,
		CollectionProduct,
		CollectionAttraction,
		CollectionReview,
		CollectionUpdate,
		CollectionUser,
	}
}

// Review target types — закрытое множество.
const (
	TargetBusiness   = "business"
	TargetProduct    = "product"
	TargetAttraction = "attraction"
)

// Business — бизнес Восточного региона.
type Business struct {
	Name        string   `bson:"name" json:"name" validate:"required"`
	Owner       string   `bson:"owner,omitempty" json:"owner,omitempty"`
	Category    string   `bson:"category" json:"category" validate:"required"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Phone       string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Email       string   `bson:"email,omitempty" json:"email,omitempty"`
	Website     string   `bson:"website,omitempty" json:"website,omitempty"`
	Address     string   `bson:"address,omitempty" json:"address,omitempty"`
	Town        string   `bson:"town,omitempty" json:"town,omitempty"`
	Region      string   `bson:"region" json:"region"`
	Latitude    *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Images      []string `bson:"images" json:"images"`
	Rating      *float64 `bson:"rating,omitempty" json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// Product — товар, опционально привязанный к бизнесу.
// BusinessID — строковый id бизнеса; ссылочная целостность не проверяется.
type Product struct {
	BusinessID  string   `bson:"business_id,omitempty" json:"business_id,omitempty"`
	Title       string   `bson:"title" json:"title" validate:"required"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Price       *float64 `bson:"price,omitempty" json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency    string   `bson:"currency" json:"currency"`
	Category    string   `bson:"category,omitempty" json:"category,omitempty"`
	Images      []string `bson:"images" json:"images"`
	Available   *bool    `bson:"available" json:"available"`
}

// Attraction — достопримечательность.
type Attraction struct {
	Name        string   `bson:"name" json:"name" validate:"required"`
	Town        string   `bson:"town,omitempty" json:"town,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Latitude    *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Images      []string `bson:"images" json:"images"`
	Tags        []string `bson:"tags" json:"tags"`
}

// Review — отзыв на бизнес, товар или достопримечательность.
// Существование цели не проверяется.
type Review struct {
	TargetType string `bson:"target_type" json:"target_type" validate:"required,oneof=business product attraction"`
	TargetID   string `bson:"target_id" json:"target_id" validate:"required"`
	AuthorName string `bson:"author_name,omitempty" json:"author_name,omitempty"`
	Rating     int    `bson:"rating" json:"rating" validate:"gte=1,lte=5"`
	Comment    string `bson:"comment,omitempty" json:"comment,omitempty"`
}

// Update — новость/объявление сообщества.
type Update struct {
	Title    string   `bson:"title" json:"title" validate:"required"`
	Content  string   `bson:"content" json:"content" validate:"required"`
	Category string   `bson:"category,omitempty" json:"category,omitempty"`
	Town     string   `bson:"town,omitempty" json:"town,omitempty"`
	Images   []string `bson:"images" json:"images"`
}

// ApplyDefaults заполняет значения по умолчанию из схемы.
func (b *Business) ApplyDefaults() {
	if b.Region == "" {
		b.Region = "Eastern Region"
	}
	if b.Images == nil {
		b.Images = []string{}
	}
}

func (p *Product) ApplyDefaults() {
	if p.Currency == "" {
		p.Currency = "GHS"
	}
	if p.Available == nil {
		available := true
		p.Available = &available
	}
	if p.Images == nil {
		p.Images = []string{}
	}
}

func (a *Attraction) ApplyDefaults() {
	if a.Images == nil {
		a.Images = []string{}
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
}

func (u *Update) ApplyDefaults() {
	if u.Images == nil {
		u.Images = []string{}
	}
}

// Document — сериализованный документ коллекции, отдаётся клиенту как есть
// ('_id' уже преобразован в строковый 'id').
type Document = map[string]any
