package models

// ArtworkCategory - категория работы в галерее
type ArtworkCategory string

const (
	CategoryCharcoal ArtworkCategory = "Charcoal"
	CategoryGraphite ArtworkCategory = "Graphite"
	CategoryPainting ArtworkCategory = "Painting"
	CategoryScribble ArtworkCategory = "Scribble"

	// CategoryAll используется только в запросах и означает "без фильтра"
	CategoryAll ArtworkCategory = "All"
)

var ArtworkCategories = []ArtworkCategory{
	CategoryCharcoal,
	CategoryGraphite,
	CategoryPainting,
	CategoryScribble,
}

func (c ArtworkCategory) IsValid() bool {
	for _, known := range ArtworkCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Artwork struct {
	Identity
	Title        string          `gorm:"not null" json:"title"`
	Filename     string          `json:"filename"`
	ImageURL     string          `gorm:"column:image_url" json:"imageUrl"`
	ThumbnailURL string          `gorm:"column:thumbnail_url" json:"thumbnailUrl,omitempty"`
	Category     ArtworkCategory `gorm:"type:varchar(32);not null;index" json:"category"`
	CreatedAt    string          `gorm:"column:created_at;type:varchar(10)" json:"createdAt"`
}

func (Artwork) TableName() string {
	return "artworks"
}
