package models

type Project struct {
	Identity
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	URL         string `gorm:"column:url;not null" json:"url"`
}

func (Project) TableName() string {
	return "projects"
}
