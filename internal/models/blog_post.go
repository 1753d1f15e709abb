package models

type BlogPost struct {
	Identity
	Title   string `gorm:"not null" json:"title"`
	Date    string `gorm:"type:varchar(10)" json:"date"`
	Excerpt string `gorm:"type:text;not null" json:"excerpt"`
	Content string `gorm:"type:text;not null" json:"content"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}
