package models

type Skill struct {
	Identity
	Name  string `gorm:"not null" json:"name"`
	Level int    `gorm:"not null;default:0" json:"level"`
}

func (Skill) TableName() string {
	return "skills"
}
