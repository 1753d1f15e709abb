package models

// Counter хранит последний выданный id для коллекции
type Counter struct {
	Name string `gorm:"primaryKey;type:varchar(64)"`
	Seq  int    `gorm:"not null;default:0"`
}

func (Counter) TableName() string {
	return "counters"
}

// AllModels - таблицы для AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&Counter{},
		&Skill{},
		&Project{},
		&Artwork{},
		&BlogPost{},
		&ResumeSettings{},
	}
}
