package models

// ResumeSettingsKey - ключ единственной строки настроек резюме
const ResumeSettingsKey = "resume"

// ResumeSettings - singleton, создается с настройками по умолчанию при первом чтении
type ResumeSettings struct {
	Key         string `gorm:"column:setting_key;primaryKey;type:varchar(32)" json:"-"`
	Filename    string `json:"filename"`
	DisplayName string `gorm:"column:display_name" json:"displayName"`
	LastUpdated string `gorm:"column:last_updated;type:varchar(10)" json:"lastUpdated"`
	FileURL     string `gorm:"column:file_url" json:"fileUrl"`
}

func (ResumeSettings) TableName() string {
	return "settings"
}
