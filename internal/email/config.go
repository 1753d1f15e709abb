package email

import (
	"time"

	"portfolio_backend/internal/config"
)

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// ConfigFrom собирает SMTPConfig из конфигурации приложения
func ConfigFrom(cfg *config.Config) *SMTPConfig {
	from := cfg.Email.FromEmail
	if from == "" {
		from = cfg.Email.SMTPUsername
	}

	return &SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: from,
		FromName:  cfg.Email.FromName,
		Timeout:   30 * time.Second,
	}
}
