package email

import (
	"context"
	"strings"

	"portfolio_backend/internal/logger"
)

// Provider определяет интерфейс для отправки email
type Provider interface {
	Send(ctx context.Context, email *Email) error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
}

// LogProvider используется, когда SMTP не настроен: письмо только логируется
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "email not sent (smtp disabled)",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
		"reply_to", email.ReplyTo,
	)
	return nil
}
