package services

import (
	"context"
	"fmt"

	"portfolio_backend/internal/email"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"
)

// ContactService пересылает сообщения из формы обратной связи админу
type ContactService interface {
	Send(ctx context.Context, req *dto.ContactRequest) error
}

type contactService struct {
	provider  email.Provider
	renderer  email.TemplateRenderer
	validator *validator.Validator
	to        string
}

func NewContactService(provider email.Provider, renderer email.TemplateRenderer, v *validator.Validator, to string) ContactService {
	return &contactService{
		provider:  provider,
		renderer:  renderer,
		validator: v,
		to:        to,
	}
}

func (s *contactService) Send(ctx context.Context, req *dto.ContactRequest) error {
	if err := s.validator.Validate(req); err != nil {
		if verr, ok := err.(*validator.ValidationError); ok {
			msg := verr.Error()
			if verr.Missing() {
				msg = "Name, email, and message are required"
			}
			return apperrors.ValidationError(msg, verr.Errors)
		}
		return apperrors.InternalError(err)
	}

	html, err := s.renderer.Render(email.TemplateContact, email.TemplateData{
		"Name":    req.Name,
		"Email":   req.Email,
		"Message": req.Message,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	msg := &email.Email{
		To:       []string{s.to},
		ReplyTo:  req.Email,
		Subject:  fmt.Sprintf("Portfolio contact from %s", req.Name),
		Body:     req.Message,
		HTMLBody: html,
	}

	if err := s.provider.Send(ctx, msg); err != nil {
		return apperrors.UpstreamError("email", err)
	}

	logger.CtxInfo(ctx, "contact message sent", "from", req.Email)
	return nil
}
