package functions

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

// inputs создает пустые DTO для разбора тела
type inputs[T any] struct {
	create func() services.CreateInput[T]
	update func() services.UpdateInput
}

var (
	newSkillInputs = inputs[models.Skill]{
		create: func() services.CreateInput[models.Skill] { return &dto.CreateSkillRequest{} },
		update: func() services.UpdateInput { return &dto.UpdateSkillRequest{} },
	}
	newProjectInputs = inputs[models.Project]{
		create: func() services.CreateInput[models.Project] { return &dto.CreateProjectRequest{} },
		update: func() services.UpdateInput { return &dto.UpdateProjectRequest{} },
	}
	newBlogPostInputs = inputs[models.BlogPost]{
		create: func() services.CreateInput[models.BlogPost] { return &dto.CreateBlogPostRequest{} },
		update: func() services.UpdateInput { return &dto.UpdateBlogPostRequest{} },
	}
)

func resourceFunction[T any, P repositories.Record[T]](d *Dispatcher, svc services.ResourceService[T, P], in inputs[T]) handlerFunc {
	label := svc.Definition().Label

	return func(ctx context.Context, ev *Event, _ []string) (*response, error) {
		if ev.HTTPMethod != http.MethodGet {
			if err := d.requireAdmin(ctx, ev); err != nil {
				return nil, err
			}
		}

		switch ev.HTTPMethod {
		case http.MethodGet:
			id, present, err := ev.QueryID(label)
			if err != nil {
				return nil, err
			}
			db, err := d.conn(ctx)
			if err != nil {
				return nil, err
			}
			if present {
				item, err := svc.Get(ctx, db, id)
				if err != nil {
					return nil, err
				}
				return reply(http.StatusOK, item), nil
			}
			items, err := svc.List(ctx, db)
			if err != nil {
				return nil, err
			}
			return reply(http.StatusOK, items), nil

		case http.MethodPost:
			input := in.create()
			if err := ev.DecodeJSON(input); err != nil {
				return nil, err
			}
			db, err := d.conn(ctx)
			if err != nil {
				return nil, err
			}
			item, err := svc.Create(ctx, db, input)
			if err != nil {
				return nil, err
			}
			return reply(http.StatusCreated, item), nil

		case http.MethodPut:
			input := in.update()
			if err := ev.DecodeJSON(input); err != nil {
				return nil, err
			}
			db, err := d.conn(ctx)
			if err != nil {
				return nil, err
			}
			item, err := svc.Update(ctx, db, input)
			if err != nil {
				return nil, err
			}
			return reply(http.StatusOK, item), nil

		case http.MethodDelete:
			id, err := ev.RequireQueryID(label)
			if err != nil {
				return nil, err
			}
			db, err := d.conn(ctx)
			if err != nil {
				return nil, err
			}
			if err := svc.Delete(ctx, db, id); err != nil {
				return nil, err
			}
			return reply(http.StatusOK, dto.SuccessResponse{Success: true}), nil
		}

		return nil, apperrors.ErrMethodNotAllowed
	}
}

func (d *Dispatcher) artworks(ctx context.Context, ev *Event, _ []string) (*response, error) {
	svc := d.services.Artworks

	if ev.HTTPMethod != http.MethodGet {
		if err := d.requireAdmin(ctx, ev); err != nil {
			return nil, err
		}
	}

	switch ev.HTTPMethod {
	case http.MethodGet:
		id, present, err := ev.QueryID("Artwork")
		if err != nil {
			return nil, err
		}
		db, err := d.conn(ctx)
		if err != nil {
			return nil, err
		}
		if present {
			artwork, err := svc.Get(ctx, db, id)
			if err != nil {
				return nil, err
			}
			return reply(http.StatusOK, artwork), nil
		}
		artworks, err := svc.ListByCategory(ctx, db, ev.Query("category"))
		if err != nil {
			return nil, err
		}
		return reply(http.StatusOK, artworks), nil

	case http.MethodPost:
		form, err := ev.MultipartForm()
		if err != nil {
			return nil, err
		}
		defer form.RemoveAll()

		req := &dto.CreateArtworkRequest{File: formFile(form)}
		if v := formValue(form, "title"); v != nil {
			req.Title = *v
		}
		if v := formValue(form, "category"); v != nil {
			req.Category = *v
		}

		db, err := d.conn(ctx)
		if err != nil {
			return nil, err
		}
		artwork, err := svc.Create(ctx, db, req)
		if err != nil {
			return nil, err
		}
		return reply(http.StatusCreated, artwork), nil

	case http.MethodPut:
		form, err := ev.MultipartForm()
		if err != nil {
			return nil, err
		}
		defer form.RemoveAll()

		req := &dto.UpdateArtworkRequest{
			Title:    formValue(form, "title"),
			Category: formValue(form, "category"),
			File:     formFile(form),
		}
		if v := formValue(form, "id"); v != nil && strings.TrimSpace(*v) != "" {
			id, err := strconv.Atoi(strings.TrimSpace(*v))
			if err != nil {
				return nil, apperrors.NewBadRequestError("Invalid artwork ID")
			}
			req.ID = dto.ID(id)
		}

		db, err := d.conn(ctx)
		if err != nil {
			return nil, err
		}
		artwork, err := svc.Update(ctx, db, req)
		if err != nil {
			return nil, err
		}
		return reply(http.StatusOK, artwork), nil

	case http.MethodDelete:
		id, err := ev.RequireQueryID("Artwork")
		if err != nil {
			return nil, err
		}
		db, err := d.conn(ctx)
		if err != nil {
			return nil, err
		}
		if err := svc.Delete(ctx, db, id); err != nil {
			return nil, err
		}
		return reply(http.StatusOK, dto.SuccessResponse{Success: true}), nil
	}

	return nil, apperrors.ErrMethodNotAllowed
}

// settings обслуживает только settings/resume
func (d *Dispatcher) settings(ctx context.Context, ev *Event, rest []string) (*response, error) {
	if len(rest) == 0 || rest[0] != "resume" {
		return nil, apperrors.ErrAPINotFound
	}
	svc := d.services.Resume

	if ev.HTTPMethod != http.MethodGet {
		if err := d.requireAdmin(ctx, ev); err != nil {
			return nil, err
		}
	}

	switch ev.HTTPMethod {
	case http.MethodGet:
		db, err := d.conn(ctx)
		if err != nil {
			return nil, err
		}
		settings, err := svc.Get(ctx, db)
		if err != nil {
			return nil, err
		}
		return reply(http.StatusOK, settings), nil

	case http.MethodPost:
		form, err := ev.MultipartForm()
		if err != nil {
			return nil, err
		}
		defer form.RemoveAll()

		req := &dto.UploadResumeRequest{File: formFile(form)}
		if v := formValue(form, "displayName"); v != nil {
			req.DisplayName = *v
		}

		db, err := d.conn(ctx)
		if err != nil {
			return nil, err
		}
		settings, err := svc.Upload(ctx, db, req)
		if err != nil {
			return nil, err
		}
		return reply(http.StatusCreated, settings), nil

	case http.MethodDelete:
		db, err := d.conn(ctx)
		if err != nil {
			return nil, err
		}
		settings, err := svc.Reset(ctx, db)
		if err != nil {
			return nil, err
		}
		return reply(http.StatusOK, settings), nil
	}

	return nil, apperrors.ErrMethodNotAllowed
}

func (d *Dispatcher) auth(ctx context.Context, ev *Event, _ []string) (*response, error) {
	switch ev.HTTPMethod {
	case http.MethodPost:
		var req dto.LoginRequest
		if err := ev.DecodeJSON(&req); err != nil {
			return nil, err
		}
		cookie, err := d.gate.Login(req.Email, req.Password)
		if err != nil {
			return nil, err
		}
		resp := reply(http.StatusOK, dto.SuccessResponse{Success: true})
		resp.cookie = cookie
		return resp, nil

	case http.MethodGet:
		return reply(http.StatusOK, dto.AuthStatusResponse{
			Authenticated: d.gate.IsAuthenticated(ev.Cookie),
		}), nil

	case http.MethodDelete:
		resp := reply(http.StatusOK, dto.SuccessResponse{Success: true})
		resp.cookie = d.gate.Logout()
		return resp, nil
	}

	return nil, apperrors.ErrMethodNotAllowed
}

func (d *Dispatcher) contact(ctx context.Context, ev *Event, _ []string) (*response, error) {
	if ev.HTTPMethod != http.MethodPost {
		return nil, apperrors.ErrMethodNotAllowed
	}

	var req dto.ContactRequest
	if err := ev.DecodeJSON(&req); err != nil {
		return nil, err
	}
	if err := d.services.Contact.Send(ctx, &req); err != nil {
		return nil, err
	}
	return reply(http.StatusOK, dto.SuccessResponse{Success: true}), nil
}
