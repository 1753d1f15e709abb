package dto

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"portfolio_backend/internal/models"
)

// ID - идентификатор из тела запроса. Админка присылает его и числом, и строкой.
type ID int

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*id = 0
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("id must be a number: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("id must be a number: %w", err)
	}
	*id = ID(n)
	return nil
}

// ============================================
// SKILLS
// ============================================

type CreateSkillRequest struct {
	Name  string `json:"name" validate:"not-blank"`
	Level *int   `json:"level" validate:"required,min=0,max=100"`
}

func (r *CreateSkillRequest) ToModel() *models.Skill {
	skill := &models.Skill{Name: strings.TrimSpace(r.Name)}
	if r.Level != nil {
		skill.Level = *r.Level
	}
	return skill
}

type UpdateSkillRequest struct {
	ID    ID      `json:"id"`
	Name  *string `json:"name" validate:"omitempty,not-blank"`
	Level *int    `json:"level" validate:"omitempty,min=0,max=100"`
}

func (r *UpdateSkillRequest) TargetID() int { return int(r.ID) }

func (r *UpdateSkillRequest) Columns() map[string]interface{} {
	columns := map[string]interface{}{}
	if r.Name != nil {
		columns["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Level != nil {
		columns["level"] = *r.Level
	}
	return columns
}

// ============================================
// PROJECTS
// ============================================

type CreateProjectRequest struct {
	Title       string `json:"title" validate:"not-blank"`
	Description string `json:"description" validate:"not-blank"`
	URL         string `json:"url" validate:"not-blank"`
}

func (r *CreateProjectRequest) ToModel() *models.Project {
	return &models.Project{
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		URL:         strings.TrimSpace(r.URL),
	}
}

type UpdateProjectRequest struct {
	ID          ID      `json:"id"`
	Title       *string `json:"title" validate:"omitempty,not-blank"`
	Description *string `json:"description" validate:"omitempty,not-blank"`
	URL         *string `json:"url" validate:"omitempty,not-blank"`
}

func (r *UpdateProjectRequest) TargetID() int { return int(r.ID) }

func (r *UpdateProjectRequest) Columns() map[string]interface{} {
	columns := map[string]interface{}{}
	if r.Title != nil {
		columns["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		columns["description"] = *r.Description
	}
	if r.URL != nil {
		columns["url"] = strings.TrimSpace(*r.URL)
	}
	return columns
}

// ============================================
// BLOG POSTS
// ============================================

// CreateBlogPostRequest - дата проставляется сервером
type CreateBlogPostRequest struct {
	Title   string `json:"title" validate:"not-blank"`
	Excerpt string `json:"excerpt" validate:"not-blank"`
	Content string `json:"content" validate:"not-blank"`
}

func (r *CreateBlogPostRequest) ToModel() *models.BlogPost {
	return &models.BlogPost{
		Title:   strings.TrimSpace(r.Title),
		Excerpt: r.Excerpt,
		Content: r.Content,
	}
}

// UpdateBlogPostRequest - дата не меняется после создания
type UpdateBlogPostRequest struct {
	ID      ID      `json:"id"`
	Title   *string `json:"title" validate:"omitempty,not-blank"`
	Excerpt *string `json:"excerpt" validate:"omitempty,not-blank"`
	Content *string `json:"content" validate:"omitempty,not-blank"`
}

func (r *UpdateBlogPostRequest) TargetID() int { return int(r.ID) }

func (r *UpdateBlogPostRequest) Columns() map[string]interface{} {
	columns := map[string]interface{}{}
	if r.Title != nil {
		columns["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Excerpt != nil {
		columns["excerpt"] = *r.Excerpt
	}
	if r.Content != nil {
		columns["content"] = *r.Content
	}
	return columns
}

// ============================================
// ARTWORKS (multipart)
// ============================================

type CreateArtworkRequest struct {
	Title    string                `json:"title" form:"title" validate:"not-blank"`
	Category string                `json:"category" form:"category" validate:"not-blank,is-artwork-category"`
	File     *multipart.FileHeader `json:"-" form:"-"`
}

func (r *CreateArtworkRequest) ToModel() *models.Artwork {
	return &models.Artwork{
		Title:    strings.TrimSpace(r.Title),
		Category: models.ArtworkCategory(r.Category),
	}
}

type UpdateArtworkRequest struct {
	ID       ID                    `json:"id" form:"id"`
	Title    *string               `json:"title" form:"title" validate:"omitempty,not-blank"`
	Category *string               `json:"category" form:"category" validate:"omitempty,not-blank,is-artwork-category"`
	File     *multipart.FileHeader `json:"-" form:"-"`
}

func (r *UpdateArtworkRequest) TargetID() int { return int(r.ID) }

func (r *UpdateArtworkRequest) Columns() map[string]interface{} {
	columns := map[string]interface{}{}
	if r.Title != nil {
		columns["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Category != nil {
		columns["category"] = *r.Category
	}
	return columns
}

// ============================================
// COMMON RESPONSES
// ============================================

type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}
