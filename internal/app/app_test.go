package app_test

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/storage"
	"portfolio_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v), body)
	return v
}

func TestSkills_UnauthenticatedCreateIs401AndLeavesStateUnchanged(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/skills", nil, map[string]interface{}{
		"name": "Go", "level": 150,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Unauthorized", decode[map[string]interface{}](t, body)["error"])

	res, body = ts.SendRequest(t, http.MethodGet, "/api/skills", nil, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `[]`, body)
}

func TestMutations_AnonymousIs401EvenWhenDatabaseIsDown(t *testing.T) {
	cfg := helpers.TestConfig(t)
	cfg.Database.URL = filepath.Join(t.TempDir(), "missing", "dir", "test.db")
	ts := helpers.NewTestServerWithConfig(t, cfg)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/skills"},
		{http.MethodPut, "/api/projects"},
		{http.MethodDelete, "/api/blogs?id=1"},
		{http.MethodPost, "/api/artworks"},
		{http.MethodDelete, "/api/settings/resume"},
	}
	for _, tc := range cases {
		res, body := ts.SendRequest(t, tc.method, tc.path, nil, map[string]interface{}{
			"name": "Go", "level": 150,
		})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "%s %s: %s", tc.method, tc.path, body)
		assert.Equal(t, "UNAUTHORIZED", decode[map[string]interface{}](t, body)["code"])
	}

	res, body := ts.SendRequest(t, http.MethodGet, "/api/skills", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Internal server error", decode[map[string]interface{}](t, body)["error"])
}

func TestSkills_LevelBounds(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)

	for _, level := range []int{-1, 101, 150} {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/skills", cookie, map[string]interface{}{
			"name": "Go", "level": level,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	}

	for _, level := range []int{0, 100} {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/skills", cookie, map[string]interface{}{
			"name": "Go", "level": level,
		})
		assert.Equal(t, http.StatusCreated, res.StatusCode, body)
	}

	res, body := ts.SendRequest(t, http.MethodPost, "/api/skills", cookie, map[string]interface{}{"name": "Go"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Name and level are required", decode[map[string]interface{}](t, body)["error"])
}

func TestSkills_SequentialIDsAndRoundTrip(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)

	for i, name := range []string{"Go", "SQL", "Docker"} {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/skills", cookie, map[string]interface{}{
			"name": name, "level": 80,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
		assert.Equal(t, i+1, decode[models.Skill](t, body).ID)
	}

	res, body := ts.SendRequest(t, http.MethodGet, "/api/skills?id=2", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	skill := decode[models.Skill](t, body)
	assert.Equal(t, "SQL", skill.Name)
	assert.Equal(t, 80, skill.Level)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/skills", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	skills := decode[[]models.Skill](t, body)
	require.Len(t, skills, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{skills[0].ID, skills[1].ID, skills[2].ID})

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/skills?id=abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSkills_PartialUpdateKeepsOtherFields(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/skills", cookie, map[string]interface{}{
		"name": "Go", "level": 70,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	// id строкой, как присылает форма админки
	res, body = ts.SendRequest(t, http.MethodPut, "/api/skills", cookie, map[string]interface{}{
		"id": "1", "level": 95,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	skill := decode[models.Skill](t, body)
	assert.Equal(t, "Go", skill.Name)
	assert.Equal(t, 95, skill.Level)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/skills", cookie, map[string]interface{}{
		"id": 42, "level": 10,
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestSkills_DeleteThenGetIs404(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/skills", cookie, map[string]interface{}{
		"name": "Go", "level": 70,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/skills?id=1", cookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"success":true}`, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/skills?id=1", nil, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Skill not found", decode[map[string]interface{}](t, body)["error"])

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/skills?id=1", cookie, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/skills", cookie, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestProjects_FirstCreateGetsID1(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/projects", cookie, map[string]interface{}{
		"title": "Site", "description": "Portfolio", "url": "https://example.com",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	project := decode[models.Project](t, body)
	assert.Equal(t, 1, project.ID)
	assert.Equal(t, "https://example.com", project.URL)

	res, body = ts.SendRequest(t, http.MethodPost, "/api/projects", cookie, map[string]interface{}{
		"title": "Site",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Title, description, and URL are required", decode[map[string]interface{}](t, body)["error"])
}

func TestBlogs_DateIsSetByServer(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/blogs", cookie, map[string]interface{}{
		"title": "Hello", "excerpt": "First", "content": "Body", "date": "1999-01-01",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	post := decode[models.BlogPost](t, body)
	assert.Equal(t, models.Today(), post.Date)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/blogs?id=1", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Body", decode[models.BlogPost](t, body).Content)
}

func TestResume_OversizedPDFRejectedAndSettingsUnchanged(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/settings/resume", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	before := decode[models.ResumeSettings](t, body)
	assert.Equal(t, "resume.pdf", before.Filename)

	res, body = ts.SendMultipart(t, http.MethodPost, "/api/settings/resume", cookie,
		map[string]string{"displayName": "CV"}, "cv.pdf", helpers.PDF(6<<20))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "File is too large (max 5 MB)", decode[map[string]interface{}](t, body)["error"])

	res, body = ts.SendRequest(t, http.MethodGet, "/api/settings/resume", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, before, decode[models.ResumeSettings](t, body))
}

func TestResume_UploadReplacesPreviousFile(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)
	local := ts.App.Storage.(*storage.LocalStorage)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/settings/resume", cookie, nil, "cv.pdf", helpers.PDF(2048))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	first := decode[models.ResumeSettings](t, body)
	assert.Equal(t, "Resume", first.DisplayName)
	assert.True(t, strings.HasPrefix(first.FileURL, "/uploads/portfolio-resume/resume-"), first.FileURL)
	assert.FileExists(t, filepath.Join(local.Root(), "portfolio-resume", first.Filename))

	res, body = ts.SendMultipart(t, http.MethodPost, "/api/settings/resume", cookie,
		map[string]string{"displayName": "CV 2024"}, "cv.pdf", helpers.PDF(4096))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	second := decode[models.ResumeSettings](t, body)
	assert.Equal(t, "CV 2024", second.DisplayName)
	assert.NotEqual(t, first.Filename, second.Filename)
	assert.NoFileExists(t, filepath.Join(local.Root(), "portfolio-resume", first.Filename))

	// файл раздается статикой
	res, _ = ts.SendRequest(t, http.MethodGet, second.FileURL, nil, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body = ts.SendMultipart(t, http.MethodPost, "/api/settings/resume", cookie, nil, "cv.docx", []byte("nope"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Only PDF files are allowed", decode[map[string]interface{}](t, body)["error"])

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/settings/resume", cookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, "resume.pdf", decode[models.ResumeSettings](t, body).Filename)
	assert.NoFileExists(t, filepath.Join(local.Root(), "portfolio-resume", second.Filename))
}

func TestArtworks_CreateFilterAndDelete(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)
	local := ts.App.Storage.(*storage.LocalStorage)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/artworks", cookie,
		map[string]string{"title": "Portrait", "category": "Charcoal"}, "portrait.png", helpers.PNG(t, 800, 600))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	artwork := decode[models.Artwork](t, body)
	assert.Equal(t, 1, artwork.ID)
	assert.Equal(t, models.CategoryCharcoal, artwork.Category)
	assert.NotEmpty(t, artwork.ThumbnailURL)
	assert.Equal(t, models.Today(), artwork.CreatedAt)

	imagePath := filepath.Join(local.Root(), "portfolio-artworks", artwork.Filename)
	assert.FileExists(t, imagePath)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/artworks?category=Charcoal", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decode[[]models.Artwork](t, body), 1)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/artworks?category=Painting", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decode[[]models.Artwork](t, body), 0)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/artworks?category=All", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, decode[[]models.Artwork](t, body), 1)

	// неизвестный id: 404 и никакого удаления файлов
	res, body = ts.SendRequest(t, http.MethodDelete, "/api/artworks?id=7", cookie, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Artwork not found", decode[map[string]interface{}](t, body)["error"])
	assert.FileExists(t, imagePath)

	res, _ = ts.SendRequest(t, http.MethodDelete, "/api/artworks?id=1", cookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NoFileExists(t, imagePath)
}

func TestArtworks_Validation(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/artworks", cookie,
		map[string]string{"title": "Portrait", "category": "Charcoal"}, "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Title, category, and file are required", decode[map[string]interface{}](t, body)["error"])

	res, _ = ts.SendMultipart(t, http.MethodPost, "/api/artworks", cookie,
		map[string]string{"title": "Portrait", "category": "watercolor"}, "p.png", helpers.PNG(t, 10, 10))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = ts.SendMultipart(t, http.MethodPost, "/api/artworks", cookie,
		map[string]string{"title": "Portrait", "category": "Charcoal"}, "p.pdf", helpers.PDF(100))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, decode[map[string]interface{}](t, body)["error"], "Only image files")
}

func TestArtworks_UpdateWithNewFileRemovesOldOne(t *testing.T) {
	ts := helpers.NewTestServer(t)
	cookie := ts.Login(t)
	local := ts.App.Storage.(*storage.LocalStorage)

	res, body := ts.SendMultipart(t, http.MethodPost, "/api/artworks", cookie,
		map[string]string{"title": "Sketch", "category": "Scribble"}, "s.png", helpers.PNG(t, 20, 20))
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	original := decode[models.Artwork](t, body)

	res, body = ts.SendMultipart(t, http.MethodPut, "/api/artworks", cookie,
		map[string]string{"id": "1", "category": "Graphite"}, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	updated := decode[models.Artwork](t, body)
	assert.Equal(t, "Sketch", updated.Title)
	assert.Equal(t, models.CategoryGraphite, updated.Category)
	assert.Equal(t, original.ImageURL, updated.ImageURL)

	res, body = ts.SendMultipart(t, http.MethodPut, "/api/artworks", cookie,
		map[string]string{"id": "1"}, "s2.png", helpers.PNG(t, 30, 30))
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	replaced := decode[models.Artwork](t, body)
	assert.NotEqual(t, original.Filename, replaced.Filename)
	assert.NoFileExists(t, filepath.Join(local.Root(), "portfolio-artworks", original.Filename))
	assert.FileExists(t, filepath.Join(local.Root(), "portfolio-artworks", replaced.Filename))
}

func TestAuth_Cookies(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth", nil, map[string]string{
		"email": helpers.AdminEmail, "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Invalid credentials", decode[map[string]interface{}](t, body)["error"])
	assert.Empty(t, res.Cookies())

	cookie := ts.Login(t)
	assert.Equal(t, "true", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, auth.SessionMaxAge, cookie.MaxAge)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/auth", cookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"authenticated":true}`, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/auth", nil, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"authenticated":false}`, body)

	res, body = ts.SendRequest(t, http.MethodDelete, "/api/auth", cookie, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"success":true}`, body)
	require.Len(t, res.Cookies(), 1)
	cleared := res.Cookies()[0]
	assert.Equal(t, auth.CookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
	assert.Contains(t, res.Header.Get("Set-Cookie"), "Max-Age=0")
}

func TestCORS(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodOptions, "/api/skills", nil, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Empty(t, body)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", res.Header.Get("Access-Control-Allow-Methods"))

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/skills", nil, nil)
	assert.Equal(t, "Content-Type", res.Header.Get("Access-Control-Allow-Headers"))
}

func TestContact(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/contact", nil, map[string]string{
		"name": "Jane", "email": "jane@example.com", "message": "Hello there",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	sent := ts.Mailer.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{helpers.AdminEmail}, sent[0].To)
	assert.Equal(t, "jane@example.com", sent[0].ReplyTo)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/contact", nil, map[string]string{
		"name": "Jane", "email": "not-an-email", "message": "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Len(t, ts.Mailer.Messages(), 1)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	ts.SendRequest(t, http.MethodGet, "/api/skills", nil, nil)
	res, body = ts.SendRequest(t, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "portfolio_http_requests_total")
}
