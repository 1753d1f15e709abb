package functions_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio_backend/internal/app"
	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/functions"
	"portfolio_backend/internal/models"
	"portfolio_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher(t *testing.T) *functions.Dispatcher {
	t.Helper()
	a, err := app.New(helpers.TestConfig(t), app.WithMailer(&helpers.RecordingMailer{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a.Dispatcher()
}

func login(t *testing.T, d *functions.Dispatcher) string {
	t.Helper()
	res := d.Handle(context.Background(), &functions.Event{
		HTTPMethod: http.MethodPost,
		Path:       "/.netlify/functions/auth",
		Body:       `{"email":"` + helpers.AdminEmail + `","password":"` + helpers.AdminPassword + `"}`,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	setCookie := res.Headers["Set-Cookie"]
	require.Contains(t, setCookie, auth.CookieName+"=")
	return strings.SplitN(setCookie, ";", 2)[0]
}

func TestDispatcher_OptionsAndUnknown(t *testing.T) {
	d := newDispatcher(t)

	res := d.Handle(context.Background(), &functions.Event{HTTPMethod: http.MethodOptions, Path: "/.netlify/functions/skills"})
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Empty(t, res.Body)
	assert.Equal(t, "*", res.Headers["Access-Control-Allow-Origin"])

	res = d.Handle(context.Background(), &functions.Event{HTTPMethod: http.MethodGet, Path: "/.netlify/functions/api/unknown"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"error":"API not found","code":"NOT_FOUND"}`, res.Body)

	res = d.Handle(context.Background(), &functions.Event{HTTPMethod: http.MethodGet, Path: "/.netlify/functions/settings/other"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDispatcher_SkillsLifecycle(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	res := d.Handle(ctx, &functions.Event{
		HTTPMethod: http.MethodPost,
		Path:       "/.netlify/functions/skills",
		Body:       `{"name":"Go","level":150}`,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	cookie := login(t, d)
	headers := map[string]string{"cookie": cookie}

	res = d.Handle(ctx, &functions.Event{
		HTTPMethod: http.MethodPost,
		Path:       "/.netlify/functions/api/skills",
		Headers:    headers,
		Body:       `{"name":"Go","level":150}`,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = d.Handle(ctx, &functions.Event{
		HTTPMethod: http.MethodPost,
		Path:       "/.netlify/functions/skills",
		Headers:    headers,
		Body:       `{"name":"Go","level":90}`,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)
	assert.Equal(t, "application/json", res.Headers["Content-Type"])

	var skill models.Skill
	require.NoError(t, json.Unmarshal([]byte(res.Body), &skill))
	assert.Equal(t, 1, skill.ID)

	res = d.Handle(ctx, &functions.Event{
		HTTPMethod: http.MethodPut,
		Path:       "/.netlify/functions/skills",
		Headers:    headers,
		Body:       `{"id":1,"name":"Golang"}`,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, res.Body)
	assert.JSONEq(t, `{"id":1,"name":"Golang","level":90}`, res.Body)

	res = d.Handle(ctx, &functions.Event{
		HTTPMethod:            http.MethodDelete,
		Path:                  "/.netlify/functions/skills",
		Headers:               headers,
		QueryStringParameters: map[string]string{"id": "1"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = d.Handle(ctx, &functions.Event{
		HTTPMethod:            http.MethodGet,
		Path:                  "/.netlify/functions/skills",
		QueryStringParameters: map[string]string{"id": "1"},
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, res.Body, "Skill not found")
}

func TestDispatcher_AuthStatusAndLogout(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()
	cookie := login(t, d)

	res := d.Handle(ctx, &functions.Event{HTTPMethod: http.MethodGet, Path: "/.netlify/functions/auth", Headers: map[string]string{"cookie": cookie}})
	assert.JSONEq(t, `{"authenticated":true}`, res.Body)

	res = d.Handle(ctx, &functions.Event{HTTPMethod: http.MethodDelete, Path: "/.netlify/functions/auth"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Headers["Set-Cookie"], "Max-Age=0")

	res = d.Handle(ctx, &functions.Event{HTTPMethod: http.MethodPatch, Path: "/.netlify/functions/auth"})
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestDispatcher_ResumeMultipart(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()
	cookie := login(t, d)

	body, contentType := helpers.MultipartBody(t, map[string]string{"displayName": "CV"}, "cv.pdf", helpers.PDF(1024))
	res := d.Handle(ctx, &functions.Event{
		HTTPMethod: http.MethodPost,
		Path:       "/.netlify/functions/api/settings/resume",
		Headers:    map[string]string{"cookie": cookie, "content-type": contentType},
		Body:       body.String(),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, res.Body)

	var settings models.ResumeSettings
	require.NoError(t, json.Unmarshal([]byte(res.Body), &settings))
	assert.Equal(t, "CV", settings.DisplayName)
	assert.True(t, strings.HasPrefix(settings.Filename, "resume-"))
}

func TestFiberApp_TranslatesRequests(t *testing.T) {
	d := newDispatcher(t)
	fiberApp := functions.NewFiberApp(d, 16<<20)

	req := httptest.NewRequest(http.MethodGet, "/.netlify/functions/skills", nil)
	res, err := fiberApp.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/.netlify/functions/skills", nil)
	res, err = fiberApp.Test(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/.netlify/functions/auth", nil)
	req.Header.Add("Cookie", "admin_authenticated=true")
	req.Header.Add("Cookie", "theme=dark")
	res, err = fiberApp.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err = io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"authenticated":true}`, string(body))
}
