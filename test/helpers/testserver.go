package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio_backend/internal/app"
	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.Application
	Mailer *RecordingMailer
}

// NewTestServer поднимает полный роутер поверх sqlite и локального хранилища
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, TestConfig(t))
}

// NewTestServerWithConfig - то же, но с заранее подправленной конфигурацией
func NewTestServerWithConfig(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mailer := &RecordingMailer{}
	application, err := app.New(cfg, app.WithMailer(mailer))
	require.NoError(t, err)

	ts := &TestServer{
		Server: httptest.NewServer(application.Router()),
		App:    application,
		Mailer: mailer,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	_ = ts.App.Close()
}

// DB - общий handle приложения
func (ts *TestServer) DB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := ts.App.Connector.DB(context.Background())
	require.NoError(t, err)
	return db
}

// ClearTables очищает все таблицы, включая счетчики id.
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()
	db := ts.DB(t)
	for _, m := range models.AllModels() {
		require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error)
	}
}

// Login входит под админом и возвращает cookie сессии
func (ts *TestServer) Login(t *testing.T) *http.Cookie {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/auth", nil, map[string]string{
		"email":    AdminEmail,
		"password": AdminPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	for _, c := range res.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatalf("Ответ логина без cookie %s", auth.CookieName)
	return nil
}

func (ts *TestServer) SendRequest(t *testing.T, method, path string, cookie *http.Cookie, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, req, cookie)
}

// SendMultipart отправляет форму; filename == "" - без файла
func (ts *TestServer) SendMultipart(t *testing.T, method, path string, cookie *http.Cookie, fields map[string]string, filename string, data []byte) (*http.Response, string) {
	t.Helper()

	body, contentType := MultipartBody(t, fields, filename, data)
	req, err := http.NewRequest(method, ts.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	return ts.do(t, req, cookie)
}

func (ts *TestServer) do(t *testing.T, req *http.Request, cookie *http.Cookie) (*http.Response, string) {
	t.Helper()

	if cookie != nil {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")
	return res, string(resBody)
}
