package helpers

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"portfolio_backend/internal/config"
	"portfolio_backend/internal/database"
	"portfolio_backend/internal/email"
	"portfolio_backend/internal/storage"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "secret-password"
)

// TestConfig - sqlite и локальное хранилище во временном каталоге теста
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database = config.Database{
		Driver:       "sqlite",
		URL:          filepath.Join(dir, "test.db"),
		Name:         "portfolio_test",
		MaxOpenConns: 1,
	}
	cfg.Auth.AdminEmail = AdminEmail
	cfg.Auth.AdminPassword = AdminPassword
	cfg.Storage = config.Storage{
		Type:     "local",
		BasePath: filepath.Join(dir, "uploads"),
		BaseURL:  "/uploads",
	}
	return cfg
}

// NewTestDB открывает sqlite с примененными миграциями
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn := database.NewConnector(TestConfig(t).Database)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := conn.DB(context.Background())
	require.NoError(t, err, "Не удалось открыть тестовую БД")
	return db
}

// NewTestStorage - LocalStorage в t.TempDir()
func NewTestStorage(t *testing.T) *storage.LocalStorage {
	t.Helper()

	store, err := storage.NewLocalStorage(storage.Config{
		Type:     "local",
		BasePath: filepath.Join(t.TempDir(), "uploads"),
		BaseURL:  "/uploads",
	})
	require.NoError(t, err)
	return store
}

// PNG - валидная картинка w x h
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// PDF - тело, которое распознается как application/pdf, размером size байт
func PDF(size int) []byte {
	header := "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"
	if size <= len(header) {
		return []byte(header)
	}
	return append([]byte(header), bytes.Repeat([]byte("0"), size-len(header))...)
}

// MultipartBody собирает multipart-тело с полями и необязательным файлом в поле "file"
func MultipartBody(t *testing.T, fields map[string]string, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// FileHeader - *multipart.FileHeader, как его отдает разбор формы
func FileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	body, contentType := MultipartBody(t, nil, filename, data)
	boundary := strings.TrimPrefix(contentType, "multipart/form-data; boundary=")

	form, err := multipart.NewReader(body, boundary).ReadForm(64 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

// RecordingMailer запоминает отправленные письма
type RecordingMailer struct {
	mu   sync.Mutex
	Sent []*email.Email
	Err  error
}

func (m *RecordingMailer) Send(ctx context.Context, msg *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *RecordingMailer) Messages() []*email.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*email.Email(nil), m.Sent...)
}
