package functions

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"portfolio_backend/pkg/apperrors"
)

// Event - входящий запрос функции в формате serverless-платформы
type Event struct {
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path"`
	Headers               map[string]string `json:"headers"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded"`
}

// Result - ответ функции
type Result struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// maxMultipartMemory - части больше этого уходят во временные файлы
const maxMultipartMemory = 32 << 20

// Header ищет заголовок без учета регистра
func (e *Event) Header(name string) string {
	if v, ok := e.Headers[name]; ok {
		return v
	}
	for k, v := range e.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func (e *Event) Query(name string) string {
	return strings.TrimSpace(e.QueryStringParameters[name])
}

// Cookie совместим с auth.CookieFunc
func (e *Event) Cookie(name string) (string, error) {
	req := http.Request{Header: http.Header{"Cookie": {e.Header("Cookie")}}}
	c, err := req.Cookie(name)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

func (e *Event) rawBody() ([]byte, error) {
	if !e.IsBase64Encoded {
		return []byte(e.Body), nil
	}
	data, err := base64.StdEncoding.DecodeString(e.Body)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid request body")
	}
	return data, nil
}

// DecodeJSON разбирает тело; ошибка разбора - 400
func (e *Event) DecodeJSON(v interface{}) error {
	body, err := e.rawBody()
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return apperrors.NewBadRequestError("Invalid request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperrors.NewBadRequestError("Invalid request body")
	}
	return nil
}

// MultipartForm разбирает тело по boundary из Content-Type
func (e *Event) MultipartForm() (*multipart.Form, error) {
	mediaType, params, err := mime.ParseMediaType(e.Header("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		return nil, apperrors.NewBadRequestError("Invalid multipart body")
	}

	body, err := e.rawBody()
	if err != nil {
		return nil, err
	}

	form, err := multipart.NewReader(bytes.NewReader(body), params["boundary"]).ReadForm(maxMultipartMemory)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid multipart body")
	}
	return form, nil
}

// QueryID - как ParseQueryID у gin-хэндлеров
func (e *Event) QueryID(label string) (id int, present bool, err error) {
	raw := e.Query("id")
	if raw == "" {
		return 0, false, nil
	}
	id, convErr := strconv.Atoi(raw)
	if convErr != nil || id <= 0 {
		return 0, true, apperrors.NewBadRequestError("Invalid " + strings.ToLower(label) + " ID")
	}
	return id, true, nil
}

func (e *Event) RequireQueryID(label string) (int, error) {
	id, present, err := e.QueryID(label)
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, apperrors.ValidationError(label+" ID is required", nil)
	}
	return id, nil
}

func formValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formFile(form *multipart.Form) *multipart.FileHeader {
	files := form.File["file"]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
