package functions

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/metrics"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/services"
	"portfolio_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Префикс, под которым платформа публикует функции
const FunctionsPrefix = "/.netlify/functions/"

// response - результат обработчика до сериализации
type response struct {
	status int
	body   interface{}
	cookie *http.Cookie
}

type handlerFunc func(ctx context.Context, ev *Event, rest []string) (*response, error)

// Dispatcher выбирает функцию по имени из пути и вызывает ее поверх
// тех же сервисов и SessionGate, что и gin-хэндлеры.
type Dispatcher struct {
	gate     auth.SessionGate
	db       middleware.DBProvider
	services *services.ServiceContainer
	routes   map[string]handlerFunc
}

func NewDispatcher(svc *services.ServiceContainer, gate auth.SessionGate, db middleware.DBProvider) *Dispatcher {
	d := &Dispatcher{
		gate:     gate,
		db:       db,
		services: svc,
	}

	d.routes = map[string]handlerFunc{
		"skills":   resourceFunction(d, svc.Skills, newSkillInputs),
		"projects": resourceFunction(d, svc.Projects, newProjectInputs),
		"blogs":    resourceFunction(d, svc.Blogs, newBlogPostInputs),
		"artworks": d.artworks,
		"settings": d.settings,
		"auth":     d.auth,
		"contact":  d.contact,
	}
	return d
}

// FunctionName: "/.netlify/functions/skills" и "/.netlify/functions/api/skills/..." дают "skills"
func FunctionName(path string) (string, []string) {
	trimmed := strings.TrimPrefix(path, FunctionsPrefix)
	if trimmed == path {
		trimmed = strings.TrimPrefix(path, "/api/")
	}

	segments := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(segments) > 0 && segments[0] == "api" {
		segments = segments[1:]
	}
	if len(segments) == 0 || segments[0] == "" {
		return "", nil
	}
	return segments[0], segments[1:]
}

func (d *Dispatcher) Handle(ctx context.Context, ev *Event) *Result {
	start := time.Now()

	requestID := ev.Header(middleware.RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = logger.WithRequestID(ctx, requestID)

	name, rest := FunctionName(ev.Path)
	result := d.dispatch(ctx, ev, name, rest)
	result.Headers[middleware.RequestIDHeader] = requestID

	route := FunctionsPrefix + name
	if _, ok := d.routes[name]; !ok {
		route = ""
	}
	metrics.RecordRequest(ev.HTTPMethod, route, result.StatusCode, time.Since(start))

	logger.CtxDebug(ctx, "Function request",
		"method", ev.HTTPMethod,
		"path", ev.Path,
		"status", result.StatusCode,
		"duration", time.Since(start),
	)
	return result
}

func (d *Dispatcher) dispatch(ctx context.Context, ev *Event, name string, rest []string) *Result {
	if ev.HTTPMethod == http.MethodOptions {
		return &Result{StatusCode: http.StatusNoContent, Headers: baseHeaders()}
	}

	handler, ok := d.routes[name]
	if !ok {
		return errorResult(apperrors.ErrAPINotFound)
	}

	resp, err := handler(ctx, ev, rest)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); !ok || appErr.HTTPCode >= 500 {
			logger.CtxWithError(ctx, "Function error", err, "function", name)
		}
		return errorResult(err)
	}
	return jsonResult(resp)
}

// requireAdmin - первая проверка любой мутации
func (d *Dispatcher) requireAdmin(ctx context.Context, ev *Event) error {
	ok := d.gate.IsAuthenticated(ev.Cookie)
	metrics.RecordSessionCheck(ok)
	if !ok {
		logger.CtxWarn(ctx, "Unauthorized admin request", "method", ev.HTTPMethod, "path", ev.Path)
		return apperrors.ErrUnauthorized
	}
	return nil
}

func (d *Dispatcher) conn(ctx context.Context) (*gorm.DB, error) {
	db, err := d.db.DB(ctx)
	if err != nil {
		return nil, apperrors.UpstreamError("database", err)
	}
	return db, nil
}

func baseHeaders() map[string]string {
	headers := make(map[string]string, len(middleware.CORSHeaders)+1)
	for k, v := range middleware.CORSHeaders {
		headers[k] = v
	}
	return headers
}

func jsonResult(resp *response) *Result {
	headers := baseHeaders()
	headers["Content-Type"] = "application/json"
	if resp.cookie != nil {
		headers["Set-Cookie"] = resp.cookie.String()
	}

	body, err := json.Marshal(resp.body)
	if err != nil {
		return errorResult(apperrors.InternalError(err))
	}
	return &Result{StatusCode: resp.status, Headers: headers, Body: string(body)}
}

func errorResult(err error) *Result {
	status, body := apperrors.Resolve(err)
	return jsonResult(&response{status: status, body: body})
}

func reply(status int, body interface{}) *response {
	return &response{status: status, body: body}
}
