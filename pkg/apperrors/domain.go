package apperrors

import "net/http"

// ErrUnauthorized - нет cookie админа или она невалидна.
var ErrUnauthorized = New(
	CodeUnauthorized,
	"auth",
	"Unauthorized",
	http.StatusUnauthorized,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

// ErrFileRequired - файл обязателен (создание artwork, загрузка резюме).
var ErrFileRequired = New(
	CodeValidationFailed,
	"validation",
	"File is required",
	http.StatusBadRequest,
)

// ErrAPINotFound - неизвестная функция/эндпоинт.
var ErrAPINotFound = New(
	CodeNotFound,
	"request",
	"API not found",
	http.StatusNotFound,
)

// ErrMethodNotAllowed - функция не обслуживает этот HTTP-метод.
var ErrMethodNotAllowed = New(
	CodeMethodNotAllowed,
	"request",
	"Method not allowed",
	http.StatusMethodNotAllowed,
)
