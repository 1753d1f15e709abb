package apperrors

// ErrorCode - машинный код ошибки, отдается клиенту в поле "code"
type ErrorCode string

const (
	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeUpstreamError ErrorCode = "UPSTREAM_ERROR"

	// Ошибки запроса и бизнес-логики
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUploadRejected   ErrorCode = "UPLOAD_REJECTED"
	CodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"

	// Аутентификация
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
)
