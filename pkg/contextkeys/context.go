package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому в gin.Context хранится *gorm.DB
const DBContextKey = contextKey("db")

// AdminContextKey - флаг "запрос от админа", выставляется RequireAdmin
const AdminContextKey = contextKey("admin")
