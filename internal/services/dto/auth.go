package dto

// LoginRequest - запрос входа в админку
type LoginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"secret"`
}

type AuthStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}
