package dto

// ContactRequest - сообщение из формы обратной связи
type ContactRequest struct {
	Name    string `json:"name" validate:"not-blank,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"not-blank,max=5000"`
}
