package validator

import (
	"log"
	"strings"

	"portfolio_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'not-blank': строка не пустая и не из одних пробелов
	mustRegister("not-blank", validateNotBlank)

	// 'is-artwork-category': категория из фиксированного списка
	mustRegister("is-artwork-category", validateArtworkCategory)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateArtworkCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // для этого есть 'required'
	}
	return models.ArtworkCategory(value).IsValid()
}
