package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	maxNameLength     = 64
	maxGameNameLength = 120
	maxColorLength    = 16
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the request's validate tags and turns the first
// failure into a short user-facing message.
func validateStruct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := strings.ToLower(verrs[0].Field())
		switch verrs[0].Tag() {
		case "required":
			return fmt.Errorf("%s is required", field)
		case "min", "max", "len":
			return fmt.Errorf("%s is out of range", field)
		default:
			return fmt.Errorf("%s is invalid", field)
		}
	}
	return errors.New("invalid request")
}

func validateName(name string) (string, error) {
	return validateText("name", name, maxNameLength)
}

func validateGameName(name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxGameNameLength {
		return "", fmt.Errorf("name must be %d characters or fewer", maxGameNameLength)
	}
	return trimmed, nil
}

func validateColor(color string) (string, error) {
	trimmed := strings.TrimSpace(color)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > maxColorLength {
		return "", fmt.Errorf("color must be %d characters or fewer", maxColorLength)
	}
	for i, r := range trimmed {
		if i == 0 && r == '#' {
			continue
		}
		if r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F' {
			continue
		}
		return "", errors.New("color must be a hex value like #1d4ed8")
	}
	return trimmed, nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}
