package services

import (
	"fmt"
	"strings"

	apperrors "filasling/pkg/errors"
)

// requiredText обрезает пробелы; пустой результат - ErrBadRequest.
func requiredText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%s não pode ser vazio: %w", field, apperrors.ErrBadRequest)
	}
	return trimmed, nil
}
