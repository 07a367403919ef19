package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "filasling/pkg/errors"
)

// SentFields - набор JSON-ключей верхнего уровня, реально присланных клиентом.
// Позволяет отличить отсутствующее поле от явного null.
// Ключи хранятся в нижнем регистре: encoding/json сопоставляет поля без учёта регистра.
type SentFields map[string]struct{}

func (s SentFields) Has(field string) bool {
	_, ok := s[strings.ToLower(field)]
	return ok
}

// DecodePatch разбирает тело запроса в dst и возвращает список присланных полей.
func DecodePatch(rawRequestBody []byte, dst interface{}) (SentFields, error) {
	if len(bytes.TrimSpace(rawRequestBody)) == 0 {
		return SentFields{}, nil
	}

	var sent map[string]json.RawMessage
	if err := json.Unmarshal(rawRequestBody, &sent); err != nil {
		return nil, fmt.Errorf("JSON inválido: %w", apperrors.ErrBadRequest)
	}
	if err := json.Unmarshal(rawRequestBody, dst); err != nil {
		return nil, fmt.Errorf("JSON inválido: %w", apperrors.ErrBadRequest)
	}

	fields := make(SentFields, len(sent))
	for k := range sent {
		fields[strings.ToLower(k)] = struct{}{}
	}
	return fields, nil
}
