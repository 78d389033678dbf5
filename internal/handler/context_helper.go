package handler

import (
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/noah-isme/school-enrollment-api/pkg/errors"
)

// parseInteger reads any base-10 integer named name.
func parseInteger(raw, name string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s is required", name))
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer", name))
	}
	return id, nil
}

// parseID reads a positive integer identifier named name.
func parseID(raw, name string) (int64, error) {
	id, err := parseInteger(raw, name)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

// parseOptionalID is parseID for filters that may be omitted.
func parseOptionalID(raw, name string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := parseID(raw, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
