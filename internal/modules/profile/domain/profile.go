package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "faithtrack/internal/platform/errors"
)

const SchemaVersion = 1

// Profile identifies the owner of a set of resolutions.
type Profile struct {
	ID        string
	Name      string
	Email     string
	Church    string
	CreatedAt time.Time
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	at := strings.Index(p.Email, "@")
	if at <= 0 || at == len(p.Email)-1 {
		return fmt.Errorf("%w: email %q is not valid", apperrors.ErrInvalidInput, p.Email)
	}
	return nil
}
