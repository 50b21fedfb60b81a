package usecase

import (
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nonEmpty maps blank input to NULL.
func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// normalizeClock turns "9:30" into "09:30".
func normalizeClock(clock string) (string, bool) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(clock))
	if err != nil {
		return "", false
	}
	return t.Format(clockLayout), true
}
