package util

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	DefaultAllowedOrigin     = "http://localhost:8080"
	DefaultCountdownInterval = time.Second
	DefaultChatRate          = 1.0
	DefaultChatBurst         = 5
)

// SplitList splits a comma separated env value, dropping blanks.
func SplitList(s string) []string {
	items := lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})

	return lo.Compact(items)
}
