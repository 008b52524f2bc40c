package recurring

import (
	"regexp"
	"strings"
)

var (
	trailingParens = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	nonAlnum       = regexp.MustCompile(`[^a-z0-9\s]+`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// MerchantKey canonicalizes a transaction display name into the key used to
// group transactions from the same counterparty: lowercase, trailing
// parenthetical stripped (e.g. "(ref #1234)"), everything that is not a
// letter, digit or whitespace removed, whitespace runs collapsed, trimmed.
// An empty key means the transaction cannot be grouped with anything.
func MerchantKey(name string) string {
	key := strings.ToLower(name)
	key = trailingParens.ReplaceAllString(key, "")
	key = nonAlnum.ReplaceAllString(key, "")
	key = whitespaceRun.ReplaceAllString(key, " ")
	return strings.TrimSpace(key)
}
