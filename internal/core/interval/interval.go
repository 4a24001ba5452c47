// Package interval maps monitoring interval tokens onto cron schedules
package interval

// DefaultToken is the schedule applied when a token is not recognized
const DefaultToken = "1h"

// Spec is a resolved schedule for a token
type Spec struct {
	// Token is the effective token, DefaultToken when the input was unrecognized
	Token string

	// Cron is an expression the standard cron parser accepts,
	// either an @every descriptor or a five field spec
	Cron string

	// Recognized is false when the input token fell back to the default
	Recognized bool
}

// fixed-rate tokens and their descriptors
var everyTokens = map[string]string{
	"10min": "@every 10m",
	"30min": "@every 30m",
	"1h":    "@every 1h",
	"3h":    "@every 3h",
	"6h":    "@every 6h",
	"12h":   "@every 12h",
}

// calendar tokens, daily at 09:00 and weekly on Monday 09:00
var calendarTokens = map[string]string{
	"diario":  "0 9 * * *",
	"1d":      "0 9 * * *",
	"semanal": "0 9 * * 1",
	"1w":      "0 9 * * 1",
}

// Resolve maps token onto a concrete schedule
// unrecognized tokens resolve to the hourly default
func Resolve(token string) Spec {
	if expr, ok := everyTokens[token]; ok {
		return Spec{Token: token, Cron: expr, Recognized: true}
	}
	if expr, ok := calendarTokens[token]; ok {
		return Spec{Token: token, Cron: expr, Recognized: true}
	}
	def := everyTokens[DefaultToken]
	return Spec{Token: DefaultToken, Cron: def, Recognized: false}
}

// Known reports whether token maps to a schedule without falling back
func Known(token string) bool {
	if _, ok := everyTokens[token]; ok {
		return true
	}
	_, ok := calendarTokens[token]
	return ok
}

// Tokens returns the full recognized token set for docs and validation messages
func Tokens() []string {
	return []string{"10min", "30min", "1h", "3h", "6h", "12h", "diario", "1d", "semanal", "1w"}
}
