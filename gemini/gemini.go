// Package gemini implements [notionpub.Summarizer] for the Google Gemini
// API.
//
// It wraps the google.golang.org/genai SDK and issues a single
// non-streaming GenerateContent call per summary.
package gemini

const (
	defaultModel       = "gemini-2.5-flash"
	defaultMaxTokens   = 500
	defaultTemperature = 0.7
)
