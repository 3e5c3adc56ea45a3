package notionpub

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Summary backends.
const (
	SummaryAnthropic = "anthropic"
	SummaryGemini    = "gemini"
)

// Config holds credentials and settings for a publishing run.
type Config struct {
	NotionKey    string
	WeChatAppID  string
	WeChatSecret string
	Author       string
	FooterPath   string
	StylesPath   string
	Summary      SummaryConfig
}

// SummaryConfig selects the backend used to generate digests.
// An empty Provider disables generated digests.
type SummaryConfig struct {
	Provider string
	APIKey   string
	Model    string // empty = backend default
	BaseURL  string // empty = backend default
}

// Validate checks that the config is internally consistent.
func (c Config) Validate() error {
	if err := c.Summary.Validate(); err != nil {
		return fmt.Errorf("summary: %v: %w", err, ErrValidation)
	}
	return nil
}

// ValidateSource checks the settings needed to read from the content API.
func (c Config) ValidateSource() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.NotionKey, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}
	return c.Validate()
}

// ValidatePublish checks the settings needed to create drafts.
func (c Config) ValidatePublish() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.WeChatAppID, validation.Required),
		validation.Field(&c.WeChatSecret, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrValidation)
	}
	return c.Validate()
}

// Validate implements validation.Validatable.
func (s SummaryConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Provider, validation.In(SummaryAnthropic, SummaryGemini)),
		validation.Field(&s.APIKey, validation.When(s.Provider != "", validation.Required)),
	)
}
