package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/notionpub"
)

// configDTO mirrors the on-disk config file.
type configDTO struct {
	NotionKey    string      `json:"notion_key"`
	WeChatAppID  string      `json:"wechat_appid"`
	WeChatSecret string      `json:"wechat_secret"`
	Author       string      `json:"author,omitempty"`
	FooterPath   string      `json:"footer_path,omitempty"`
	StylesPath   string      `json:"styles_path,omitempty"`
	Summary      *summaryDTO `json:"summary,omitempty"`
}

type summaryDTO struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key,omitempty"`
	Model    string `json:"model,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// DefaultConfigPath returns the config file location under the user's home
// directory.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".config", "notion-publisher", "config.json"), nil
}

// LoadConfig reads a Config from a JSON file. A missing file yields a zero
// Config so credentials can come from the environment alone.
func LoadConfig(path string) (notionpub.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return notionpub.Config{}, nil
	}
	if err != nil {
		return notionpub.Config{}, fmt.Errorf("read file: %w", err)
	}
	var dto configDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return notionpub.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg := notionpub.Config{
		NotionKey:    dto.NotionKey,
		WeChatAppID:  dto.WeChatAppID,
		WeChatSecret: dto.WeChatSecret,
		Author:       dto.Author,
		FooterPath:   dto.FooterPath,
		StylesPath:   dto.StylesPath,
	}
	if dto.Summary != nil {
		cfg.Summary = notionpub.SummaryConfig{
			Provider: dto.Summary.Provider,
			APIKey:   dto.Summary.APIKey,
			Model:    dto.Summary.Model,
			BaseURL:  dto.Summary.BaseURL,
		}
	}
	return cfg, nil
}

// SaveConfig writes cfg to a JSON file. The file holds credentials, so it
// is created readable by the owner only.
func SaveConfig(path string, cfg notionpub.Config) error {
	dto := configDTO{
		NotionKey:    cfg.NotionKey,
		WeChatAppID:  cfg.WeChatAppID,
		WeChatSecret: cfg.WeChatSecret,
		Author:       cfg.Author,
		FooterPath:   cfg.FooterPath,
		StylesPath:   cfg.StylesPath,
	}
	if cfg.Summary != (notionpub.SummaryConfig{}) {
		dto.Summary = &summaryDTO{
			Provider: cfg.Summary.Provider,
			APIKey:   cfg.Summary.APIKey,
			Model:    cfg.Summary.Model,
			BaseURL:  cfg.Summary.BaseURL,
		}
	}
	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return writeFile(path, data)
}
