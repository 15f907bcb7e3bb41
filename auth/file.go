package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type keyFile struct {
	APIKey       string `json:"api_key"`
	OpenAIAPIKey string `json:"OPENAI_API_KEY"`
}

// ReadKeyFromPath 从 JSON 文件读取 api_key，兼容只有 OPENAI_API_KEY 的文件。
func ReadKeyFromPath(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read key file: %w", err)
	}

	var f keyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("failed to parse key file: %w", err)
	}

	key := strings.TrimSpace(f.APIKey)
	if key == "" {
		key = strings.TrimSpace(f.OpenAIAPIKey)
	}
	if key == "" {
		return "", fmt.Errorf("key file missing api_key")
	}
	return key, nil
}

// DefaultKeyFilePath 返回 ~/.config/deltabridge/auth.json。
func DefaultKeyFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "deltabridge", "auth.json"), nil
}

type fileProvider struct {
	path string
}

func (p *fileProvider) Credential(ctx context.Context) (string, error) {
	path := p.path
	if path == "" {
		var err error
		if path, err = DefaultKeyFilePath(); err != nil {
			return "", err
		}
	}
	return ReadKeyFromPath(path)
}
