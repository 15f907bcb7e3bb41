package auth

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const (
	EnvAPIKey = "DELTABRIDGE_API_KEY"
	// EnvOpenAIAPIKey 作为 EnvAPIKey 未设置时的回退。
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

type envProvider struct{}

func (p *envProvider) Credential(ctx context.Context) (string, error) {
	for _, name := range []string{EnvAPIKey, EnvOpenAIAPIKey} {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("%s is not set", EnvAPIKey)
}
