package auth

import (
	"context"
	"fmt"
	"strings"
)

type staticProvider struct {
	key string
}

// Static 返回始终给出同一个 key 的 Provider。
func Static(key string) Provider {
	return &staticProvider{key: strings.TrimSpace(key)}
}

func (p *staticProvider) Credential(ctx context.Context) (string, error) {
	if p.key == "" {
		return "", fmt.Errorf("api key is empty")
	}
	return p.key, nil
}
