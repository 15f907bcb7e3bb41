package auth

import "context"

// Provider 返回访问上游 chat.completions 接口所需的 API key。
type Provider interface {
	Credential(ctx context.Context) (apiKey string, err error)
}

type Source string

const (
	SourceStatic Source = "static"
	SourceEnv    Source = "env"
	SourceFile   Source = "file"
	SourceAuto   Source = "auto"
)
