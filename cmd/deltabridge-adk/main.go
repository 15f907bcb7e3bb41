package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/LubyRuffy/deltabridge"
	"github.com/LubyRuffy/deltabridge/config"
	"github.com/LubyRuffy/deltabridge/logging"
	"github.com/LubyRuffy/deltabridge/observability"
	"github.com/LubyRuffy/deltabridge/upstream"
	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/schema"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (default: $DELTABRIDGE_CONFIG)")
		model      = flag.String("model", "", "model id, openai/ prefix allowed (overrides config)")
		input      = flag.String("input", "你好，介绍一下你自己", "user input")
		streaming  = flag.Bool("stream", true, "stream the agent output")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("load config failed: %v", err)
	}
	if *model != "" {
		cfg.Upstream.Model = *model
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(logging.WithLevel(level), logging.WithPrefix("adk"))

	provider, err := cfg.CredentialProvider()
	if err != nil {
		fatalf("invalid credential config: %v", err)
	}
	client, err := upstream.NewClient(upstream.Config{URL: cfg.Upstream.URL, Credentials: provider})
	if err != nil {
		fatalf("create client failed: %v", err)
	}
	m, err := upstream.NewChatModel(client, deltabridge.NormalizeModelID(cfg.Upstream.Model))
	if err != nil {
		fatalf("create model failed: %v", err)
	}
	m = m.WithObserver(observability.NewStreamObserver(logger, "adk"))

	ctx := context.Background()
	agent, err := adk.NewChatModelAgent(ctx, &adk.ChatModelAgentConfig{
		Name:        "deltabridge",
		Description: "chat agent backed by an OpenAI compatible stream",
		Model:       m,
	})
	if err != nil {
		fatalf("create agent failed: %v", err)
	}

	runner := adk.NewRunner(ctx, adk.RunnerConfig{
		Agent:           agent,
		EnableStreaming: *streaming,
	})

	iter := runner.Run(ctx, []adk.Message{schema.UserMessage(*input)})
	for {
		ev, ok := iter.Next()
		if !ok {
			break
		}
		if ev.Err != nil {
			fatalf("run failed: %v", ev.Err)
		}
		if ev.Output == nil || ev.Output.MessageOutput == nil {
			continue
		}
		mo := ev.Output.MessageOutput
		if mo.IsStreaming && mo.MessageStream != nil {
			for {
				chunk, err := mo.MessageStream.Recv()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					fatalf("stream failed: %v", err)
				}
				fmt.Print(chunk.Content)
			}
			continue
		}
		if mo.Message != nil && mo.Message.Content != "" {
			fmt.Print(mo.Message.Content)
		}
	}
	fmt.Println()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
