// Command deltabridge-probe 通过 bridge.Transport 发送一次请求，把转换后的 message.delta 事件打印到 stdout。
// 它模拟嵌入方：普通 http.Client 向哨兵地址 POST，由 Transport 在进程内完成翻译。
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/LubyRuffy/deltabridge/bridge"
	"github.com/LubyRuffy/deltabridge/config"
	"github.com/LubyRuffy/deltabridge/logging"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (default: $DELTABRIDGE_CONFIG)")
		input      = flag.String("input", "你好，介绍一下你自己", "user input, sent as {\"text\": ...}")
		model      = flag.String("model", "", "upstream model id (overrides config)")
		textOnly   = flag.Bool("text", false, "print only the delta text instead of raw events")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *model != "" {
		cfg.Upstream.Model = *model
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(logging.WithLevel(level), logging.WithPrefix("probe"))

	provider, err := cfg.CredentialProvider()
	if err != nil {
		fatal(err)
	}

	transport, err := bridge.NewTransport(bridge.Config{
		UpstreamURL:  cfg.Upstream.URL,
		Model:        cfg.Upstream.Model,
		Credentials:  provider,
		InterceptURL: cfg.Intercept.URL,
		Logger:       logger,
	}, nil)
	if err != nil {
		fatal(err)
	}

	if err := run(&http.Client{Transport: transport, Timeout: cfg.Upstream.Timeout}, cfg.Intercept.URL, *input, *textOnly, os.Stdout); err != nil {
		fatal(err)
	}
}

func run(client *http.Client, target, input string, textOnly bool, out io.Writer) error {
	body, err := json.Marshal(map[string]string{"text": input})
	if err != nil {
		return err
	}
	resp, err := client.Post(target, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if !textOnly {
		_, err = io.Copy(out, resp.Body)
		return err
	}
	return printText(resp.Body, out)
}

// printText 只输出事件里的 text 字段。
func printText(r io.Reader, out io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		payload, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var ev struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return err
		}
		fmt.Fprint(out, ev.Text)
	}
	fmt.Fprintln(out)
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
