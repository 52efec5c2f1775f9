// Command llmconnect sends a prompt to a locally hosted model service and
// prints the reply.
//
// Usage:
//
//	llmconnect [flags] generate <prompt>
//	llmconnect [flags] chat <prompt>
//	llmconnect [flags] vision <prompt>
//
// Settings are layered: a .env file in the working directory, then the
// -config file, then LLMCONNECT_* / OLLAMA_HOST environment variables,
// then flags. The vision command reads LLM_IMAGE_PATH when no -image is
// given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/randalmurphal/llmconnect/ollama"
	"github.com/randalmurphal/llmconnect/provider"
)

const (
	defaultTextModel   = "llama3.1:8b"
	defaultVisionModel = "qwen2.5vl:7b"
)

var errUsage = errors.New("usage: llmconnect [flags] generate|chat|vision <prompt>")

func main() {
	loadDotEnv(slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "llmconnect:", err)
		}
		os.Exit(1)
	}
}

// loadDotEnv loads .env from the working directory. A missing file is
// normal; a file that cannot be read or parsed is logged and skipped.
func loadDotEnv(logger *slog.Logger, filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("ignoring .env", slog.Any("error", err))
	}
}

// imageList collects repeated -image flags in order.
type imageList []string

func (l *imageList) String() string { return strings.Join(*l, ",") }

func (l *imageList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("llmconnect", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		model      = flags.String("model", os.Getenv("LLMCONNECT_MODEL"), "model name (default depends on command)")
		host       = flags.String("host", "", "service host, host:port or URL")
		baseURL    = flags.String("base-url", "", "service base URL, overrides -host")
		timeout    = flags.Duration("timeout", 0, "per-call timeout (default 60s)")
		configPath = flags.String("config", "", "client config file (.yaml, .toml or .json)")
		system     = flags.String("system", "", "system prompt")
		debug      = flags.Bool("debug", false, "log request details to stderr")
		images     imageList
	)
	flags.Var(&images, "image", "image file for vision (repeatable)")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return errUsage
	}
	command := flags.Arg(0)
	prompt := strings.Join(flags.Args()[1:], " ")

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := ollama.DefaultConfig()
	if *configPath != "" {
		fileCfg, err := ollama.LoadConfigFile(*configPath)
		if err != nil {
			return err
		}
		cfg = fileCfg
	}
	cfg.LoadFromEnv()
	if *host != "" {
		cfg.Host = *host
		cfg.BaseURL = ""
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *timeout != 0 {
		cfg.Timeout = *timeout
	}

	client, err := ollama.NewWithConfig(cfg, ollama.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("client ready",
		slog.String("base_url", client.BaseURL()),
		slog.Duration("timeout", client.Timeout()))

	start := time.Now()
	var out string
	switch command {
	case "generate":
		out, err = client.Generate(ctx, ollama.GenerateRequest{
			Model:  modelOr(*model, defaultTextModel),
			Prompt: prompt,
			System: *system,
		})

	case "chat":
		var messages []ollama.ChatMessage
		if *system != "" {
			messages = append(messages, ollama.ChatMessage{Role: provider.RoleSystem, Content: *system})
		}
		messages = append(messages, ollama.ChatMessage{Role: provider.RoleUser, Content: prompt})
		out, err = client.Chat(ctx, ollama.ChatRequest{
			Model:    modelOr(*model, defaultTextModel),
			Messages: messages,
		})

	case "vision":
		paths := []string(images)
		if len(paths) == 0 {
			if p := os.Getenv("LLM_IMAGE_PATH"); p != "" {
				paths = []string{p}
			}
		}
		out, err = client.GenerateWithImages(ctx, ollama.ImageRequest{
			Model:      modelOr(*model, defaultVisionModel),
			Prompt:     prompt,
			System:     *system,
			ImagePaths: paths,
		})

	default:
		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}
	if err != nil {
		return err
	}

	logger.Debug("done", slog.String("command", command), slog.Duration("duration", time.Since(start)))
	_, err = fmt.Fprintln(stdout, out)
	return err
}

func modelOr(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}
