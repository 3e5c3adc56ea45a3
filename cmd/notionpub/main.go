// Command notionpub converts pages and local Markdown files into styled
// draft articles.
//
// Usage:
//
//	notionpub [flags] <command> [args]
//
// Commands:
//
//	publish <input>...  Publish pages, page URLs, files or globs as drafts
//	fetch <page>        Print a page as Markdown
//	search <query>      Find pages by title
//	pick [query]        Pick a page interactively and publish it
//	html <input>        Print the rendered HTML of a page or file
//	blocks <page>       Dump a page's block tree as JSON
//	preview <input>     Render a page or file in the terminal
//
// Credentials come from the config file and are overridden by NOTION_KEY,
// WECHAT_APPID, WECHAT_SECRET, ANTHROPIC_API_KEY and GEMINI_API_KEY. A .env
// file in the working directory is loaded first.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/notionpub"
	pubjson "github.com/fwojciec/notionpub/json"
	"github.com/fwojciec/notionpub/yaml"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; the real environment still applies.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "notionpub: %v\n", err)
		os.Exit(1)
	}
}

// CLI is the command line grammar.
type CLI struct {
	Config    string `help:"Config file (default: ~/.config/notion-publisher/config.json)" type:"path"`
	Styles    string `help:"YAML file with style overrides" type:"path"`
	Verbose   bool   `short:"v" help:"Log debug output"`
	LogFormat string `help:"Log format: text, json" enum:"text,json" default:"text"`

	Publish PublishCmd `cmd:"" help:"Publish pages, page URLs, Markdown files or globs as drafts"`
	Fetch   FetchCmd   `cmd:"" help:"Print a page as Markdown"`
	Search  SearchCmd  `cmd:"" help:"Find pages by title"`
	Pick    PickCmd    `cmd:"" help:"Pick a page interactively and publish it"`
	HTML    HTMLCmd    `cmd:"" name:"html" help:"Print the rendered HTML of a page or file"`
	Blocks  BlocksCmd  `cmd:"" help:"Dump a page's block tree as JSON"`
	Preview PreviewCmd `cmd:"" help:"Render a page or file in the terminal"`
}

// run parses args and executes the selected command. Env vars are read
// through getenv and passed on as values.
func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("notionpub"),
		kong.Description("Publish pages and Markdown files as styled draft articles."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cli, getenv, stdout, stderr)
	if err != nil {
		return err
	}
	return kctx.Run(a)
}

// newApp loads configuration shared by all commands.
func newApp(ctx context.Context, cli CLI, getenv func(string) string, stdout, stderr io.Writer) (*app, error) {
	configPath := cli.Config
	if configPath == "" {
		p, err := pubjson.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}
	cfg, err := pubjson.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg = applyEnv(cfg, getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stylesPath := cli.Styles
	if stylesPath == "" {
		stylesPath = cfg.StylesPath
	}
	styles := notionpub.DefaultStyleSheet()
	if stylesPath != "" {
		styles, err = yaml.LoadStyleSheet(stylesPath, styles)
		if err != nil {
			return nil, fmt.Errorf("load styles: %w", err)
		}
	}

	return &app{
		ctx:    ctx,
		cfg:    cfg,
		styles: styles,
		logger: newLogger(stderr, cli.LogFormat, cli.Verbose),
		stdout: stdout,
	}, nil
}

// applyEnv overrides file settings with environment variables. When no
// summary backend is configured, one is picked from the available API keys.
func applyEnv(cfg notionpub.Config, getenv func(string) string) notionpub.Config {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.NotionKey, "NOTION_KEY")
	set(&cfg.WeChatAppID, "WECHAT_APPID")
	set(&cfg.WeChatSecret, "WECHAT_SECRET")

	keys := map[string]string{
		notionpub.SummaryAnthropic: getenv("ANTHROPIC_API_KEY"),
		notionpub.SummaryGemini:    getenv("GEMINI_API_KEY"),
	}
	if cfg.Summary.Provider == "" {
		switch {
		case keys[notionpub.SummaryAnthropic] != "":
			cfg.Summary.Provider = notionpub.SummaryAnthropic
		case keys[notionpub.SummaryGemini] != "":
			cfg.Summary.Provider = notionpub.SummaryGemini
		}
	}
	if key := keys[cfg.Summary.Provider]; key != "" {
		cfg.Summary.APIKey = key
	}
	return cfg
}

func newLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
