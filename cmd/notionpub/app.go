package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/notionpub"
	"github.com/fwojciec/notionpub/anthropic"
	"github.com/fwojciec/notionpub/fs"
	"github.com/fwojciec/notionpub/gemini"
	pubjson "github.com/fwojciec/notionpub/json"
	"github.com/fwojciec/notionpub/notion"
	"github.com/fwojciec/notionpub/publish"
	"github.com/fwojciec/notionpub/wechat"
)

// app holds configuration and clients shared by commands.
type app struct {
	ctx    context.Context
	cfg    notionpub.Config
	styles notionpub.StyleSheet
	logger *slog.Logger
	stdout io.Writer

	notionClient *notion.Client
}

// notion returns the content API client, creating it on first use.
func (a *app) notion() (*notion.Client, error) {
	if a.notionClient != nil {
		return a.notionClient, nil
	}
	if err := a.cfg.ValidateSource(); err != nil {
		return nil, err
	}
	a.notionClient = notion.New(a.cfg.NotionKey)
	return a.notionClient, nil
}

func (a *app) wechat() (*wechat.Client, error) {
	if err := a.cfg.ValidatePublish(); err != nil {
		return nil, err
	}
	return wechat.New(a.cfg.WeChatAppID, a.cfg.WeChatSecret), nil
}

// summarizer returns the configured digest backend, or nil when none is.
func (a *app) summarizer() (notionpub.Summarizer, error) {
	s := a.cfg.Summary
	switch s.Provider {
	case notionpub.SummaryAnthropic:
		var opts []anthropic.Option
		if s.Model != "" {
			opts = append(opts, anthropic.WithModel(s.Model))
		}
		if s.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(s.BaseURL))
		}
		return anthropic.New(s.APIKey, opts...), nil
	case notionpub.SummaryGemini:
		var opts []gemini.Option
		if s.Model != "" {
			opts = append(opts, gemini.WithModel(s.Model))
		}
		if s.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(s.BaseURL))
		}
		return gemini.New(a.ctx, s.APIKey, opts...)
	default:
		return nil, nil
	}
}

// pipelineOptions returns the options every pipeline is built with.
func (a *app) pipelineOptions() ([]publish.Option, error) {
	opts := []publish.Option{
		publish.WithLogger(a.logger),
		publish.WithStyleSheet(a.styles),
		publish.WithAuthor(a.cfg.Author),
	}
	if a.cfg.FooterPath != "" {
		path, err := filepath.Abs(a.cfg.FooterPath)
		if err != nil {
			return nil, fmt.Errorf("footer: %w", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read footer: %w", err)
		}
		opts = append(opts, publish.WithFooter(string(data), filepath.Dir(path)))
	}
	return opts, nil
}

// target is one resolved input together with the source that serves it.
type target struct {
	name   string
	source notionpub.BlockSource
	in     publish.Input
}

// targets resolves command line inputs. Saved block snapshots (.json)
// are served offline; patterns expand to Markdown files; anything else that
// is not a file is a page ID or URL.
func (a *app) targets(args []string) ([]target, error) {
	var out []target
	for _, arg := range args {
		if isSnapshot(arg) {
			snap, err := pubjson.LoadBlocks(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", arg, err)
			}
			out = append(out, target{
				name:   arg,
				source: snapshotSource{snap},
				in:     publish.Input{PageID: firstNonEmpty(snap.PageID, arg)},
			})
			continue
		}
		inputs, err := fs.Resolve([]string{arg})
		if err != nil {
			return nil, err
		}
		for _, in := range inputs {
			if in.Kind == fs.InputFile {
				out = append(out, target{name: in.Value, in: publish.Input{Path: in.Value}})
				continue
			}
			client, err := a.notion()
			if err != nil {
				return nil, err
			}
			out = append(out, target{name: in.Value, source: client, in: publish.Input{PageID: in.Value}})
		}
	}
	return out, nil
}

// target resolves a single input.
func (a *app) target(arg string) (target, error) {
	ts, err := a.targets([]string{arg})
	if err != nil {
		return target{}, err
	}
	if len(ts) != 1 {
		return target{}, fmt.Errorf("%q resolves to %d inputs, want one: %w", arg, len(ts), notionpub.ErrValidation)
	}
	return ts[0], nil
}

// render runs a dry-run pipeline for t, producing markup and HTML without
// uploading anything.
func (a *app) render(t target) (publish.Result, error) {
	opts, err := a.pipelineOptions()
	if err != nil {
		return publish.Result{}, err
	}
	in := t.in
	in.DryRun = true
	return publish.New(t.source, nil, nil, nil, opts...).Run(a.ctx, in)
}

func isSnapshot(arg string) bool {
	if !strings.EqualFold(filepath.Ext(arg), ".json") {
		return false
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

// snapshotSource serves a saved block tree as if it were the page.
type snapshotSource struct {
	snap pubjson.Snapshot
}

func (s snapshotSource) PageTitle(context.Context, string) (string, error) {
	return s.snap.Title, nil
}

func (s snapshotSource) Blocks(context.Context, string) ([]notionpub.Block, error) {
	return s.snap.Blocks, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
