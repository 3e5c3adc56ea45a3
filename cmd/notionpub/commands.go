package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/notionpub"
	bt "github.com/fwojciec/notionpub/bubbletea"
	"github.com/fwojciec/notionpub/goldmark"
	pubjson "github.com/fwojciec/notionpub/json"
	"github.com/fwojciec/notionpub/markdown"
	"github.com/fwojciec/notionpub/media"
	"github.com/fwojciec/notionpub/publish"
)

// PublishCmd publishes one or more inputs as drafts.
type PublishCmd struct {
	Inputs []string `arg:"" help:"Page IDs, page URLs, Markdown files, globs or block snapshots"`
	Cover  string   `help:"Cover image path or URL"`
	Digest string   `help:"Digest used when none is generated"`
	Title  string   `help:"Override the article title"`
	DryRun bool     `help:"Render only: no uploads, no draft"`
}

func (c *PublishCmd) Run(a *app) error {
	targets, err := a.targets(c.Inputs)
	if err != nil {
		return err
	}
	if c.Title != "" && len(targets) > 1 {
		return fmt.Errorf("--title needs a single input, got %d: %w", len(targets), notionpub.ErrValidation)
	}

	opts, err := a.pipelineOptions()
	if err != nil {
		return err
	}

	var (
		uploader notionpub.MediaUploader
		drafts   notionpub.DraftCreator
	)
	if !c.DryRun {
		wc, err := a.wechat()
		if err != nil {
			return err
		}
		uploader, drafts = wc, wc
		summarizer, err := a.summarizer()
		if err != nil {
			return err
		}
		if summarizer != nil {
			opts = append(opts, publish.WithSummarizer(summarizer))
		}
	}

	stager, err := media.NewStager()
	if err != nil {
		return err
	}
	defer stager.Close()

	for _, t := range targets {
		p := publish.New(t.source, stager, uploader, drafts, opts...)
		in := t.in
		in.Title = c.Title
		in.Digest = c.Digest
		in.CoverPath = c.Cover
		in.DryRun = c.DryRun

		res, err := p.Run(a.ctx, in)
		if err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
		if c.DryRun {
			fmt.Fprintf(a.stdout, "Title: %s\nDigest: %s\n\n%s\n", res.Title, res.Digest, res.HTML)
			continue
		}
		fmt.Fprintf(a.stdout, "Draft created: %s (media_id: %s, images: %d)\n", res.Title, res.MediaID, res.Uploaded)
		for _, ref := range res.Skipped {
			fmt.Fprintf(a.stdout, "  skipped image: %s\n", ref)
		}
	}
	return nil
}

// FetchCmd prints a page as Markdown.
type FetchCmd struct {
	Page string `arg:"" help:"Page ID, page URL or block snapshot"`
}

func (c *FetchCmd) Run(a *app) error {
	t, err := a.target(c.Page)
	if err != nil {
		return err
	}
	if t.source == nil {
		return fmt.Errorf("%s is not a page: %w", c.Page, notionpub.ErrValidation)
	}
	title, err := t.source.PageTitle(a.ctx, t.in.PageID)
	if err != nil {
		return err
	}
	blocks, err := t.source.Blocks(a.ctx, t.in.PageID)
	if err != nil {
		return err
	}
	markup, err := markdown.Convert(blocks)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "# %s\n\n%s", title, markup)
	return nil
}

// SearchCmd lists pages whose title matches a query.
type SearchCmd struct {
	Query []string `arg:"" help:"Search terms"`
}

func (c *SearchCmd) Run(a *app) error {
	client, err := a.notion()
	if err != nil {
		return err
	}
	refs, err := client.Search(a.ctx, strings.Join(c.Query, " "))
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		fmt.Fprintln(a.stdout, "No results found.")
		return nil
	}
	for _, r := range refs {
		fmt.Fprintf(a.stdout, "[%s] ID: %s\n", r.Title, r.ID)
	}
	return nil
}

// PickCmd searches interactively and publishes the chosen page.
type PickCmd struct {
	Query  []string `arg:"" optional:"" help:"Initial search terms"`
	Cover  string   `help:"Cover image path or URL"`
	Digest string   `help:"Digest used when none is generated"`
	DryRun bool     `help:"Render only: no uploads, no draft"`
}

func (c *PickCmd) Run(a *app) error {
	client, err := a.notion()
	if err != nil {
		return err
	}
	m := bt.New(a.ctx, client.Search, notionpub.DefaultTheme(), strings.Join(c.Query, " "))
	final, err := bt.Run(a.ctx, m)
	if err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	ref, ok := final.Selected()
	if !ok {
		return nil
	}
	a.logger.Info("page selected", "title", ref.Title, "page_id", ref.ID)
	publishCmd := PublishCmd{
		Inputs: []string{ref.ID},
		Cover:  c.Cover,
		Digest: c.Digest,
		DryRun: c.DryRun,
	}
	return publishCmd.Run(a)
}

// HTMLCmd prints the rendered article HTML.
type HTMLCmd struct {
	Input string `arg:"" help:"Page ID, page URL, Markdown file or block snapshot"`
}

func (c *HTMLCmd) Run(a *app) error {
	t, err := a.target(c.Input)
	if err != nil {
		return err
	}
	res, err := a.render(t)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, res.HTML)
	return nil
}

// BlocksCmd dumps a page's block tree.
type BlocksCmd struct {
	Page string `arg:"" help:"Page ID or page URL"`
	Out  string `help:"Write the snapshot to a file instead of stdout" type:"path"`
}

func (c *BlocksCmd) Run(a *app) error {
	client, err := a.notion()
	if err != nil {
		return err
	}
	id := notionpub.ParsePageID(c.Page)
	title, err := client.PageTitle(a.ctx, id)
	if err != nil {
		return err
	}
	blocks, err := client.Blocks(a.ctx, id)
	if err != nil {
		return err
	}
	snap := pubjson.Snapshot{PageID: id, Title: title, SavedAt: time.Now().UTC(), Blocks: blocks}
	if c.Out != "" {
		if err := pubjson.SaveBlocks(c.Out, snap); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		fmt.Fprintf(a.stdout, "Saved %d blocks to %s\n", len(blocks), c.Out)
		return nil
	}
	data, err := pubjson.MarshalBlocks(snap)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s\n", data)
	return nil
}

// PreviewCmd renders an article in the terminal.
type PreviewCmd struct {
	Input string `arg:"" help:"Page ID, page URL, Markdown file or block snapshot"`
	Width int    `help:"Wrap width" default:"80"`
}

func (c *PreviewCmd) Run(a *app) error {
	t, err := a.target(c.Input)
	if err != nil {
		return err
	}
	res, err := a.render(t)
	if err != nil {
		return err
	}
	source := "# " + res.Title + "\n\n" + res.Markup
	fmt.Fprintln(a.stdout, goldmark.Preview(source, c.Width, notionpub.DefaultTheme()))
	return nil
}
