// Package publish turns a page or a local Markdown document into a draft
// article: it converts the source to Markdown, re-hosts its images, renders
// styled HTML and submits the draft.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/notionpub"
	"github.com/fwojciec/notionpub/goldmark"
	"github.com/fwojciec/notionpub/markdown"
)

// UntitledDraft is the title of local documents with no title of their own.
const UntitledDraft = "Untitled Draft"

// Input describes one publishing run. Exactly one of PageID and Path is set.
type Input struct {
	PageID    string // page to fetch from the content API
	Path      string // local Markdown file
	Title     string // overrides the source title
	Digest    string // used when no digest is generated
	CoverPath string // local path or URL of the cover image
	DryRun    bool   // stop after rendering: no uploads, no draft
}

// Result reports what a run produced.
type Result struct {
	Title    string
	Digest   string
	Markup   string // Markdown after footer injection and image replacement
	HTML     string // wrapped, styled HTML body
	MediaID  string // draft media ID; empty for dry runs
	Uploaded int    // images re-hosted
	Skipped  []string
}

// Pipeline publishes articles. A Pipeline holds no per-run state.
type Pipeline struct {
	source     notionpub.BlockSource
	stager     notionpub.MediaStager
	uploader   notionpub.MediaUploader
	drafts     notionpub.DraftCreator
	summarizer notionpub.Summarizer

	converter *markdown.Converter
	renderer  *goldmark.Renderer
	container string
	footer    string
	footerDir string
	author    string
	logger    *slog.Logger
}

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithLogger sets the logger for progress and warnings.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithSummarizer enables generated digests.
func WithSummarizer(s notionpub.Summarizer) Option {
	return func(p *Pipeline) { p.summarizer = s }
}

// WithStyleSheet renders with the default rules for s and wraps the body
// in s.Container.
func WithStyleSheet(s notionpub.StyleSheet) Option {
	return func(p *Pipeline) {
		p.renderer = goldmark.New(goldmark.DefaultRules(s))
		p.container = s.Container
	}
}

// WithRules replaces the render rules. It does not change the container
// style.
func WithRules(r goldmark.Rules) Option {
	return func(p *Pipeline) { p.renderer = goldmark.New(r) }
}

// WithFooter appends footer to every article. Relative image paths in the
// footer resolve against dir.
func WithFooter(footer, dir string) Option {
	return func(p *Pipeline) {
		p.footer = footer
		p.footerDir = dir
	}
}

// WithAuthor sets the default article author.
func WithAuthor(author string) Option {
	return func(p *Pipeline) { p.author = author }
}

// WithConverter sets the block tree converter.
func WithConverter(c *markdown.Converter) Option {
	return func(p *Pipeline) { p.converter = c }
}

// New creates a Pipeline. source may be nil when only local documents are
// published.
func New(source notionpub.BlockSource, stager notionpub.MediaStager, uploader notionpub.MediaUploader, drafts notionpub.DraftCreator, opts ...Option) *Pipeline {
	styles := notionpub.DefaultStyleSheet()
	p := &Pipeline{
		source:    source,
		stager:    stager,
		uploader:  uploader,
		drafts:    drafts,
		converter: markdown.NewConverter(),
		renderer:  goldmark.New(goldmark.DefaultRules(styles)),
		container: styles.Container,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// source is the loaded content of an input before post-processing.
type source struct {
	title   string
	markup  string
	baseDir string // resolves relative image paths; empty for pages
	meta    markdown.Meta
}

// Run publishes in as a draft.
func (p *Pipeline) Run(ctx context.Context, in Input) (Result, error) {
	src, err := p.load(ctx, in)
	if err != nil {
		return Result{}, err
	}
	markup := src.markup

	if p.footer != "" {
		p.logger.Info("appending footer", "dir", p.footerDir)
		markup = markdown.AppendFooter(markup, p.footer, p.footerDir)
	}

	title := src.title
	if in.Title != "" {
		title = in.Title
	}

	res := Result{Title: title}
	if !in.DryRun {
		markup = p.rehostImages(ctx, markup, src.baseDir, &res)
	}
	res.Markup = markup

	p.logger.Info("rendering content")
	body, err := p.renderer.Render(markup)
	if err != nil {
		return Result{}, fmt.Errorf("render: %w", err)
	}
	res.HTML = goldmark.Wrap(body, p.container)

	fallback := firstNonEmpty(in.Digest, src.meta.Digest, notionpub.DefaultDigest)
	if in.DryRun {
		res.Digest = fallback
		return res, nil
	}

	cover := firstNonEmpty(in.CoverPath, resolveRef(src.meta.Cover, src.baseDir))
	thumb, err := p.uploadCover(ctx, cover)
	if err != nil {
		return Result{}, err
	}

	res.Digest = p.digest(ctx, markup, fallback)

	article := notionpub.Article{
		Title:           title,
		Author:          firstNonEmpty(src.meta.Author, p.author),
		Digest:          res.Digest,
		Content:         res.HTML,
		ThumbMediaID:    thumb,
		NeedOpenComment: true,
	}
	p.logger.Info("creating draft", "title", title)
	id, err := p.drafts.CreateDraft(ctx, article)
	if err != nil {
		return Result{}, fmt.Errorf("create draft: %w", err)
	}
	res.MediaID = id
	p.logger.Info("draft created", "media_id", id)
	return res, nil
}

func (p *Pipeline) load(ctx context.Context, in Input) (source, error) {
	switch {
	case in.PageID != "" && in.Path != "":
		return source{}, fmt.Errorf("both page and file given: %w", notionpub.ErrValidation)
	case in.Path != "":
		p.logger.Info("reading local file", "path", in.Path)
		data, err := os.ReadFile(in.Path)
		if err != nil {
			return source{}, fmt.Errorf("read %s: %w", in.Path, err)
		}
		doc, err := markdown.ParseDocument(data)
		if err != nil {
			return source{}, fmt.Errorf("%s: %w", in.Path, err)
		}
		return source{
			title:   doc.Title(UntitledDraft),
			markup:  doc.Body,
			baseDir: filepath.Dir(in.Path),
			meta:    doc.Meta,
		}, nil
	case in.PageID != "":
		if p.source == nil {
			return source{}, errors.New("no content source configured")
		}
		p.logger.Info("fetching page", "page_id", in.PageID)
		title, err := p.source.PageTitle(ctx, in.PageID)
		if err != nil {
			return source{}, fmt.Errorf("page title: %w", err)
		}
		p.logger.Info("fetched title", "title", title)
		blocks, err := p.source.Blocks(ctx, in.PageID)
		if err != nil {
			return source{}, fmt.Errorf("page blocks: %w", err)
		}
		markup, err := p.converter.Convert(blocks)
		if err != nil {
			return source{}, fmt.Errorf("convert: %w", err)
		}
		return source{title: title, markup: markup}, nil
	default:
		return source{}, fmt.Errorf("no page or file given: %w", notionpub.ErrValidation)
	}
}

// rehostImages uploads every distinct image in markup and replaces its
// references with the hosted URL. Images that fail are logged and left
// unchanged.
func (p *Pipeline) rehostImages(ctx context.Context, markup, baseDir string, res *Result) string {
	refs := markdown.ImageRefs(markup)
	if len(refs) > 0 {
		p.logger.Info("processing images", "count", len(refs))
	}
	for i, ref := range refs {
		log := p.logger.With("image", i+1, "of", len(refs), "ref", ref)
		url, err := p.rehost(ctx, resolveRef(ref, baseDir))
		if err != nil {
			log.Warn("skipping image", "err", err)
			res.Skipped = append(res.Skipped, ref)
			continue
		}
		markup = markdown.ReplaceRef(markup, ref, url)
		res.Uploaded++
		log.Debug("uploaded image", "url", url)
	}
	return markup
}

func (p *Pipeline) rehost(ctx context.Context, ref string) (string, error) {
	path, cleanup, err := p.stager.Stage(ctx, ref)
	if err != nil {
		return "", err
	}
	defer cleanup()
	url, err := p.uploader.UploadImage(ctx, path)
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", errors.New("upload returned no URL")
	}
	return url, nil
}

// uploadCover returns the media ID of the cover, or "" when there is no
// usable cover. Only the upload itself is fatal.
func (p *Pipeline) uploadCover(ctx context.Context, cover string) (string, error) {
	if cover == "" {
		p.logger.Warn("no cover image provided; publishing might fail")
		return "", nil
	}
	path, cleanup, err := p.stager.Stage(ctx, cover)
	if err != nil {
		p.logger.Warn("cover image unavailable; publishing might fail", "cover", cover, "err", err)
		return "", nil
	}
	defer cleanup()
	p.logger.Info("uploading cover", "cover", cover)
	id, err := p.uploader.UploadCover(ctx, path)
	if err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}
	return id, nil
}

// digest returns a generated digest when a summarizer is configured and
// succeeds, otherwise fallback.
func (p *Pipeline) digest(ctx context.Context, markup, fallback string) string {
	if p.summarizer == nil {
		return fallback
	}
	p.logger.Info("generating digest")
	raw, err := p.summarizer.Summarize(ctx, markup)
	if err != nil {
		p.logger.Warn("digest generation failed; using fallback", "err", err)
		return fallback
	}
	d := notionpub.CleanDigest(raw)
	if d == "" {
		p.logger.Warn("digest empty after cleanup; using fallback")
		return fallback
	}
	p.logger.Info("generated digest", "digest", d)
	return d
}

// resolveRef makes a relative local reference absolute against baseDir.
func resolveRef(ref, baseDir string) string {
	if ref == "" || baseDir == "" || strings.HasPrefix(ref, "http") || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(baseDir, ref)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
