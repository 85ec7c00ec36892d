package source

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/bmatcuk/doublestar/v4"
	readability "github.com/go-shiori/go-readability"
)

// Document is a loaded piece of documentation ready for the pipeline.
type Document struct {
	// Name is a human-readable label: the page title for URLs, the base
	// file name otherwise.
	Name string

	// Source is the file path or URL the document came from.
	Source string

	// Text is the plain-text (or markdown) content.
	Text string
}

// Loader reads documentation from local files and URLs. HTML is converted
// to markdown; URLs go through readability extraction to strip navigation
// and boilerplate before conversion.
type Loader struct {
	converter   *md.Converter
	httpTimeout time.Duration
	logger      *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPTimeout sets the fetch timeout for URL sources.
func WithHTTPTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.httpTimeout = d
	}
}

// WithLoaderLogger sets the logger.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a document loader.
func NewLoader(opts ...LoaderOption) *Loader {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	l := &Loader{
		converter:   converter,
		httpTimeout: 30 * time.Second,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a document from a file path or URL.
//
// URLs are fetched and reduced to their readable article content. Local
// .html/.htm files are converted to markdown; .txt and .md files are read
// as-is. Other extensions are rejected.
func (l *Loader) Load(ref string) (Document, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.loadURL(ref)
	}
	return l.loadFile(ref)
}

func (l *Loader) loadURL(url string) (Document, error) {
	article, err := readability.FromURL(url, l.httpTimeout)
	if err != nil {
		return Document{}, fmt.Errorf("fetch %s: %w", url, err)
	}

	name := article.Title
	if name == "" {
		name = url
	}

	l.logger.Debug("Loaded URL source",
		"url", url,
		"title", article.Title,
		"chars", len(article.TextContent))

	return Document{
		Name:   name,
		Source: url,
		Text:   article.TextContent,
	}, nil
}

func (l *Loader) loadFile(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	doc := Document{
		Name:   filepath.Base(path),
		Source: path,
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
		doc.Text = string(content)
	case ".html", ".htm":
		markdown, err := l.converter.ConvertString(string(content))
		if err != nil {
			return Document{}, fmt.Errorf("convert %s: %w", path, err)
		}
		doc.Text = markdown
	default:
		return Document{}, fmt.Errorf("unsupported file type: %s", path)
	}

	return doc, nil
}

// Expand resolves a mix of literal paths and glob patterns (with **
// support) into a deduplicated, ordered file list. A literal path is
// returned as-is; a pattern matching nothing contributes nothing.
func Expand(refs []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	for _, ref := range refs {
		if !strings.ContainsAny(ref, "*?[{") {
			add(ref)
			continue
		}

		matches, err := doublestar.FilepathGlob(ref)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", ref, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}
