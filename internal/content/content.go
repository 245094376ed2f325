// Package content loads the site catalog: site metadata and the list of
// works, kept in a YAML file embedded in the binary.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/folio/pkg/slug"
	"github.com/dmitrymomot/folio/pkg/worklist"
)

//go:embed site.yaml
var embedded embed.FS

// DefaultFile is the catalog file name inside the embedded FS.
const DefaultFile = "site.yaml"

// Site is the loaded catalog.
type Site struct {
	Title       string
	Description string
	Author      string
	BaseURL     string
	Locale      string
	// BioHTML is the rendered author biography.
	BioHTML string
	Works   []worklist.Item
}

// Work returns the work with the given slug.
func (s *Site) Work(slug string) (worklist.Item, bool) {
	for _, w := range s.Works {
		if w.Slug == slug {
			return w, true
		}
	}
	return worklist.Item{}, false
}

// URL returns the absolute URL of path on the site.
func (s *Site) URL(path string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

type rawSite struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Author      string    `yaml:"author"`
	BaseURL     string    `yaml:"base_url"`
	Locale      string    `yaml:"locale"`
	Bio         string    `yaml:"bio"`
	Works       []rawWork `yaml:"works"`
}

type rawWork struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`
	Kind  string `yaml:"kind"`
	Venue string `yaml:"venue"`
	Date  string `yaml:"date"`
	Words int    `yaml:"words"`
	Color string `yaml:"color"`
	Blurb string `yaml:"blurb"`
}

var (
	colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	slugRe  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

var md = goldmark.New(goldmark.WithExtensions(extension.Typographer))

// Default loads the embedded catalog.
func Default() (*Site, error) {
	return Load(embedded, DefaultFile)
}

// Load reads and validates the catalog file name from fsys. Works keep their
// file order; sorting is up to the caller.
func Load(fsys fs.FS, name string) (*Site, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrReadCatalog, err)
	}
	return Parse(data)
}

// Parse decodes a catalog from YAML bytes.
func Parse(data []byte) (*Site, error) {
	var raw rawSite
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrReadCatalog, err)
	}

	if err := raw.validate(); err != nil {
		return nil, err
	}

	bio, err := render(raw.Bio)
	if err != nil {
		return nil, err
	}

	site := &Site{
		Title:       raw.Title,
		Description: strings.TrimSpace(raw.Description),
		Author:      raw.Author,
		BaseURL:     strings.TrimSuffix(raw.BaseURL, "/"),
		Locale:      raw.Locale,
		BioHTML:     bio,
		Works:       make([]worklist.Item, 0, len(raw.Works)),
	}
	if site.Locale == "" {
		site.Locale = "en"
	}

	seen := make(map[string]bool, len(raw.Works))
	for i, w := range raw.Works {
		s := w.Slug
		if s == "" {
			s = slug.Make(w.Title)
		}
		if seen[s] {
			return nil, fmt.Errorf("%w: works[%d]: duplicate slug %q", ErrInvalidCatalog, i, s)
		}
		seen[s] = true

		blurb, err := render(w.Blurb)
		if err != nil {
			return nil, fmt.Errorf("works[%d]: %w", i, err)
		}
		site.Works = append(site.Works, worklist.Item{
			Slug:      s,
			Title:     w.Title,
			Kind:      w.Kind,
			Venue:     w.Venue,
			Date:      w.Date,
			WordCount: w.Words,
			Color:     strings.ToLower(w.Color),
			BlurbHTML: blurb,
		})
	}
	return site, nil
}

// WithBaseURL returns a copy of s served from base.
func (s *Site) WithBaseURL(base string) (*Site, error) {
	if err := validateBaseURL(base); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	cp := *s
	cp.BaseURL = strings.TrimSuffix(base, "/")
	return &cp, nil
}

func (r rawSite) validate() error {
	var errs []error
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if strings.TrimSpace(r.Author) == "" {
		errs = append(errs, errors.New("author is required"))
	}
	if err := validateBaseURL(r.BaseURL); err != nil {
		errs = append(errs, err)
	}
	for i, w := range r.Works {
		if err := w.validate(); err != nil {
			errs = append(errs, fmt.Errorf("works[%d]: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidCatalog}, errs...)...)
	}
	return nil
}

func (w rawWork) validate() error {
	var errs []error
	if strings.TrimSpace(w.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	} else if w.Slug == "" && slug.Make(w.Title) == "" {
		errs = append(errs, fmt.Errorf("title %q has no usable slug", w.Title))
	}
	// Slugs become a single path segment both in routes and in export paths.
	if w.Slug != "" && !slugRe.MatchString(w.Slug) {
		errs = append(errs, fmt.Errorf("slug %q must be lower-case letters, digits and single hyphens", w.Slug))
	}
	if _, err := time.Parse(time.DateOnly, w.Date); err != nil {
		errs = append(errs, fmt.Errorf("date %q is not YYYY-MM-DD", w.Date))
	}
	if w.Words < 0 {
		errs = append(errs, fmt.Errorf("words must not be negative, got %d", w.Words))
	}
	if w.Color != "" && !colorRe.MatchString(w.Color) {
		errs = append(errs, fmt.Errorf("color %q is not #rrggbb", w.Color))
	}
	return errors.Join(errs...)
}

func validateBaseURL(base string) error {
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute http(s) URL", base)
	}
	return nil
}

func render(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Join(ErrRenderMarkdown, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
