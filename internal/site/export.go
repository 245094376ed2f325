package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/folio/handler"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/worklist"
)

var (
	// ErrExport wraps filesystem and render failures during Export.
	ErrExport = errors.New("failed to export site")
	// ErrUnknownRoute is returned for a path that is not a page.
	ErrUnknownRoute = errors.New("unknown page route")
)

// pageView returns the component served at route.
func (s *Site) pageView(route string) (handler.TemplComponent, error) {
	switch route {
	case "/":
		return s.homeView(), nil
	case "/works":
		return s.worksView(worklist.SortByDate), nil
	case "/names":
		v, err := s.nameView(nameRequest{})
		return s.layout(namesMeta, widgetBody(v)), err
	case "/prompts":
		v, err := s.promptView(promptRequest{})
		return s.layout(promptsMeta, widgetBody(v)), err
	}
	if slug, ok := strings.CutPrefix(route, "/works/"); ok {
		if it, ok := s.content.Work(slug); ok {
			return s.workView(it), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, route)
}

// outputPath maps a route to the file a static host serves for it.
func outputPath(route string) string {
	p := strings.Trim(route, "/")
	if p == "" {
		return "index.html"
	}
	return path.Join(p, "index.html")
}

// Export renders every page to outDir/<route>/index.html, writes a 404.html
// and copies the static assets under outDir/static.
func Export(ctx context.Context, s *Site, outDir string) error {
	start := time.Now()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Join(ErrExport, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	routes := s.Routes()
	for _, route := range routes {
		g.Go(func() error {
			view, err := s.pageView(route)
			if err != nil {
				return err
			}
			return writeComponent(gctx, filepath.Join(outDir, filepath.FromSlash(outputPath(route))), view)
		})
	}
	g.Go(func() error {
		view := s.layout(pageMeta{Path: "/404.html", Title: http.StatusText(http.StatusNotFound)},
			errorBody(handler.ErrorPageParams{StatusCode: http.StatusNotFound, Message: http.StatusText(http.StatusNotFound)}))
		return writeComponent(gctx, filepath.Join(outDir, "404.html"), view)
	})
	g.Go(func() error {
		return copyFS(gctx, filepath.Join(outDir, "static"), s.static)
	})
	if err := g.Wait(); err != nil {
		return errors.Join(ErrExport, err)
	}

	s.log.InfoContext(ctx, "site exported",
		logger.File(outDir),
		logger.Count("pages", len(routes)+1),
		logger.Duration(time.Since(start)),
	)
	return nil
}

func writeComponent(ctx context.Context, dst string, c handler.TemplComponent) error {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return fmt.Errorf("render %s: %w", dst, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, buf.Bytes(), 0o644)
}

// copyFS copies every file of fsys under dir, overwriting existing files.
func copyFS(ctx context.Context, dir string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		dst := filepath.Join(dir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0o644)
	})
}
