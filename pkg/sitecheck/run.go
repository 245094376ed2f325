package sitecheck

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Run checks every .html file under dir. With no checks it uses DefaultChecks.
func Run(ctx context.Context, dir string, checks ...Check) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return RunFS(ctx, os.DirFS(dir), checks...)
}

// RunFS is Run over an fs.FS rooted at the site root.
func RunFS(ctx context.Context, fsys fs.FS, checks ...Check) (*Report, error) {
	if len(checks) == 0 {
		checks = DefaultChecks()
	}

	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), ".html") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoDocuments
	}
	slices.Sort(files)

	perFile := make([][]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := parse(fsys, file)
			if err != nil {
				return err
			}
			perFile[i] = runChecks(doc, checks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Files: files}
	for _, rs := range perFile {
		report.Results = append(report.Results, rs...)
	}
	slices.SortStableFunc(report.Results, func(a, b Result) int {
		return cmp.Compare(b.Severity, a.Severity)
	})
	return report, nil
}

func parse(fsys fs.FS, file string) (*Document, error) {
	f, err := fsys.Open(file)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	defer func() { _ = f.Close() }()

	root, err := html.Parse(f)
	if err != nil {
		return nil, errors.Join(ErrParse, fmt.Errorf("%s: %w", file, err))
	}
	return &Document{Path: file, Root: root, FS: fsys}, nil
}

func runChecks(doc *Document, checks []Check) []Result {
	var out []Result
	for _, c := range checks {
		for _, msg := range c.Run(doc) {
			out = append(out, Result{Check: c.Name, Severity: c.Severity, File: doc.Path, Message: msg})
		}
	}
	return out
}
