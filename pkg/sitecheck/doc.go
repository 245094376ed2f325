// Package sitecheck verifies an exported site before it ships.
//
// Run walks every .html file under a directory, parses it with
// golang.org/x/net/html and applies a set of Checks concurrently. Each check
// has a Severity: hard findings fail the build, soft findings are reported as
// warnings. DefaultChecks covers search metadata, accessibility basics and
// HTML/JS sanity:
//
//	report, err := sitecheck.Run(ctx, "dist")
//	if err != nil {
//		return err
//	}
//	if report.Failed() {
//		os.Exit(1)
//	}
package sitecheck
