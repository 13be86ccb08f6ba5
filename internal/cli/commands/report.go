package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sheinsight/transform-import-declaration-plugin/internal/cli/output"
	"github.com/sheinsight/transform-import-declaration-plugin/internal/workspace"
)

// File statuses shown in reports.
const (
	statusRewritten    = "rewritten"
	statusWouldRewrite = "would rewrite"
	statusUnchanged    = "unchanged"
	statusFailed       = "failed"
)

type fileReport struct {
	Path   string `json:"path" yaml:"path"`
	Status string `json:"status" yaml:"status"`
	Cached bool   `json:"cached,omitempty" yaml:"cached,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

type summaryReport struct {
	Files      int   `json:"files" yaml:"files"`
	Changed    int   `json:"changed" yaml:"changed"`
	Failed     int   `json:"failed" yaml:"failed"`
	Cached     int   `json:"cached" yaml:"cached"`
	DurationMS int64 `json:"duration_ms" yaml:"duration_ms"`
}

type runReport struct {
	Files   []fileReport  `json:"files" yaml:"files"`
	Summary summaryReport `json:"summary" yaml:"summary"`
}

func statusOf(res workspace.FileResult, dryRun bool) string {
	switch {
	case res.Err != nil:
		return statusFailed
	case !res.Changed:
		return statusUnchanged
	case dryRun:
		return statusWouldRewrite
	default:
		return statusRewritten
	}
}

func buildReport(results []workspace.FileResult, elapsed time.Duration, dryRun, withOutput bool) runReport {
	s := workspace.Summarize(results, elapsed)
	rep := runReport{
		Files: make([]fileReport, 0, len(results)),
		Summary: summaryReport{
			Files:      s.Files,
			Changed:    s.Changed,
			Failed:     s.Failed,
			Cached:     s.Cached,
			DurationMS: elapsed.Milliseconds(),
		},
	}
	for _, res := range results {
		fr := fileReport{Path: res.Path, Status: statusOf(res, dryRun), Cached: res.Cached}
		if res.Err != nil {
			fr.Error = res.Err.Error()
		}
		if withOutput && res.Changed {
			fr.Output = res.Output
		}
		rep.Files = append(rep.Files, fr)
	}
	return rep
}

// renderReport writes a run report. Text mode lists only files that changed
// or failed, followed by a summary line.
func renderReport(r *output.Renderer, rep runReport) error {
	if handled, err := r.Structured(rep); handled {
		return err
	}

	var rows []table.Row
	for _, f := range rep.Files {
		if f.Status == statusUnchanged {
			continue
		}
		rows = append(rows, table.Row{f.Path, f.Status, f.Error})
	}
	if len(rows) > 0 {
		r.Table(table.Row{"File", "Status", "Detail"}, rows)
	}

	s := rep.Summary
	r.Printf("%d of %d files changed", s.Changed, s.Files)
	if s.Failed > 0 {
		r.Printf(", %d failed", s.Failed)
	}
	if s.Cached > 0 {
		r.Printf(", %d from cache", s.Cached)
	}
	r.Printf(" (%s)\n", time.Duration(s.DurationMS)*time.Millisecond)
	return nil
}

// renderDiffs writes the rewritten content of changed files, each preceded
// by a header naming the file. Failures go to the error writer.
func renderDiffs(r *output.Renderer, rep runReport) {
	for _, f := range rep.Files {
		if f.Error != "" {
			r.Notef("%s: %s", f.Path, f.Error)
			continue
		}
		if f.Output == "" {
			continue
		}
		r.Printf("==> %s <==\n", f.Path)
		r.Printf("%s", f.Output)
	}
}

// failure turns a report into the command's error, if any.
func failure(rep runReport) error {
	if rep.Summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed", rep.Summary.Failed)
	}
	return nil
}
