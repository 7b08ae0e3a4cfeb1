package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"swapers-hq/lpmon/pkg/provider"
	"swapers-hq/lpmon/pkg/runner"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output.
	FormatCSV OutputFormat = "csv"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", NewConfigError("format", fmt.Sprintf("unsupported output format %q (supported: text, json, csv)", s))
	}
}

// ReportWriter renders a batch report.
type ReportWriter interface {
	WriteReport(w io.Writer, report *runner.Report) error
}

// NewReportWriter returns the writer for format. verbose only affects text.
func NewReportWriter(format OutputFormat, verbose bool) (ReportWriter, error) {
	switch format {
	case FormatText, "":
		return &TextReportWriter{Verbose: verbose}, nil
	case FormatJSON:
		return &JSONReportWriter{Indent: true}, nil
	case FormatCSV:
		return &CSVReportWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// TextReportWriter prints per-provider lines when Verbose and a summary.
type TextReportWriter struct {
	Verbose bool
}

// WriteReport writes the verbose lines, if enabled, followed by the summary.
func (t *TextReportWriter) WriteReport(w io.Writer, report *runner.Report) error {
	if t.Verbose {
		for _, e := range report.Entries {
			if _, err := fmt.Fprintln(w, VerboseLine(e)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, SummaryLine(report))
	return err
}

// VerboseLine formats one report entry.
func VerboseLine(e runner.Entry) string {
	head := fmt.Sprintf("%-12s | kind=%-6s", e.Record.DisplayName(), e.Record.Kind)
	if e.Err != nil {
		return fmt.Sprintf("%s | error: %v", head, e.Err)
	}

	line := fmt.Sprintf("%s | is_avail=%-5t (%s) | recv=%-5t send=%-5t | %dms | via=%s",
		head,
		e.Result.Available, e.Result.Code,
		e.Modes.CanReceive, e.Modes.CanSend,
		e.Result.ElapsedMS,
		e.Result.Via(),
	)
	if e.PersistErr != nil {
		line += fmt.Sprintf(" | persist_error: %v", e.PersistErr)
	}
	return line
}

// SummaryLine formats the closing "[APPLIED] checked=N ok=N changed=N" line.
func SummaryLine(report *runner.Report) string {
	head := "APPLIED"
	if report.DryRun {
		head = "DRY-RUN"
	}
	s := report.Summary()
	line := fmt.Sprintf("[%s] checked=%d ok=%d changed=%d", head, s.Checked, s.OK, s.Changed)
	if s.TimedOut > 0 {
		line += fmt.Sprintf(" timed_out=%d", s.TimedOut)
	}
	if s.Canceled > 0 {
		line += fmt.Sprintf(" canceled=%d", s.Canceled)
	}
	if s.Errors > 0 {
		line += fmt.Sprintf(" errors=%d", s.Errors)
	}
	if s.PersistErrors > 0 {
		line += fmt.Sprintf(" persist_errors=%d", s.PersistErrors)
	}
	return line
}

// JSONReportWriter encodes the report with its summary.
type JSONReportWriter struct {
	Indent bool
}

type jsonEntry struct {
	runner.Entry
	Error        string `json:"error,omitempty"`
	PersistError string `json:"persist_error,omitempty"`
}

type jsonReport struct {
	*runner.Report
	Entries []jsonEntry    `json:"entries"`
	Summary runner.Summary `json:"summary"`
}

// WriteReport encodes the report as a single JSON document. Entry errors are
// flattened to strings.
func (j *JSONReportWriter) WriteReport(w io.Writer, report *runner.Report) error {
	out := jsonReport{Report: report, Summary: report.Summary(), Entries: make([]jsonEntry, len(report.Entries))}
	for i, e := range report.Entries {
		out.Entries[i] = jsonEntry{Entry: e}
		if e.Err != nil {
			out.Entries[i].Error = e.Err.Error()
		}
		if e.PersistErr != nil {
			out.Entries[i].PersistError = e.PersistErr.Error()
		}
	}

	enc := json.NewEncoder(w)
	if j.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

// CSVReportWriter writes one row per entry.
type CSVReportWriter struct{}

var reportHeader = []string{
	"provider", "name", "kind", "available", "code", "can_receive", "can_send",
	"elapsed_ms", "via", "changed", "timed_out", "error",
}

// WriteReport writes a header row and one row per entry. The error column
// holds the check error, or the persist error when the check succeeded.
func (c *CSVReportWriter) WriteReport(w io.Writer, report *runner.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, e := range report.Entries {
		errText := ""
		switch {
		case e.Err != nil:
			errText = e.Err.Error()
		case e.PersistErr != nil:
			errText = e.PersistErr.Error()
		}
		row := []string{
			e.Record.ID,
			e.Record.DisplayName(),
			string(e.Record.Kind),
			strconv.FormatBool(e.Result.Available),
			string(e.Result.Code),
			strconv.FormatBool(e.Modes.CanReceive),
			strconv.FormatBool(e.Modes.CanSend),
			strconv.FormatInt(e.Result.ElapsedMS, 10),
			e.Result.Via(),
			strconv.FormatBool(e.Changed),
			strconv.FormatBool(e.TimedOut),
			errText,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProviders renders stored records for "providers list".
func WriteProviders(w io.Writer, format OutputFormat, records []provider.Record) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)

	case FormatCSV:
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"provider", "name", "kind", "available", "can_receive", "can_send", "home_visible"})
		for _, r := range records {
			_ = cw.Write([]string{
				r.ID, r.DisplayName(), string(r.Kind),
				strconv.FormatBool(r.IsAvailable),
				strconv.FormatBool(r.CanReceive),
				strconv.FormatBool(r.CanSend),
				strconv.FormatBool(r.HomeVisible),
			})
		}
		cw.Flush()
		return cw.Error()

	default:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PROVIDER\tNAME\tKIND\tAVAILABLE\tRECV\tSEND\tHOME")
		for _, r := range records {
			modes := provider.ComputeModes(r.IsAvailable, r.CanReceive, r.CanSend)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\t%t\t%t\n",
				r.ID, r.DisplayName(), r.Kind, r.IsAvailable, modes.CanReceive, modes.CanSend, r.HomeVisible)
		}
		return tw.Flush()
	}
}
