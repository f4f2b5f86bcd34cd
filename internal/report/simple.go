package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/pwaffinity/internal/fingerprint"
	"github.com/nao1215/pwaffinity/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// Analyses are rendered as a table followed by a distance summary.
type SimpleWriter struct {
	baseWriter

	// verbose adds the character-class breakdown.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeAnalyses(&sb, report)
	w.writeSummary(&sb, report)
	if w.verbose {
		w.writeCodes(&sb, report)
	}

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the reference set information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	fmt.Fprintf(sb, "Reference centers: %s (%d)\n", report.CentersSource, report.CenterCount)
	fmt.Fprintf(sb, "Centers digest:    %s\n", report.CentersDigest)
	fmt.Fprintf(sb, "Generated:         %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
}

// writeAnalyses writes one table row per analysis.
func (w *SimpleWriter) writeAnalyses(sb *strings.Builder, report *model.Report) {
	if len(report.Analyses) == 0 {
		sb.WriteString("No passwords analyzed.\n")
		return
	}

	rows := make([][]string, len(report.Analyses))
	truncated := 0
	for i, a := range report.Analyses {
		length := strconv.Itoa(a.Length)
		if a.Truncated() {
			length += "*"
			truncated++
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			a.Label,
			length,
			a.Fingerprint,
			FormatDistance(a.Distance),
		}
	}

	sb.WriteString(RenderTable(
		[]string{"#", "Password", "Length", "Fingerprint", "Distance"},
		rows,
		[]Alignment{AlignRight, AlignLeft, AlignRight, AlignLeft, AlignRight},
	))
	sb.WriteString("\n")

	if truncated > 0 {
		fmt.Fprintf(sb, "* only the first %d characters are fingerprinted\n", fingerprint.Length)
	}
}

// writeSummary writes distance statistics.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	s := report.Summary()
	if s.Count < 2 {
		return
	}
	fmt.Fprintf(sb, "\nDistance min %s, max %s, mean %s over %d passwords\n",
		FormatDistance(s.Min), FormatDistance(s.Max), FormatDistance(s.Mean), s.Count)
}

// writeCodes writes how often each character class occurred.
func (w *SimpleWriter) writeCodes(sb *strings.Builder, report *model.Report) {
	h := report.CodeHistogram()
	rows := make([][]string, 0, len(h))
	for code := fingerprint.CodeFrequentLower; code <= fingerprint.MaxCode; code++ {
		rows = append(rows, []string{
			strconv.Itoa(int(code)),
			code.String(),
			strconv.Itoa(h[code]),
		})
	}

	sb.WriteString("\n")
	sb.WriteString(RenderTable(
		[]string{"Code", "Class", "Characters"},
		rows,
		[]Alignment{AlignRight, AlignLeft, AlignRight},
	))
	sb.WriteString("\n")
}
