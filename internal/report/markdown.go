package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/pwaffinity/internal/fingerprint"
	"github.com/nao1215/pwaffinity/internal/model"
)

// closeDistance is the distance below which a password is structurally
// almost identical to a reference center.
const closeDistance = 2.0

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAnalyses(md, report)
	w.writeCharacterClasses(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with reference set information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Password Affinity Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Reference Centers", "`" + report.CentersSource + "`"},
			{"Center Count", strconv.Itoa(report.CenterCount)},
			{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		},
	})
	md.PlainText("")
	md.Note("Reference digest (MD5): `" + report.CentersDigest + "`. Distances are only comparable between reports with the same digest.")
	md.PlainText("")
}

// writeAnalyses writes the analysis table and an alert on close matches.
func (w *MarkdownWriter) writeAnalyses(md *markdown.Markdown, report *model.Report) {
	md.H2("Analyses")
	md.PlainText("")

	if len(report.Analyses) == 0 {
		md.PlainText("No passwords analyzed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Analyses))
	exact, near := 0, 0
	for i, a := range report.Analyses {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			"`" + a.Label + "`",
			strconv.Itoa(a.Length),
			"`" + a.Fingerprint + "`",
			FormatDistance(a.Distance),
		}
		switch {
		case a.Distance == 0:
			exact++
		case a.Distance < closeDistance:
			near++
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Password", "Length", "Fingerprint", "Distance"},
		Rows:   rows,
	})
	md.PlainText("")

	s := report.Summary()
	md.BulletList(
		"Min distance: "+FormatDistance(s.Min),
		"Max distance: "+FormatDistance(s.Max),
		"Mean distance: "+FormatDistance(s.Mean),
	)
	md.PlainText("")

	switch {
	case exact > 0:
		md.Cautionf("%d password(s) share their exact structure with a reference center.", exact)
	case near > 0:
		md.Warningf("%d password(s) are within distance %.0f of a reference center.", near, closeDistance)
	default:
		md.Tip("No password is structurally close to a reference center.")
	}
	md.PlainText("")
}

// writeCharacterClasses writes a mermaid pie chart of character classes.
func (w *MarkdownWriter) writeCharacterClasses(md *markdown.Markdown, report *model.Report) {
	h := report.CodeHistogram()
	total := 0
	for _, n := range h {
		total += n
	}
	if total == 0 {
		return
	}

	md.H2("Character Classes")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Character Class Distribution"),
		piechart.WithShowData(true),
	)
	for code := fingerprint.CodeFrequentLower; code <= fingerprint.MaxCode; code++ {
		if h[code] > 0 {
			chart.LabelAndIntValue(code.String(), uint64(h[code])) //nolint:gosec // counts are non-negative
		}
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pwaffinity](https://github.com/nao1215/pwaffinity)*")
}
