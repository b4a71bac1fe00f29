// Package report builds the markdown/HTML summary that accompanies a
// rendered comparison: the surviving categories with per-category
// summary statistics of the difference matrix.
package report

import (
	"fmt"
	"strings"

	"polyheat/app"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/montanaflynn/stats"
)

// Build renders the comparison summary as markdown
func Build(cmp *app.Comparison) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Differential response comparison %s\n\n", cmp.ID)
	fmt.Fprintf(&b, "Generated %s in %dms.\n\n", cmp.CreatedAt, cmp.RuntimeMs)
	fmt.Fprintf(&b, "%d subjects, %d categories after filtering.\n\n", cmp.Diff.Rows(), cmp.Diff.Cols())

	for _, w := range cmp.Warnings {
		fmt.Fprintf(&b, "> **Warning:** %s\n\n", w)
	}

	b.WriteString("## Categories\n\n")
	b.WriteString("| category | DOF | mean diff | median diff | sd diff |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for j, label := range cmp.Categories.Labels {
		col := cmp.Diff.Column(j)
		mean, _ := stats.Mean(col)
		median, _ := stats.Median(col)
		sd, _ := stats.StandardDeviation(col)
		fmt.Fprintf(&b, "| `%s` | %d | %.4f | %.4f | %.4f |\n", label, label.DOF(), mean, median, sd)
	}
	b.WriteString("\n")

	if cmp.Annotation != nil {
		b.WriteString("## Row annotation\n\n")
		fmt.Fprintf(&b, "Rows ordered by: %s\n\n", strings.Join(cmp.Annotation.Columns[1:], ", "))
	}

	b.WriteString("## Subjects\n\n")
	for _, id := range cmp.RowOrder {
		fmt.Fprintf(&b, "- %s\n", id)
	}
	return b.String()
}

// HTML renders the markdown summary as an HTML document body
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
