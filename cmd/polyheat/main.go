package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"polyheat/adapters/excel"
	"polyheat/adapters/heatmap"
	"polyheat/app"
	"polyheat/domain/fit"
	"polyheat/domain/predicate"
	"polyheat/internal/report"
	"polyheat/ports"
	"polyheat/ui"
)

func main() {
	// Optional .env for local defaults; absence is fine
	if err := godotenv.Load(); err == nil {
		log.Printf("[polyheat] loaded .env")
	}

	var (
		leftPath    = flag.String("left", "", "path to the left fit result (JSON)")
		rightPath   = flag.String("right", "", "path to the right fit result (JSON)")
		outPath     = flag.String("out", "heatmap.png", "heatmap PNG output path")
		summaryPath = flag.String("summary", "", "companion summary plot PNG path (optional)")
		xlsxPath    = flag.String("xlsx", "", "workbook export path (optional)")
		reportPath  = flag.String("report", "", "HTML report path (optional)")

		threshold   = flag.Float64("threshold", 0, "mean-difference magnitude threshold (default 0.01)")
		minDOF      = flag.Int("min-dof", 0, "minimum degree of functionality (default 1)")
		maxDOF      = flag.Int("max-dof", 0, "maximum degree of functionality (0 = unbounded)")
		mustExpress = flag.String("must-express", "", "marker groups, e.g. \"A,B;C\" = (A+ & B+) or C+")
		rowFilter   = flag.String("filter", "", "subject filter, e.g. \"arm=vaccine|placebo\"")
		annotations = flag.String("annotations", "", "comma-separated metadata columns for row annotation")

		layout    = flag.String("layout", string(ports.LayoutPolar), "heatmap layout: polar or grid")
		rowLabels = flag.Bool("row-labels", false, "show row labels")
		colLabels = flag.Bool("col-labels", false, "show column labels")

		serveAddr = flag.String("serve", "", "run the HTTP viewer on this address instead of one-shot mode")
	)
	flag.Parse()

	service := app.NewComparisonService(&heatmap.Renderer{})

	if *serveAddr != "" || os.Getenv("POLYHEAT_ADDR") != "" {
		addr := *serveAddr
		if addr == "" {
			addr = os.Getenv("POLYHEAT_ADDR")
		}
		server := ui.NewServer(service, ui.Config{Addr: addr})
		log.Fatal(server.Start())
	}

	if *leftPath == "" || *rightPath == "" {
		fmt.Fprintln(os.Stderr, "polyheat: -left and -right are required")
		flag.Usage()
		os.Exit(2)
	}

	left, err := readFit(*leftPath)
	if err != nil {
		log.Fatalf("[polyheat] %v", err)
	}
	right, err := readFit(*rightPath)
	if err != nil {
		log.Fatalf("[polyheat] %v", err)
	}

	req := app.CompareRequest{
		Left:             left,
		Right:            right,
		Annotations:      splitList(*annotations),
		Threshold:        *threshold,
		MinDOF:           *minDOF,
		MaxDOF:           *maxDOF,
		MustExpress:      parseMustExpress(*mustExpress),
		RowFilter:        parseRowFilter(*rowFilter),
		ShowRowLabels:    *rowLabels,
		ShowColumnLabels: *colLabels,
		Layout:           ports.LayoutMode(*layout),
	}

	cmp, err := service.Compare(context.Background(), req)
	if err != nil {
		log.Fatalf("[polyheat] compare: %v", err)
	}
	log.Printf("[polyheat] comparison %s: %d subjects x %d categories", cmp.ID, cmp.Diff.Rows(), cmp.Diff.Cols())

	// Fan the outputs out concurrently; each writes an independent file.
	var g errgroup.Group
	g.Go(func() error {
		return writeFile(*outPath, func(f *os.File) error {
			return cmp.Graphic.WritePNG(f)
		})
	})
	if *summaryPath != "" {
		g.Go(func() error {
			return writeFile(*summaryPath, func(f *os.File) error {
				return heatmap.WriteSummaryPNG(cmp.Diff, *colLabels, f)
			})
		})
	}
	if *xlsxPath != "" {
		g.Go(func() error {
			exporter := &excel.Exporter{}
			return writeFile(*xlsxPath, func(f *os.File) error {
				return exporter.Write(cmp.Diff, cmp.Categories, f)
			})
		})
	}
	if *reportPath != "" {
		g.Go(func() error {
			return writeFile(*reportPath, func(f *os.File) error {
				_, err := f.Write(report.HTML(report.Build(cmp)))
				return err
			})
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("[polyheat] write outputs: %v", err)
	}
	log.Printf("[polyheat] wrote %s", *outPath)
}

func readFit(path string) (*fit.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	res, err := fit.ReadResult(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return res, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// parseMustExpress parses "A,B;C" into (A+ & B+) or (C+): semicolons
// separate alternative groups, commas join co-expressed markers.
func parseMustExpress(s string) []predicate.MarkerPredicate {
	if s == "" {
		return nil
	}
	var out []predicate.MarkerPredicate
	for _, group := range strings.Split(s, ";") {
		names := splitList(group)
		if len(names) == 0 {
			continue
		}
		if len(names) == 1 {
			out = append(out, predicate.Expressed(names[0]))
			continue
		}
		ps := make([]predicate.MarkerPredicate, len(names))
		for i, n := range names {
			ps[i] = predicate.Expressed(n)
		}
		out = append(out, predicate.AllOf(ps...))
	}
	return out
}

// parseRowFilter parses "col=a|b" into an In predicate
func parseRowFilter(s string) predicate.RowPredicate {
	if s == "" {
		return nil
	}
	col, vals, ok := strings.Cut(s, "=")
	if !ok {
		log.Fatalf("[polyheat] bad -filter %q: want col=v1|v2", s)
	}
	return predicate.In(strings.TrimSpace(col), strings.Split(vals, "|")...)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
