package compare

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"perf-report/lib/benchtable"
	"perf-report/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("perfreport.lib.compare")

// benchmark tables are tagged with this class on the comparison page,
// the table name comes from the element id
const tableSelector = "table.benchmark-table"

// fixed column order of a benchmark table row
const (
	colName = iota
	colProfile
	colScenario
	colBackend
	colTarget
	colChange
	colThreshold
	colFactor
	colBeforeRaw
	colAfterRaw

	columnCount
)

// ParseHTML parses a captured comparison page into its benchmark
// tables. Tables that cannot be parsed are skipped with a diagnostic,
// they never fail the page.
func ParseHTML(ctx context.Context, page string) ([]benchtable.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}
	return ParseDocument(ctx, doc), nil
}

// ParseDocument walks a loaded comparison page and extracts every
// benchmark table with a parsable body.
func ParseDocument(ctx context.Context, doc *goquery.Document) []benchtable.Table {
	ctx, span := tracer.Start(ctx, "ParseDocument")
	defer span.End()

	var tables []benchtable.Table
	doc.Find(tableSelector).Each(func(_ int, sel *goquery.Selection) {
		id := sel.AttrOr("id", "")
		if id == "" {
			slog.WarnContext(ctx, "skipping benchmark table without an id")
			return
		}
		name := strings.TrimPrefix(id, "summary-")

		results, err := parseTableBody(sel)
		if err != nil {
			slog.WarnContext(ctx, "skipping unparsable benchmark table", "table", name, "err", err)
			return
		}
		tables = append(tables, benchtable.Table{
			Name:    name,
			Results: results,
		})
	})

	return tables
}

func parseTableBody(table *goquery.Selection) ([]benchtable.Result, error) {
	body := table.Find("tbody")
	if body.Length() == 0 {
		return nil, fmt.Errorf("table has no body")
	}

	var results []benchtable.Result
	var rowErr error
	body.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		result, err := parseRow(row)
		if err != nil {
			rowErr = fmt.Errorf("row %d: %w", i, err)
			return false
		}
		results = append(results, result)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return results, nil
}

func parseRow(row *goquery.Selection) (benchtable.Result, error) {
	cells := row.Find("td")
	if cells.Length() < columnCount {
		return benchtable.Result{}, fmt.Errorf("expected %d cells, got %d", columnCount, cells.Length())
	}

	text := make([]string, columnCount)
	for i := range text {
		text[i] = htmlutil.CleanText(cells.Eq(i))
	}

	change, err := benchtable.ParsePercent(text[colChange])
	if err != nil {
		return benchtable.Result{}, err
	}
	threshold, err := benchtable.ParsePercent(text[colThreshold])
	if err != nil {
		return benchtable.Result{}, err
	}
	factor, err := benchtable.ParseFactor(text[colFactor])
	if err != nil {
		return benchtable.Result{}, err
	}
	before, err := benchtable.ParseCount(text[colBeforeRaw])
	if err != nil {
		return benchtable.Result{}, err
	}
	after, err := benchtable.ParseCount(text[colAfterRaw])
	if err != nil {
		return benchtable.Result{}, err
	}

	return benchtable.Result{
		Name:                  text[colName],
		Profile:               text[colProfile],
		Scenario:              text[colScenario],
		Backend:               text[colBackend],
		Target:                text[colTarget],
		Change:                change,
		SignificanceThreshold: threshold,
		SignificanceFactor:    factor,
		BeforeRaw:             before,
		AfterRaw:              after,
	}, nil
}
