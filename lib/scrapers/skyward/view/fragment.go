package view

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"skyward-backend/lib/gradebook"
	"skyward-backend/lib/htmlutil"
	"skyward-backend/lib/scrapers/skyward/core"

	"github.com/PuerkitoBio/goquery"
)

// semesterStart reads the start of the semester from the header of the
// grade dialog which looks like "(08/20/18 - 01/18/19)".
func semesterStart(doc *goquery.Selection) (string, error) {
	header := doc.Find("th").First()
	if header.Length() == 0 {
		return "", core.Malformed(stage_semester_header, "no th")
	}
	span := header.Find("span").First()
	if span.Length() == 0 {
		return "", core.Malformed(stage_semester_header, "no span in first th")
	}

	dateRange := htmlutil.GetText(span.Nodes[0])
	dateRange = strings.ReplaceAll(dateRange, "(", "")
	dateRange = strings.ReplaceAll(dateRange, ")", "")
	start, _, _ := strings.Cut(dateRange, " - ")
	start = strings.TrimSpace(start)
	if start == "" {
		return "", core.Malformed(stage_semester_header, "empty date range")
	}
	return start, nil
}

// semesterSummary reads the letter grade and percent of the whole semester
// out of the first odd row of the dialog.
func semesterSummary(doc *goquery.Selection, semester int, start string) (gradebook.Assignment, error) {
	row := doc.Find(".odd").First()
	if row.Length() == 0 {
		return gradebook.Assignment{}, core.Malformed(stage_summary_row, "no .odd row")
	}

	var values []string
	for _, cell := range htmlutil.CellTexts(row) {
		if cell != "" {
			values = append(values, cell)
		}
	}
	if len(values) < 2 {
		values = htmlutil.Lines(htmlutil.GetText(row.Nodes[0]))
	}
	if len(values) < 2 {
		return gradebook.Assignment{}, core.Malformed(
			stage_summary_row,
			"expected a letter grade and a percent, got %q", values,
		)
	}

	return gradebook.NewAssignment(
		fmt.Sprintf("SEM%d", semester),
		values[1],
		"100",
		values[0],
		start,
	), nil
}

// ParseGradeFragment parses the grade dialog of one class for one semester.
// Rows that cannot be read are skipped or recorded without a grade, a
// missing structural element fails the whole fragment.
func ParseGradeFragment(ctx context.Context, fragment string, semester int) (gradebook.ClassGradeSet, error) {
	ctx, span := tracer.Start(ctx, "ParseGradeFragment")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return gradebook.ClassGradeSet{}, err
	}
	root := doc.Selection

	heading := root.Find(".gb_heading").First()
	if heading.Length() == 0 {
		return gradebook.ClassGradeSet{}, core.Malformed(stage_class_heading, "no .gb_heading")
	}
	title := strings.TrimSpace(htmlutil.NormalizeSpace(htmlutil.GetText(heading.Nodes[0])))

	start, err := semesterStart(root)
	if err != nil {
		return gradebook.ClassGradeSet{}, err
	}
	summary, err := semesterSummary(root, semester, start)
	if err != nil {
		return gradebook.ClassGradeSet{}, err
	}
	scope, err := findScopes(root)
	if err != nil {
		return gradebook.ClassGradeSet{}, err
	}

	class := gradebook.NewClassGradeSet(title, summary)
	collect := func(kind string, result rowResult) {
		switch result.outcome {
		case rowParsed:
			class.Add(result.assignment)
		case rowUngraded:
			slog.DebugContext(ctx, "assignment without grade", "class", title, "kind", kind, "reason", result.reason)
			class.Add(result.assignment)
		case rowSkipped:
			slog.DebugContext(ctx, "skipped row", "class", title, "kind", kind, "reason", result.reason)
		}
	}

	scope.regularRows().Each(func(_ int, row *goquery.Selection) {
		collect("regular", parseRegularRow(row))
	})
	scope.majorRows().Each(func(_ int, row *goquery.Selection) {
		collect("major", parseMajorRow(row, start))
	})

	class.SortDescending()
	return class, nil
}
