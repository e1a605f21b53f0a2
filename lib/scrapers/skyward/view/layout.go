package view

import (
	"github.com/PuerkitoBio/goquery"

	"skyward-backend/lib/scrapers/skyward/core"
)

const (
	stage_gradebook_page  = "gradebook page"
	stage_grade_trigger   = "grade trigger"
	stage_class_heading   = "class heading"
	stage_semester_header = "semester header"
	stage_summary_row     = "summary row"
	stage_scope_cells     = "scope cells"
)

// scopeCellSelector matches the two cells of the grade dialog that hold its
// tables. The first holds the major grades (exams, projects) and the second
// every graded assignment of the semester.
const scopeCellSelector = `td[style="padding-right:4px"]`

type scopes struct {
	major *goquery.Selection
	all   *goquery.Selection
}

func findScopes(doc *goquery.Selection) (scopes, error) {
	cells := doc.Find(scopeCellSelector)
	if cells.Length() != 2 {
		return scopes{}, core.Malformed(
			stage_scope_cells,
			"expected 2 cells matching %s, got %d",
			scopeCellSelector, cells.Length(),
		)
	}
	return scopes{
		major: cells.Eq(0),
		all:   cells.Eq(1),
	}, nil
}

// regularRows are the rows of every graded assignment. Rows marked
// zebra-same belong to a category header and are not assignments.
func (s scopes) regularRows() *goquery.Selection {
	return s.all.Find(".even, .odd").FilterFunction(func(_ int, row *goquery.Selection) bool {
		_, same := row.Attr("zebra-same")
		return !same
	})
}

func (s scopes) majorRows() *goquery.Selection {
	return s.major.Find(".even, .odd").FilterFunction(func(_ int, row *goquery.Selection) bool {
		same, _ := row.Attr("zebra-same")
		return same == "true"
	})
}
