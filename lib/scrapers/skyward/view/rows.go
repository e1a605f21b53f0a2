package view

import (
	"strings"
	"unicode/utf8"

	"skyward-backend/lib/gradebook"
	"skyward-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

type rowOutcome int

const (
	// the row held a complete assignment
	rowParsed rowOutcome = iota
	// the row named an assignment but its grade could not be read
	rowUngraded
	// the row did not describe an assignment
	rowSkipped
)

type rowResult struct {
	outcome    rowOutcome
	assignment gradebook.Assignment
	reason     string
}

func skipRow(reason string) rowResult {
	return rowResult{outcome: rowSkipped, reason: reason}
}

// splitPoints splits "<earned> out of <possible>".
func splitPoints(text string) (string, string, bool) {
	earned, possible, ok := strings.Cut(text, " out of ")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(earned), strings.TrimSpace(possible), true
}

// parseRegularRow reads a row of the all grades table, its cells are
// date, name, letter grade, percent and points.
func parseRegularRow(row *goquery.Selection) rowResult {
	cells := htmlutil.CellTexts(row)
	if len(cells) < 2 {
		return skipRow("missing date or name")
	}
	date := cells[0]
	name := htmlutil.NormalizeSpace(cells[1])

	if len(cells) < 5 {
		return rowResult{
			outcome:    rowUngraded,
			assignment: gradebook.NewUngradedAssignment(name, date),
			reason:     "missing grade cells",
		}
	}
	earned, possible, ok := splitPoints(cells[4])
	if !ok {
		return rowResult{
			outcome:    rowUngraded,
			assignment: gradebook.NewUngradedAssignment(name, date),
			reason:     "no points",
		}
	}

	return rowResult{
		outcome:    rowParsed,
		assignment: gradebook.NewAssignment(name, earned, possible, cells[2], date),
	}
}

// parseMajorRow reads a row of the major grades table. The first cell looks
// like "<name>: <letter grade>...", the third holds the points. The table
// has no dates so the start of the semester is used.
func parseMajorRow(row *goquery.Selection, semesterStart string) rowResult {
	cells := htmlutil.CellTexts(row)
	if len(cells) < 1 {
		return skipRow("no cells")
	}

	desc := strings.ReplaceAll(cells[0], "\n", "")
	name, rest, ok := strings.Cut(desc, ":")
	if !ok {
		return skipRow("no ':' in description")
	}
	rest = strings.TrimLeft(rest, " ")
	if rest == "" {
		return skipRow("no letter grade in description")
	}
	letter, _ := utf8.DecodeRuneInString(rest)
	name = htmlutil.NormalizeSpace(strings.TrimSpace(name))

	if len(cells) < 3 {
		return rowResult{
			outcome:    rowUngraded,
			assignment: gradebook.NewUngradedAssignment(name, semesterStart),
			reason:     "missing points cell",
		}
	}
	earned, possible, ok := splitPoints(cells[2])
	if !ok {
		return rowResult{
			outcome:    rowUngraded,
			assignment: gradebook.NewUngradedAssignment(name, semesterStart),
			reason:     "no points",
		}
	}

	return rowResult{
		outcome:    rowParsed,
		assignment: gradebook.NewAssignment(name, earned, possible, string(letter), semesterStart),
	}
}
