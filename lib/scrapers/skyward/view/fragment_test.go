package view

import (
	"context"
	"strings"
	"testing"

	"skyward-backend/lib/gradebook"
	"skyward-backend/lib/scrapers/skyward/core"
	"skyward-backend/lib/testutil"

	_ "embed"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/grade_dialog.html
var gradeDialog string

var englishTitle = "ENGLISH 9 (Period 1) SMITH"

func englishSemester1() []gradebook.Assignment {
	return []gradebook.Assignment{
		gradebook.NewUngradedAssignment("Quiz 1", "09/10/18"),
		gradebook.NewAssignment("Essay 1", "19", "20", "A", "09/04/18"),
		gradebook.NewAssignment("Reading Log", "17", "20", "B", "08/28/18"),
		gradebook.NewAssignment("SEM1", "93.5", "100", "A", "08/20/18"),
		gradebook.NewAssignment("FINAL EXAM", "95", "100", "A", "08/20/18"),
		gradebook.NewUngradedAssignment("MIDTERM", "08/20/18"),
	}
}

func TestParseGradeFragment(t *testing.T) {
	cleanup := testutil.Setup(t, "scrapers/skyward/view")
	defer cleanup()

	ctx, span := tracer.Start(context.Background(), "TestParseGradeFragment")
	defer span.End()

	class, err := ParseGradeFragment(ctx, gradeDialog, 1)
	require.NoError(t, err)
	require.Equal(t, englishTitle, class.Title)

	if diff := cmp.Diff(englishSemester1(), class.Assignments); diff != "" {
		t.Fatal("unexpected assignments (-want +got):\n", diff)
	}
}

func TestParseGradeFragmentMalformed(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(string) string
		stage  string
	}{
		{
			name: "NoHeading",
			mutate: func(s string) string {
				return strings.Replace(s, "gb_heading", "heading", 1)
			},
			stage: stage_class_heading,
		},
		{
			name: "NoSemesterRange",
			mutate: func(s string) string {
				return strings.Replace(s, "<span>(08/20/18 - 01/18/19)</span>", "", 1)
			},
			stage: stage_semester_header,
		},
		{
			name: "NoSummaryRow",
			mutate: func(s string) string {
				return strings.ReplaceAll(s, `class="odd"`, `class="row"`)
			},
			stage: stage_summary_row,
		},
		{
			name: "MissingScopeCell",
			mutate: func(s string) string {
				return strings.Replace(s, `style="padding-right:4px"`, "", 1)
			},
			stage: stage_scope_cells,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseGradeFragment(context.Background(), c.mutate(gradeDialog), 1)
			require.ErrorIs(t, err, core.ErrMalformedResponse)

			var malformed *core.MalformedResponseError
			require.ErrorAs(t, err, &malformed)
			require.Equal(t, c.stage, malformed.Stage)
		})
	}
}

func TestParseMajorRow(t *testing.T) {
	cases := []struct {
		row      string
		outcome  rowOutcome
		expected gradebook.Assignment
	}{
		{
			row:      "<td>Unit\nTest:B+</td><td></td><td>8 out of 10</td>",
			outcome:  rowParsed,
			expected: gradebook.NewAssignment("UnitTest", "8", "10", "B", "01/22/19"),
		},
		{
			row:      "<td>Project: C</td>",
			outcome:  rowUngraded,
			expected: gradebook.NewUngradedAssignment("Project", "01/22/19"),
		},
		{row: "<td>Project:</td><td></td><td>8 out of 10</td>", outcome: rowSkipped},
		{row: "<td>Project</td>", outcome: rowSkipped},
	}

	for _, c := range cases {
		doc := parseTable(t, `<tr class="even" zebra-same="true">`+c.row+"</tr>")
		result := parseMajorRow(doc.Find("tr"), "01/22/19")
		require.Equal(t, c.outcome, result.outcome, c.row)
		if c.outcome != rowSkipped {
			require.Equal(t, c.expected, result.assignment, c.row)
		}
	}
}

func TestParseRegularRow(t *testing.T) {
	cases := []struct {
		row      string
		outcome  rowOutcome
		expected gradebook.Assignment
	}{
		{
			row:      "<td>1/5/19</td><td>Lab</td><td>A</td><td>100</td><td>5 out of 5</td>",
			outcome:  rowParsed,
			expected: gradebook.NewAssignment("Lab", "5", "5", "A", "1/5/19"),
		},
		{
			row:      "<td>01/05/19</td><td>Lab</td><td></td><td></td><td></td>",
			outcome:  rowUngraded,
			expected: gradebook.NewUngradedAssignment("Lab", "01/05/19"),
		},
		{
			row:      "<td>01/05/19</td><td>Lab&nbsp;2</td><td>B</td><td>80</td><td>4 out of 5</td>",
			outcome:  rowParsed,
			expected: gradebook.NewAssignment("Lab 2", "4", "5", "B", "01/05/19"),
		},
		{row: "<td>01/05/19</td>", outcome: rowSkipped},
	}

	for _, c := range cases {
		doc := parseTable(t, `<tr class="odd">`+c.row+"</tr>")
		result := parseRegularRow(doc.Find("tr"))
		require.Equal(t, c.outcome, result.outcome, c.row)
		if c.outcome != rowSkipped {
			require.Equal(t, c.expected, result.assignment, c.row)
		}
	}
}
