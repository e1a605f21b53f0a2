package gradebook

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const physics = "PHYSICS (Period 2) SMITH, JOHN"

func sampleClass() ClassGradeSet {
	return NewClassGradeSet(
		physics,
		NewAssignment("SEM1", "93.5", "100", "A", "08/15/18"),
		NewAssignment("Lab 1", "9", "10", "A", "09/01/18"),
		NewAssignment("Lab 2", "*", "*", "*", "not dated"),
		NewAssignment("Quiz 1", "7", "10", "C", "09/20/18"),
		NewAssignment("Quiz 2", "8", "10", "B", "09/01/18"),
	)
}

func TestSortDescending(t *testing.T) {
	class := sampleClass()
	class.SortDescending()

	names := make([]string, len(class.Assignments))
	for i, a := range class.Assignments {
		names[i] = a.Name
	}
	diff := cmp.Diff([]string{"Quiz 1", "Lab 1", "Quiz 2", "SEM1", "Lab 2"}, names)
	if diff != "" {
		t.Fatal(diff)
	}

	once := append([]Assignment(nil), class.Assignments...)
	class.SortDescending()
	require.Equal(t, once, class.Assignments)
}

func TestDifference(t *testing.T) {
	class := sampleClass()

	empty, err := class.Difference(class)
	require.NoError(t, err)
	require.Empty(t, empty.Assignments)
	require.Equal(t, physics, empty.Title)

	old := NewClassGradeSet(physics, class.Assignments[:2]...)
	added, err := class.Difference(old)
	require.NoError(t, err)
	require.Equal(t, class.Assignments[2:], added.Assignments)

	// a changed score counts as a new assignment
	regraded := NewClassGradeSet(physics, NewAssignment("Quiz 1", "8", "10", "B", "09/20/18"))
	added, err = regraded.Difference(class)
	require.NoError(t, err)
	require.Len(t, added.Assignments, 1)
}

func TestSetAlgebraIdentity(t *testing.T) {
	class := sampleClass()
	other := NewClassGradeSet("CHEMISTRY (Period 3) DOE, JANE")

	_, err := class.Difference(other)
	require.True(t, errors.Is(err, ErrIdentityMismatch))

	_, err = class.Union(other)
	require.True(t, errors.Is(err, ErrIdentityMismatch))
}

func TestUnion(t *testing.T) {
	sem1 := NewClassGradeSet(physics, NewAssignment("SEM1", "90", "100", "A", "08/15/18"))
	sem2 := NewClassGradeSet(physics, NewAssignment("SEM2", "80", "100", "B", "01/20/19"))

	both, err := sem1.Union(sem2)
	require.NoError(t, err)
	require.Equal(t, []Assignment{sem1.Assignments[0], sem2.Assignments[0]}, both.Assignments)
	require.Len(t, sem1.Assignments, 1)
}

func TestClassString(t *testing.T) {
	class := NewClassGradeSet(
		physics,
		NewAssignment("Lab 1", "9", "10", "A", "09/01/18"),
		NewUngradedAssignment("Lab 2", "09/02/18"),
	)
	expected := physics + ":\n" +
		"\t(09/01/2018) Lab 1 9/10 (A)\n" +
		"\t(09/02/2018) Lab 2 */* (*)"
	require.Equal(t, expected, class.String())
}

func TestParseClassTitle(t *testing.T) {
	title, ok := ParseClassTitle(physics)
	require.True(t, ok)
	require.Equal(t, ClassTitle{Name: "PHYSICS", Period: 2, Teacher: "SMITH, JOHN"}, title)
	require.Equal(t, physics, title.String())

	_, ok = ParseClassTitle("HOMEROOM")
	require.False(t, ok)
}

func TestSortByPeriod(t *testing.T) {
	classes := []ClassGradeSet{
		NewClassGradeSet("ADVISORY"),
		NewClassGradeSet("ENGLISH 10 (Period 4) BROWN, AL"),
		NewClassGradeSet(physics),
		NewClassGradeSet("ALGEBRA II (Period 1) WHITE, EVE"),
	}
	SortByPeriod(classes)

	titles := make([]string, len(classes))
	for i, c := range classes {
		titles[i] = c.Title
	}
	require.Equal(t, []string{
		"ALGEBRA II (Period 1) WHITE, EVE",
		physics,
		"ENGLISH 10 (Period 4) BROWN, AL",
		"ADVISORY",
	}, titles)
}

func TestExportRoundTrip(t *testing.T) {
	class := sampleClass()
	data, err := NewExport([]ClassGradeSet{class}).Marshal()
	require.NoError(t, err)
	require.Contains(t, string(data), `"letter_grade": "A"`)

	parsed, err := ParseExport(data)
	require.NoError(t, err)
	classes := parsed.Classes()
	require.Len(t, classes, 1)

	found, ok := Find(classes, physics)
	require.True(t, ok)
	diff, err := class.Difference(found)
	require.NoError(t, err)
	require.Empty(t, diff.Assignments)
}
