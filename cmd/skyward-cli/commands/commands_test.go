package commands

import (
	"bytes"
	"context"
	"testing"

	"skyward-backend/lib/gradebook"

	"github.com/google/go-cmp/cmp"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/require"
)

var testClasses = []gradebook.ClassGradeSet{
	gradebook.NewClassGradeSet(
		"ALGEBRA 2 (Period 2) JONES",
		gradebook.NewAssignment("Test 1", "40", "50", "B", "09/20/18"),
		gradebook.NewAssignment("SEM1", "88", "100", "B", "08/20/18"),
	),
	gradebook.NewClassGradeSet(
		"ENGLISH 9 (Period 1) SMITH",
		gradebook.NewAssignment("Essay 1", "19", "20", "A", "09/04/18"),
	),
}

func TestFilterClass(t *testing.T) {
	classes, err := filterClass(testClasses, "english")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.Equal(t, "ENGLISH 9 (Period 1) SMITH", classes[0].Title)

	_, err = filterClass(nil, "english")
	require.Error(t, err)
}

func TestSemesterGrades(t *testing.T) {
	classes := semesterGrades(testClasses)
	require.Len(t, classes, 2)
	require.Equal(t, []gradebook.Assignment{testClasses[0].Assignments[1]}, classes[0].Assignments)
	require.Empty(t, classes[1].Assignments)
}

func TestNewAssignments(t *testing.T) {
	previous := gradebook.Export{
		"ALGEBRA 2 (Period 2) JONES": {testClasses[0].Assignments[1]},
		"ENGLISH 9 (Period 1) SMITH": testClasses[1].Assignments,
	}
	added, err := newAssignments(testClasses, previous)
	require.NoError(t, err)

	expected := []gradebook.ClassGradeSet{
		gradebook.NewClassGradeSet("ALGEBRA 2 (Period 2) JONES", testClasses[0].Assignments[0]),
	}
	if diff := cmp.Diff(expected, added); diff != "" {
		t.Fatal("unexpected new assignments (-want +got):\n", diff)
	}

	// a class missing from the previous export is entirely new
	added, err = newAssignments(testClasses, gradebook.Export{})
	require.NoError(t, err)
	require.Len(t, added, 2)
}

func TestClassRows(t *testing.T) {
	class := gradebook.NewClassGradeSet(
		"ALGEBRA 2 (Period 2) JONES",
		gradebook.NewAssignment("Test 1", "40", "50", "B", "09/20/18"),
		gradebook.NewUngradedAssignment("Test 2", "09/27/18"),
	)
	require.Equal(t, []table.Row{
		{"09/20/2018", "Test 1", "40/50", "B"},
		{"09/27/2018", "Test 2", "not graded", ""},
	}, classRows(class))
}

func TestExecuteContextReturnsError(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--config", t.TempDir() + "/skyward.json5", "diff"})
	defer rootCmd.SetArgs(nil)

	err := ExecuteContext(context.Background())
	require.Error(t, err)
}
