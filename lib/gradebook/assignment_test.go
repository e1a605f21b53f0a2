package gradebook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	testCases := []struct {
		date     string
		expected string
	}{
		{date: "09/05/18", expected: "09/05/2018"},
		{date: "12/31/99", expected: "12/31/2099"},
		{date: "01/01/00", expected: "01/01/2000"},
		{date: "09/05/2018", expected: "09/05/2018"},
		{date: "9/5/18", expected: "9/5/2018"},
		{date: "", expected: ""},
		{date: "not a date", expected: "not a date"},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeDate(test.date), test.date)
		a := NewAssignment("hw", "1", "2", "A", test.date)
		require.Equal(t, test.expected, a.Date)
	}
}

func TestCompareTrichotomy(t *testing.T) {
	assignments := []Assignment{
		NewAssignment("Quiz 1", "9", "10", "A", "09/05/18"),
		NewAssignment("Quiz 2", "9", "10", "A", "09/05/18"),
		NewAssignment("Quiz 1", "8", "10", "B", "09/05/18"),
		NewAssignment("Essay", "45", "50", "A", "10/01/2018"),
		NewAssignment("Lab", "*", "*", "*", "1/7/19"),
		NewAssignment("Lab", "*", "*", "*", "01/07/19"),
	}

	for _, a := range assignments {
		for _, b := range assignments {
			less, err := a.Less(b)
			require.NoError(t, err)
			greater, err := a.Greater(b)
			require.NoError(t, err)
			equal := a.Equal(b)

			holds := 0
			for _, ok := range []bool{less, greater, equal} {
				if ok {
					holds++
				}
			}
			require.Equal(t, 1, holds, "%v vs %v", a, b)
		}
	}
}

func TestCompareByDate(t *testing.T) {
	early := NewAssignment("Z", "1", "1", "A", "01/15/2019")
	late := NewAssignment("A", "1", "1", "A", "02/01/2019")

	c, err := Compare(early, late)
	require.NoError(t, err)
	require.Equal(t, -1, c)

	c, err = Compare(late, early)
	require.NoError(t, err)
	require.Equal(t, 1, c)

	// calendar order, not string order
	december := NewAssignment("A", "1", "1", "A", "12/01/2018")
	c, err = Compare(december, early)
	require.NoError(t, err)
	require.Equal(t, -1, c)
}

func TestCompareUnparsable(t *testing.T) {
	a := NewAssignment("A", "1", "1", "A", "sometime")
	b := NewAssignment("B", "1", "1", "A", "never")

	_, err := Compare(a, b)
	require.True(t, errors.Is(err, ErrUnparsableDate))

	_, err = a.Less(NewAssignment("C", "1", "1", "A", "01/01/2019"))
	require.True(t, errors.Is(err, ErrUnparsableDate))
}

func TestAssignmentString(t *testing.T) {
	a := NewAssignment("Chapter 3 Test", "45", "50", "A", "10/03/18")
	require.Equal(t, "(10/03/2018) Chapter 3 Test 45/50 (A)", a.String())
	require.True(t, a.Graded())

	u := NewUngradedAssignment("Project", "10/04/18")
	require.Equal(t, "(10/04/2018) Project */* (*)", u.String())
	require.False(t, u.Graded())
}
