package gradebook

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel is the placeholder the portal (and the parser) use for a score
// that is not available yet.
const Sentinel = "*"

// dateLayout accepts both zero-padded and bare month/day numbers.
const dateLayout = "1/2/2006"

var ErrUnparsableDate = errors.New("gradebook: unparsable assignment date")

// Assignment is a single graded item as it appears on the portal.
//
// Scores are kept as strings since the portal mixes numbers with sentinel
// values. Date is always MM/DD/YYYY after construction.
type Assignment struct {
	Name        string `json:"name"`
	Earned      string `json:"earned"`
	Possible    string `json:"possible"`
	LetterGrade string `json:"letter_grade"`
	Date        string `json:"date"`
}

// NewAssignment constructs an Assignment, normalizing 2 digit years in the
// date to 4 digits. Every 2 digit year is assumed to be in the 21st century.
func NewAssignment(name, earned, possible, letterGrade, date string) Assignment {
	return Assignment{
		Name:        name,
		Earned:      earned,
		Possible:    possible,
		LetterGrade: letterGrade,
		Date:        NormalizeDate(date),
	}
}

// NewUngradedAssignment constructs an Assignment that carries no score.
func NewUngradedAssignment(name, date string) Assignment {
	return NewAssignment(name, Sentinel, Sentinel, Sentinel, date)
}

// NormalizeDate turns MM/DD/YY into MM/DD/20YY, anything else is returned
// as-is.
func NormalizeDate(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) != 3 || len(parts[2]) != 2 {
		return date
	}
	parts[2] = "20" + parts[2]
	return strings.Join(parts, "/")
}

func (a Assignment) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, a.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsableDate, a.Date)
	}
	return t, nil
}

// Graded reports whether the assignment has an actual score.
func (a Assignment) Graded() bool {
	return a.Earned != Sentinel
}

// Compare orders assignments by calendar date. Assignments on the same day
// are ordered by their remaining fields so that Compare returns 0 only when
// both assignments are equal field by field.
//
// Compare fails with ErrUnparsableDate if either date cannot be parsed.
func Compare(a, b Assignment) (int, error) {
	at, err := a.Time()
	if err != nil {
		return 0, err
	}
	bt, err := b.Time()
	if err != nil {
		return 0, err
	}
	if c := at.Compare(bt); c != 0 {
		return c, nil
	}
	return cmp.Or(
		cmp.Compare(a.Date, b.Date),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Earned, b.Earned),
		cmp.Compare(a.Possible, b.Possible),
		cmp.Compare(a.LetterGrade, b.LetterGrade),
	), nil
}

func (a Assignment) Less(b Assignment) (bool, error) {
	c, err := Compare(a, b)
	return c < 0, err
}

func (a Assignment) Greater(b Assignment) (bool, error) {
	c, err := Compare(a, b)
	return c > 0, err
}

func (a Assignment) Equal(b Assignment) bool {
	return a == b
}

// PointsString formats the score like "45/50 (A)".
func (a Assignment) PointsString() string {
	return fmt.Sprintf("%s/%s (%s)", a.Earned, a.Possible, a.LetterGrade)
}

func (a Assignment) String() string {
	return fmt.Sprintf("(%s) %s %s", a.Date, a.Name, a.PointsString())
}

// byDateDescending sorts most recent first. Assignments whose dates cannot
// be parsed are placed after every dated assignment.
func byDateDescending(a, b Assignment) int {
	at, aerr := a.Time()
	bt, berr := b.Time()
	switch {
	case aerr != nil && berr != nil:
		return 0
	case aerr != nil:
		return 1
	case berr != nil:
		return -1
	}
	return bt.Compare(at)
}
