package gradebook

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var ErrIdentityMismatch = errors.New("gradebook: operation only defined between the same class")

// ClassGradeSet holds the assignments of one class. Title is the display
// title given by the portal and is the only thing used to decide whether two
// sets describe the same class.
type ClassGradeSet struct {
	Title       string       `json:"title"`
	Assignments []Assignment `json:"assignments"`
}

func NewClassGradeSet(title string, assignments ...Assignment) ClassGradeSet {
	return ClassGradeSet{
		Title:       title,
		Assignments: assignments,
	}
}

func (c *ClassGradeSet) Add(assignments ...Assignment) {
	c.Assignments = append(c.Assignments, assignments...)
}

// SortDescending sorts the assignments most recent first, which is the
// order the portal displays them in. Assignments from the same day keep
// their relative order.
func (c *ClassGradeSet) SortDescending() {
	slices.SortStableFunc(c.Assignments, byDateDescending)
}

func (c ClassGradeSet) checkIdentity(op string, other ClassGradeSet) error {
	if c.Title != other.Title {
		return fmt.Errorf("%w: %s between %q and %q", ErrIdentityMismatch, op, c.Title, other.Title)
	}
	return nil
}

// Union returns a new set containing the assignments of both sets, c first.
func (c ClassGradeSet) Union(other ClassGradeSet) (ClassGradeSet, error) {
	if err := c.checkIdentity("union", other); err != nil {
		return ClassGradeSet{}, err
	}
	assignments := make([]Assignment, 0, len(c.Assignments)+len(other.Assignments))
	assignments = append(assignments, c.Assignments...)
	assignments = append(assignments, other.Assignments...)
	return NewClassGradeSet(c.Title, assignments...), nil
}

// Difference returns a new set with the assignments in c that do not appear
// in other.
func (c ClassGradeSet) Difference(other ClassGradeSet) (ClassGradeSet, error) {
	if err := c.checkIdentity("difference", other); err != nil {
		return ClassGradeSet{}, err
	}
	assignments := make([]Assignment, 0)
	for _, a := range c.Assignments {
		if !slices.Contains(other.Assignments, a) {
			assignments = append(assignments, a)
		}
	}
	return NewClassGradeSet(c.Title, assignments...), nil
}

// Lines renders each assignment on its own line.
func (c ClassGradeSet) Lines() []string {
	lines := make([]string, len(c.Assignments))
	for i, a := range c.Assignments {
		lines[i] = a.String()
	}
	return lines
}

func (c ClassGradeSet) String() string {
	var out strings.Builder
	out.WriteString(c.Title)
	out.WriteString(":")
	for _, line := range c.Lines() {
		out.WriteString("\n\t")
		out.WriteString(line)
	}
	return out.String()
}

// ClassTitle is the structured form of a portal class title, which looks
// like "CLASS NAME (Period 3) TEACHER NAME".
type ClassTitle struct {
	Name    string
	Period  int
	Teacher string
}

var classTitleRegex = regexp.MustCompile(`^(.+?) \(Period (\d+)\) (.+)$`)

func ParseClassTitle(title string) (ClassTitle, bool) {
	groups := classTitleRegex.FindStringSubmatch(strings.TrimSpace(title))
	if len(groups) < 4 {
		return ClassTitle{}, false
	}
	period, err := strconv.Atoi(groups[2])
	if err != nil {
		return ClassTitle{}, false
	}
	return ClassTitle{
		Name:    groups[1],
		Period:  period,
		Teacher: groups[3],
	}, true
}

func (t ClassTitle) String() string {
	return fmt.Sprintf("%s (Period %d) %s", t.Name, t.Period, t.Teacher)
}

// SortByPeriod orders classes by their period. Classes whose title does not
// carry a period are moved to the end.
func SortByPeriod(classes []ClassGradeSet) {
	slices.SortStableFunc(classes, func(a, b ClassGradeSet) int {
		at, aok := ParseClassTitle(a.Title)
		bt, bok := ParseClassTitle(b.Title)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		return at.Period - bt.Period
	})
}

// Find returns the class with the exact given title.
func Find(classes []ClassGradeSet, title string) (ClassGradeSet, bool) {
	for _, c := range classes {
		if c.Title == title {
			return c, true
		}
	}
	return ClassGradeSet{}, false
}
