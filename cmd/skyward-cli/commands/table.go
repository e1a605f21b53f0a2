package commands

import (
	"os"

	"skyward-backend/lib/gradebook"

	"github.com/jedib0t/go-pretty/v6/table"
)

func printClass(class gradebook.ClassGradeSet) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(class.Title)
	t.AppendHeader(table.Row{"Date", "Assignment", "Points", "Grade"})

	t.AppendRows(classRows(class))

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func classRows(class gradebook.ClassGradeSet) []table.Row {
	rows := make([]table.Row, len(class.Assignments))
	for i, a := range class.Assignments {
		if !a.Graded() {
			rows[i] = table.Row{a.Date, a.Name, "not graded", ""}
			continue
		}
		rows[i] = table.Row{a.Date, a.Name, a.Earned + "/" + a.Possible, a.LetterGrade}
	}
	return rows
}
