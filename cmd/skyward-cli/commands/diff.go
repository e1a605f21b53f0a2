package commands

import (
	"fmt"
	"os"

	"skyward-backend/lib/gradebook"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(diffCmd)
}

// newAssignments returns, per class, the assignments that are not part of
// the previous export. Classes without anything new are left out.
func newAssignments(current []gradebook.ClassGradeSet, previous gradebook.Export) ([]gradebook.ClassGradeSet, error) {
	previousClasses := previous.Classes()

	var out []gradebook.ClassGradeSet
	for _, class := range current {
		before, ok := gradebook.Find(previousClasses, class.Title)
		if !ok {
			before = gradebook.NewClassGradeSet(class.Title)
		}
		added, err := class.Difference(before)
		if err != nil {
			return nil, err
		}
		if len(added.Assignments) > 0 {
			out = append(out, added)
		}
	}
	return out, nil
}

var diffCmd = &cobra.Command{
	Use:   "diff <previous.json>",
	Short: "Prints the assignments that were added since a previous `grades --json`.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contents, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		previous, err := gradebook.ParseExport(contents)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		classes, err := retrieve(cmd.Context())
		if err != nil {
			return err
		}
		gradebook.SortByPeriod(classes)

		added, err := newAssignments(classes, previous)
		if err != nil {
			return err
		}
		if len(added) == 0 {
			fmt.Println("no new assignments")
			return nil
		}
		for _, class := range added {
			printClass(class)
		}
		return nil
	},
}
