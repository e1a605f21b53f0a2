package commands

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"skyward-backend/lib/gradebook"
	"skyward-backend/lib/textutil"

	"github.com/spf13/cobra"
)

var gradesClass *string
var gradesJson *bool
var gradesSemOnly *bool

func init() {
	gradesClass = gradesCmd.Flags().String("class", "", "Only show the class with the closest matching title.")
	gradesJson = gradesCmd.Flags().Bool("json", false, "Print the grades as JSON.")
	gradesSemOnly = gradesCmd.Flags().Bool("sem-only", false, "Only show semester grades.")
	rootCmd.AddCommand(gradesCmd)
}

var semesterGradeRegex = regexp.MustCompile(`^SEM\d$`)

// filterClass picks the class whose title is most similar to query.
func filterClass(classes []gradebook.ClassGradeSet, query string) ([]gradebook.ClassGradeSet, error) {
	titles := make([]string, len(classes))
	for i, c := range classes {
		titles[i] = c.Title
	}
	idx, similarity := textutil.BestMatch(query, titles)
	if idx < 0 {
		return nil, fmt.Errorf("no class matches %q", query)
	}
	slog.Debug("matched class", "query", query, "title", titles[idx], "similarity", similarity)
	return classes[idx : idx+1], nil
}

func semesterGrades(classes []gradebook.ClassGradeSet) []gradebook.ClassGradeSet {
	out := make([]gradebook.ClassGradeSet, len(classes))
	for i, c := range classes {
		out[i] = gradebook.NewClassGradeSet(c.Title)
		for _, a := range c.Assignments {
			if semesterGradeRegex.MatchString(a.Name) {
				out[i].Add(a)
			}
		}
	}
	return out
}

var gradesCmd = &cobra.Command{
	Use:   "grades [--class <name>] [--json] [--sem-only]",
	Short: "Prints the grades of every class.",
	RunE: func(cmd *cobra.Command, args []string) error {
		classes, err := retrieve(cmd.Context())
		if err != nil {
			return err
		}
		gradebook.SortByPeriod(classes)

		if *gradesClass != "" {
			classes, err = filterClass(classes, *gradesClass)
			if err != nil {
				return err
			}
		}
		if *gradesSemOnly {
			classes = semesterGrades(classes)
		}

		if *gradesJson {
			out, err := gradebook.NewExport(classes).Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, string(out))
			return err
		}

		for _, class := range classes {
			printClass(class)
		}
		return nil
	},
}
