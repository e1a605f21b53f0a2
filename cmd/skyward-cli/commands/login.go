package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Logs in and prints the tokens of the new session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, session, err := authenticate(cmd.Context())
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Token", "Value"})
		t.AppendRows([]table.Row{
			{"sessionid", session.SessionId},
			{"encses", session.EncSes},
			{"wfaacl", session.Wfaacl()},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
