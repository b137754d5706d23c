package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored sessions",
		Run:   runSessions,
	}

	RootCmd.AddCommand(cmd)
}

func runSessions(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	sessions, err := a.store.Sessions(cmd.Context())
	if err != nil {
		exitErr("sessions", err)
	}

	if textOutput() {
		for _, s := range sessions {
			fmt.Printf("%s\t%d\t%s\n", s.SessionID, s.Interactions, s.LastActive.Format("2006-01-02 15:04"))
		}
		return
	}
	printJSON(sessions)
}
