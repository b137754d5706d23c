package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/coach-engine/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Show a session's learned pattern",
		Run:   runPattern,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (required)")
	cmd.Flags().Bool("no-log", false, "Omit the raw interaction log")
	cmd.MarkFlagRequired("session")

	RootCmd.AddCommand(cmd)
}

func runPattern(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	noLog, _ := cmd.Flags().GetBool("no-log")

	a := openApp()
	defer a.Close()

	p, ok := a.learner.Pattern(cmd.Context(), session)
	if !ok {
		exitErr("pattern "+session, store.ErrNotFound)
	}
	if noLog {
		p.Log = nil
	}
	printJSON(p)
}
