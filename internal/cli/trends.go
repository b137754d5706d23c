package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Summarize a session's satisfaction, intents and moods",
		Run:   runTrends,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (required)")
	cmd.MarkFlagRequired("session")

	RootCmd.AddCommand(cmd)
}

func runTrends(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")

	a := openApp()
	defer a.Close()

	printJSON(a.memory.Trends(cmd.Context(), session))
}
