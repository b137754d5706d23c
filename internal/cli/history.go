package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a session's recorded interactions",
		Run:   runHistory,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (required)")
	cmd.Flags().IntP("last", "l", 0, "Only the most recent N interactions (0 for all)")

	cmd.MarkFlagRequired("session")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	last, _ := cmd.Flags().GetInt("last")

	a := openApp()
	defer a.Close()

	history := a.memory.History(cmd.Context(), session)
	if last > 0 {
		history = a.memory.RecentContext(cmd.Context(), session, last)
	}

	if textOutput() {
		for _, in := range history {
			fmt.Printf("[%s] %s (%s, %s)\n", in.Timestamp.Format("2006-01-02 15:04"), in.UserMessage, in.Intent, in.Mood)
			fmt.Printf("  > %s\n", in.AIResponse)
		}
		return
	}
	printJSON(history)
}
