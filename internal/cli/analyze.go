package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/coach-engine/internal/analyzer"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze [message]",
		Short: "Analyze a message without responding",
		Long:  "Print the intent, entities, sentiment, urgency and complexity of a message. Nothing is recorded.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAnalyze,
	}

	cmd.Flags().StringP("session", "s", "", "Use this session's history depth for complexity scoring")

	RootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	msg := strings.Join(args, " ")

	historyLen := 0
	if session != "" {
		a := openApp()
		defer a.Close()
		historyLen = len(a.memory.History(cmd.Context(), session))
	}

	printJSON(analyzer.Analyze(msg, historyLen))
}
