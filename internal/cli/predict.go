package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Show proactive messages for the current time of day",
		Long:  "Predict the session's needs from recent moods at this time of day, usual workout times and common foods.",
		Run:   runPredict,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (required)")
	cmd.MarkFlagRequired("session")

	RootCmd.AddCommand(cmd)
}

func runPredict(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")

	a := openApp()
	defer a.Close()

	messages := a.learner.Predict(cmd.Context(), session)
	if textOutput() {
		for _, m := range messages {
			fmt.Println(m)
		}
		return
	}
	printJSON(messages)
}
