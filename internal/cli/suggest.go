package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/coach-engine/internal/engine"
)

func init() {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show learned suggestions for a context tag",
		Run:   runSuggest,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (required)")
	cmd.Flags().StringP("tag", "t", engine.TagWorkout, "Context tag: workout, nutrition, progress, motivation or general")
	cmd.MarkFlagRequired("session")

	RootCmd.AddCommand(cmd)
}

func runSuggest(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	tag, _ := cmd.Flags().GetString("tag")

	a := openApp()
	defer a.Close()

	suggestions := a.learner.SuggestionsFor(cmd.Context(), session, tag)
	if textOutput() {
		for _, s := range suggestions {
			fmt.Printf("- %s\n", s)
		}
		return
	}
	printJSON(suggestions)
}
