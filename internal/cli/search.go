package cli

import (
	"fmt"
	"strings"

	"github.com/rcliao/coach-engine/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search interactions by keyword",
		Long:  "Search user messages and coach responses for matching text.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("session", "s", "", "Filter by session")
	cmd.Flags().String("intent", "", "Filter by primary intent")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	intent, _ := cmd.Flags().GetString("intent")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	a := openApp()
	defer a.Close()

	results, err := a.store.Search(cmd.Context(), store.SearchParams{
		SessionID: session,
		Query:     query,
		Intent:    intent,
		Limit:     limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if len(results) == 0 {
		fmt.Println("[]")
		return
	}

	printJSON(results)
}
