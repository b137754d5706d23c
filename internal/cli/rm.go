package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a session",
		Long:  "Delete a session's interactions and learned pattern (irreversible).",
		Run:   runRm,
	}

	cmd.Flags().StringP("session", "s", "", "Session ID (required)")
	cmd.MarkFlagRequired("session")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")

	a := openApp()
	defer a.Close()

	if err := a.store.DeleteSession(cmd.Context(), session); err != nil {
		exitErr("rm", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"session":%q}`+"\n", session)
}
