package cli

import (
	"encoding/json"
	"os"

	"github.com/rcliao/coach-engine/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export interactions as JSON or YAML",
		Long:  "Export recorded interactions, oldest first per session. Filter by session with -s.",
		Run:   runExport,
	}

	cmd.Flags().StringP("session", "s", "", "Filter by session")
	cmd.Flags().Bool("yaml", false, "Write YAML instead of JSON")
	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	output, _ := cmd.Flags().GetString("output")

	a := openApp()
	defer a.Close()

	interactions, err := store.Export(cmd.Context(), a.store, session)
	if err != nil {
		exitErr("export", err)
	}

	var b []byte
	if asYAML {
		b, err = yaml.Marshal(interactions)
	} else {
		b, err = json.MarshalIndent(interactions, "", "  ")
		b = append(b, '\n')
	}
	if err != nil {
		exitErr("encode", err)
	}

	if output == "" {
		os.Stdout.Write(b)
		return
	}
	if err := os.WriteFile(output, b, 0o644); err != nil {
		exitErr("write "+output, err)
	}
}
