package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rcliao/coach-engine/internal/model"
	"github.com/rcliao/coach-engine/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import interactions from JSON or YAML",
		Long:  "Import interactions (stdin or file). Expects the format produced by export. Already stored IDs are skipped.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read input", err)
	}

	interactions, err := decodeInteractions(data)
	if err != nil {
		exitErr("parse input", err)
	}

	a := openApp()
	defer a.Close()

	imported, err := store.Import(cmd.Context(), a.store, interactions, a.memory.Limit())
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}

// decodeInteractions accepts a JSON array or a YAML sequence.
func decodeInteractions(data []byte) ([]model.Interaction, error) {
	var interactions []model.Interaction
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &interactions); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		return interactions, nil
	}
	if err := yaml.Unmarshal(data, &interactions); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return interactions, nil
}
