package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/coach-engine/internal/engine"
	"github.com/rcliao/coach-engine/internal/provider"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a message to the coach",
		Long: "Send one message, or read one message per line from stdin when no message is given. " +
			"Each turn is analyzed, personalized from the session's learned patterns and recorded.",
		Run: runChat,
	}

	cmd.Flags().StringP("session", "s", "default", "Session ID")
	cmd.Flags().Bool("new", false, "Start a new session with a generated ID")
	cmd.Flags().StringP("profile", "p", "", "Profile file (YAML or JSON: name, fitness_level, goals, equipment)")
	cmd.Flags().Float64("satisfaction", 0, "Explicit satisfaction signal in [0, 1] for this turn")

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	session, _ := cmd.Flags().GetString("session")
	newSession, _ := cmd.Flags().GetBool("new")
	profilePath, _ := cmd.Flags().GetString("profile")

	if newSession {
		session = uuid.NewString()
		fmt.Fprintf(os.Stderr, "session: %s\n", session)
	}

	var satisfaction *float64
	if cmd.Flags().Changed("satisfaction") {
		v, _ := cmd.Flags().GetFloat64("satisfaction")
		satisfaction = &v
	}

	var profile provider.Profile
	if profilePath != "" {
		data, err := os.ReadFile(profilePath)
		if err != nil {
			exitErr("read profile", err)
		}
		if err := yaml.Unmarshal(data, &profile); err != nil {
			exitErr("parse profile", err)
		}
	}

	a := openApp()
	defer a.Close()
	e := a.engine()

	respond := func(msg string) {
		payload := e.Respond(cmd.Context(), engine.Request{
			Message:      msg,
			SessionID:    session,
			Profile:      profile,
			Satisfaction: satisfaction,
		})
		printPayload(payload)
	}

	if len(args) > 0 {
		respond(strings.Join(args, " "))
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		respond(line)
	}
	if err := scanner.Err(); err != nil {
		exitErr("read stdin", err)
	}
}

func printPayload(p engine.Payload) {
	if !textOutput() {
		printJSON(p)
		return
	}

	fmt.Println(p.Content)
	for _, s := range p.Suggestions {
		fmt.Printf("  - %s\n", s)
	}
	fmt.Println()
}
