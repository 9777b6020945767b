package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/v0xg/pageaction/internal/action"
	"github.com/v0xg/pageaction/internal/ai"
)

func newPressCommand(a *app) *cobra.Command {
	var delay int

	cmd := &cobra.Command{
		Use:   "press <url> <key>",
		Short: "Press a key on the page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := action.Request{Type: string(action.KindPress), Key: args[1], DelayMs: delay}
			if err := req.Press().Validate(); err != nil {
				return err
			}
			return a.openAndExecute(args[0], []action.Request{req}, false)
		},
	}

	cmd.Flags().IntVar(&delay, "delay", 0, "Wait this many milliseconds before pressing")
	return cmd
}

func newResizeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resize <url> <width> <height>",
		Short: "Set the page viewport size",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := parseDimension("width", args[1])
			if err != nil {
				return err
			}
			height, err := parseDimension("height", args[2])
			if err != nil {
				return err
			}

			req := action.Request{Type: string(action.KindResize), Width: width, Height: height}
			if err := req.Resize().Validate(); err != nil {
				return err
			}
			return a.openAndExecute(args[0], []action.Request{req}, false)
		},
	}
}

func parseDimension(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, value)
	}
	return n, nil
}

func newRunCommand(a *app) *cobra.Command {
	var continueOnError bool

	cmd := &cobra.Command{
		Use:   "run <url> <script>",
		Short: "Run a YAML or JSON action script",
		Long: `Run executes the actions of a script in order. A script is a list of actions
(or a document with an "actions" key):

  - action: resize
    width: 390
    height: 844
  - action: press
    key: Enter
    delayMs: 500
  - action: wait
    wait: 1000
  - action: navigate
    url: https://example.com/next`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := action.LoadScript(args[1])
			if err != nil {
				return err
			}
			return a.openAndExecute(args[0], requests, continueOnError)
		},
	}

	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep going after a failed action")
	return cmd
}

func newPlanCommand(a *app) *cobra.Command {
	var (
		execute bool
		save    string
	)

	cmd := &cobra.Command{
		Use:   "plan <url> <prompt>",
		Short: "Generate an action script from a natural language prompt",
		Long: `Plan asks an AI provider to turn a prompt into press/resize/wait actions
for the given page and prints the resulting script.

Example:
  pageaction plan https://myapp.com "switch to a phone viewport and press End" --execute`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.plan(args[0], args[1], save, execute)
		},
	}

	cmd.Flags().BoolVar(&execute, "execute", false, "Run the generated actions")
	cmd.Flags().StringVar(&save, "save", "", "Write the generated script to this file")
	return cmd
}

func (a *app) plan(url, prompt, save string, execute bool) error {
	provider, err := ai.NewProvider(a.cfg.AI.Provider, a.cfg.AI.Model)
	if err != nil {
		return fmt.Errorf("AI provider init failed: %w", err)
	}

	session, err := a.open(url)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			a.logger.Warn("failed to close browser: %v", err)
		}
	}()

	info, err := session.Info()
	if err != nil {
		return fmt.Errorf("failed to inspect page: %w", err)
	}

	a.logger.Step("Generating action script via %s... ", a.cfg.AI.Provider)
	requests, err := provider.GenerateActions(info, prompt)
	if err != nil {
		a.logger.Failure("failed")
		return fmt.Errorf("action generation failed: %w", err)
	}
	a.logger.Success("done (%d actions)", len(requests))

	script, err := yaml.Marshal(action.Script{Actions: requests})
	if err != nil {
		return fmt.Errorf("failed to render script: %w", err)
	}
	fmt.Print(string(script))

	if save != "" {
		if err := os.WriteFile(save, script, 0o644); err != nil {
			return fmt.Errorf("failed to save script: %w", err)
		}
		a.logger.Info("Saved script to %s", a.logger.Highlight(save))
	}

	if !execute {
		return nil
	}
	return a.execute(session, requests, false)
}
