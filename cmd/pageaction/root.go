package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/v0xg/pageaction/internal/action"
	"github.com/v0xg/pageaction/internal/browser"
	"github.com/v0xg/pageaction/internal/config"
	"github.com/v0xg/pageaction/internal/executor"
	"github.com/v0xg/pageaction/internal/gifgen"
	"github.com/v0xg/pageaction/internal/log"
	"github.com/v0xg/pageaction/internal/overlay"
)

// app carries the state shared by all subcommands
type app struct {
	configFile string
	cfg        *config.Config
	logger     *log.Logger
	launch     func(url string, opts browser.Options) (browser.Session, error)
}

// flagBindings maps config keys to persistent flag names
var flagBindings = map[string]string{
	"browser.driver":    "driver",
	"browser.headless":  "headless",
	"browser.width":     "width",
	"browser.height":    "height",
	"browser.profile":   "profile",
	"browser.timeout":   "timeout",
	"record.output":     "record",
	"record.fps":        "fps",
	"record.no_overlay": "no-overlay",
	"ai.provider":       "provider",
	"ai.model":          "model",
	"verbose":           "verbose",
}

func newRootCommand() *cobra.Command {
	return newRootCommandFor(&app{logger: log.New(), launch: browser.Launch})
}

func newRootCommandFor(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pageaction",
		Short: "Press keys and resize the viewport of a browser page",
		Long: `pageaction opens a page in a headless browser and drives it with validated
keyboard and viewport actions, either one at a time or from a YAML/JSON script.

Example:
  pageaction press https://example.com Enter --delay 500
  pageaction resize https://example.com 390 844 --record mobile.gif
  pageaction run https://example.com script.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default: ./pageaction.yaml, ~/.pageaction/pageaction.yaml)")
	flags.String("driver", "rod", "Browser driver: rod, playwright")
	flags.Bool("headless", true, "Run the browser without a window")
	flags.Int("width", 1280, "Initial viewport width")
	flags.Int("height", 720, "Initial viewport height")
	flags.String("profile", "", "Chrome/Chromium profile directory for authenticated sessions (close browser first)")
	flags.Duration("timeout", 0, "Navigation timeout (default 30s)")
	flags.StringP("record", "o", "", "Record a GIF of the run to this file")
	flags.Int("fps", 2, "Frames per second of the recorded GIF")
	flags.Bool("no-overlay", false, "Do not label recorded frames with the action that produced them")
	flags.String("provider", "", "AI provider for plan: claude, openai")
	flags.String("model", "", "Specific model override for plan")
	flags.BoolP("verbose", "v", false, "Show detailed progress")

	rootCmd.AddCommand(
		newPressCommand(a),
		newResizeCommand(a),
		newRunCommand(a),
		newPlanCommand(a),
	)

	return rootCmd
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	v, err := config.New(a.configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.SetVerbose(cfg.Verbose)
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for key, name := range flagBindings {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func (a *app) browserOptions() browser.Options {
	b := a.cfg.Browser
	return browser.Options{
		Driver:     b.Driver,
		Headless:   b.Headless,
		Width:      b.Width,
		Height:     b.Height,
		Timeout:    b.Timeout,
		ProfileDir: b.ProfileDir,
	}
}

// open launches the configured browser on url
func (a *app) open(url string) (browser.Session, error) {
	a.logger.Step("Opening %s with %s... ", url, a.cfg.Browser.Driver)
	session, err := a.launch(url, a.browserOptions())
	if err != nil {
		a.logger.Failure("failed")
		return nil, fmt.Errorf("browser launch failed: %w", err)
	}
	a.logger.Success("done")
	return session, nil
}

// execute runs requests against an already open session and writes the
// recording when one was requested
func (a *app) execute(session browser.Session, requests []action.Request, continueOnError bool) error {
	record := a.cfg.Record.Output != ""

	a.logger.Step("Running %d action(s)...\n", len(requests))
	for i, req := range requests {
		a.logger.Debug("  [%d] %s", i+1, executor.Describe(req))
	}

	result, err := executor.Run(session, requests, executor.Options{
		Record:          record,
		ContinueOnError: continueOnError,
		Logger:          a.logger,
	})
	if err != nil {
		a.logger.Failure("✗ %v", err)
		return err
	}

	if record {
		if err := a.writeRecording(result); err != nil {
			return err
		}
	}

	if len(result.Failures) > 0 {
		a.logger.Failure("✗ %d of %d action(s) failed", len(result.Failures), len(requests))
		return result.Err()
	}

	a.logger.Success("✓ %d action(s) completed", result.Executed)
	return nil
}

func (a *app) writeRecording(result *executor.Result) error {
	frames := result.Frames
	if !a.cfg.Record.NoOverlay {
		a.logger.Step("Applying action labels... ")
		var err error
		frames, err = overlay.ApplyLabels(frames, result.Labels, overlay.Options{
			FadeFrames: a.cfg.Record.FadeFrames,
		})
		if err != nil {
			a.logger.Failure("failed")
			return fmt.Errorf("overlay failed: %w", err)
		}
		a.logger.Success("done")
	}

	output := a.cfg.Record.Output
	a.logger.Step("Generating GIF (%d frames)... ", len(frames))
	size, err := gifgen.Generate(frames, output, gifgen.Options{
		FPS:      a.cfg.Record.FPS,
		MaxWidth: a.cfg.Record.MaxWidth,
	})
	if err != nil {
		a.logger.Failure("failed")
		return fmt.Errorf("GIF generation failed: %w", err)
	}
	a.logger.Success("done")
	a.logger.Info("Saved recording to %s (%.1f KB)", a.logger.Highlight(output), float64(size)/1024)
	return nil
}

// openAndExecute is the common path for commands that only run actions
func (a *app) openAndExecute(url string, requests []action.Request, continueOnError bool) error {
	session, err := a.open(url)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			a.logger.Warn("failed to close browser: %v", err)
		}
	}()

	return a.execute(session, requests, continueOnError)
}
