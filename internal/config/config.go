package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "PAGEACTION"

// Config holds the resolved settings for a run
type Config struct {
	Browser BrowserConfig
	Record  RecordConfig
	AI      AIConfig
	Verbose bool
}

// BrowserConfig selects and shapes the browser session
type BrowserConfig struct {
	Driver     string
	Headless   bool
	Width      int
	Height     int
	ProfileDir string
	Timeout    time.Duration
}

// RecordConfig controls GIF recording of a run
type RecordConfig struct {
	Output     string
	FPS        int
	MaxWidth   uint
	NoOverlay  bool
	FadeFrames int
}

// AIConfig selects the planner backend
type AIConfig struct {
	Provider string
	Model    string
}

// New returns a viper instance with defaults, env bindings and the optional
// config file loaded. configFile overrides the search path when non-empty.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("browser.driver", "rod")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.width", 1280)
	v.SetDefault("browser.height", 720)
	v.SetDefault("browser.profile", "")
	v.SetDefault("browser.timeout", 30*time.Second)
	v.SetDefault("record.output", "")
	v.SetDefault("record.fps", 2)
	v.SetDefault("record.max_width", 800)
	v.SetDefault("record.no_overlay", false)
	v.SetDefault("record.fade_frames", 2)
	v.SetDefault("ai.provider", "claude")
	v.SetDefault("ai.model", "")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// PAGEACTION_DEFAULT_PROVIDER is accepted as an alias
	_ = v.BindEnv("ai.provider", envPrefix+"_AI_PROVIDER", envPrefix+"_DEFAULT_PROVIDER")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pageaction")
		v.SetConfigType("yaml")
		for _, path := range []string{".", "$HOME/.pageaction", "/etc/pageaction"} {
			v.AddConfigPath(os.ExpandEnv(path))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

// Load resolves a Config from v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Browser: BrowserConfig{
			Driver:     strings.ToLower(v.GetString("browser.driver")),
			Headless:   v.GetBool("browser.headless"),
			Width:      v.GetInt("browser.width"),
			Height:     v.GetInt("browser.height"),
			ProfileDir: v.GetString("browser.profile"),
			Timeout:    v.GetDuration("browser.timeout"),
		},
		Record: RecordConfig{
			Output:     v.GetString("record.output"),
			FPS:        v.GetInt("record.fps"),
			MaxWidth:   v.GetUint("record.max_width"),
			NoOverlay:  v.GetBool("record.no_overlay"),
			FadeFrames: v.GetInt("record.fade_frames"),
		},
		AI: AIConfig{
			Provider: strings.ToLower(v.GetString("ai.provider")),
			Model:    v.GetString("ai.model"),
		},
		Verbose: v.GetBool("verbose"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a run
func (c *Config) Validate() error {
	if c.Browser.Width <= 0 || c.Browser.Height <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", c.Browser.Width, c.Browser.Height)
	}
	if c.Record.Output != "" && c.Record.FPS <= 0 {
		return fmt.Errorf("record fps must be positive, got %d", c.Record.FPS)
	}
	return nil
}
