package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/campus/internal/app"
	"github.com/zjrosen/campus/internal/campus/application"
	"github.com/zjrosen/campus/internal/config"
	"github.com/zjrosen/campus/internal/log"
	"github.com/zjrosen/campus/internal/tracing"
	"github.com/zjrosen/campus/internal/ui/styles"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 response cannot race with the input loop and show up as
	// garbage in text inputs.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".campus/config.yaml"
	defaultDebugLog = "campus-debug.log"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "campus",
	Short: "A terminal university management system",
	Long: `An interactive terminal program for keeping an in-memory registry of
students, instructors, courses and departments, and the links between them.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/campus/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log and show the latest entry in the footer")
}

func initConfig() {
	cfg, cfgErr = loadConfig(viper.GetViper(), cfgFile)
}

// loadConfig resolves the config file, writing a default one when none
// exists, and decodes it into a Config.
//
// Lookup order:
//  1. the --config flag
//  2. .campus/config.yaml (current directory)
//  3. ~/.config/campus/config.yaml (user config)
func loadConfig(v *viper.Viper, explicit string) (config.Config, error) {
	config.SetDefaults(v)

	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return config.Defaults(), fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(explicit)
	} else if _, err := os.Stat(localConfigPath); err == nil {
		v.SetConfigFile(localConfigPath)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "campus"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Defaults(), fmt.Errorf("reading config: %w", err)
		}
		// Nothing found anywhere. Write the default at .campus/config.yaml;
		// if that fails, keep going on defaults alone.
		if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
			v.SetConfigFile(localConfigPath)
			_ = v.ReadInConfig()
		}
	}

	return config.FromViper(v)
}

func runApp(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}

	if debugFlag || log.DebugRequested() {
		closeLog, err := startDebugLog(cfg)
		if err != nil {
			return err
		}
		defer closeLog()
		debugFlag = true
	}

	sessionID := uuid.New().String()
	log.Info(log.CatConfig, "Starting session",
		"session", sessionID, "version", version, "config", viper.ConfigFileUsed())

	provider, err := newTracingProvider(cfg.Tracing, sessionID)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}()

	if err := styles.ApplyTheme(cfg.Theme.Colors()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	svc := application.NewService(nil,
		application.WithTracer(provider.Tracer()),
		application.WithCacheTTL(cfg.Cache.TTL),
	)
	defer svc.Close()

	zone.NewGlobal()

	model := app.New(svc, cfg, debugFlag)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(&model, opts...)

	watchConfig(viper.GetViper(), p)

	final, err := p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	var farewell bool
	switch m := final.(type) {
	case app.Model:
		farewell = m.Farewell()
	case *app.Model:
		farewell = m.Farewell()
	}
	if farewell {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.FarewellText)
	}
	return nil
}

// startDebugLog opens the debug log named in c, or campus-debug.log, and
// applies the configured level.
func startDebugLog(c config.Config) (func(), error) {
	path := c.DebugLog
	if path == "" {
		path = defaultDebugLog
	}
	closeLog, err := log.Init(path)
	if err != nil {
		return nil, err
	}
	log.SetMinLevel(log.ParseLevel(c.LogLevel))
	return closeLog, nil
}

// newTracingProvider maps the config section onto tracing.Config.
func newTracingProvider(tc config.TracingConfig, sessionID string) (*tracing.Provider, error) {
	tcfg := tracing.DefaultConfig()
	tcfg.Enabled = tc.Enabled
	tcfg.Exporter = tc.Exporter
	tcfg.FilePath = tc.FilePath
	tcfg.OTLPEndpoint = tc.OTLPEndpoint
	tcfg.SampleRate = tc.SampleRate
	tcfg.SessionID = sessionID
	return tracing.NewProvider(tcfg)
}

// watchConfig reloads the config file on change and hands the result to the
// running program. Nothing is watched when no file was loaded.
func watchConfig(v *viper.Viper, p *tea.Program) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info(log.CatConfig, "Config file changed", "path", e.Name, "op", e.Op.String())
		reloaded, err := config.FromViper(v)
		p.Send(app.ConfigReloadedMsg{Config: reloaded, Err: err})
	})
	v.WatchConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string shown by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
