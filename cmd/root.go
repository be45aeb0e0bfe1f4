package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/telgren/codeview/internal/app"
	"github.com/telgren/codeview/internal/config"
	"github.com/telgren/codeview/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "codeview [file]",
	Short:   "A terminal source-code editor with syntax highlighting",
	Long:    `A terminal editor/viewer for source files with syntax highlighting, theme switching, and live reload when the file changes on disk.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/codeview/config.yaml)")
	rootCmd.Flags().StringP("theme", "t", "",
		"highlighting theme (overrides config)")
	rootCmd.Flags().StringP("language", "l", "",
		"fix the highlighting language instead of detecting it")
	rootCmd.Flags().BoolP("read-only", "r", false,
		"open the file as a display-only view")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable reloading when the file changes on disk")
	rootCmd.Flags().String("debug-log", "",
		"write debug logs to the given file")

	// Bind flags to viper
	_ = viper.BindPFlag("view.theme", rootCmd.Flags().Lookup("theme"))
	_ = viper.BindPFlag("view.language", rootCmd.Flags().Lookup("language"))
	_ = viper.BindPFlag("read_only", rootCmd.Flags().Lookup("read-only"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("view.theme", defaults.View.Theme)
	viper.SetDefault("view.font_size", defaults.View.FontSize)
	viper.SetDefault("view.inset_x", defaults.View.InsetX)
	viper.SetDefault("view.inset_y", defaults.View.InsetY)
	viper.SetDefault("editor.indent.style", defaults.Editor.Indent.Style)
	viper.SetDefault("editor.indent.width", defaults.Editor.Indent.Width)
	viper.SetDefault("editor.smart_indent", defaults.Editor.SmartIndent)
	viper.SetDefault("editor.auto_pairs", defaults.Editor.AutoPairs)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .codeview.yaml (current directory)
		// 2. ~/.config/codeview/config.yaml (user config)
		if _, err := os.Stat(".codeview.yaml"); err == nil {
			viper.SetConfigFile(".codeview.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "codeview"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create a default user config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "codeview", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logPath, _ := cmd.Flags().GetString("debug-log")
	if logPath == "" {
		logPath = os.Getenv("CODEVIEW_DEBUG")
	}
	if logPath != "" {
		// LogToFile-backed init so stdlib log output from dependencies
		// lands in the same file instead of corrupting the screen.
		closeLog, err := log.InitWithTeaLog(logPath, "codeview")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer closeLog()
		log.SetEnabled(true)
	}

	// Handle --no-auto-reload flag (negated logic)
	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); noReload {
		cfg.AutoReload = false
	}

	// Store the config file path for persisting theme changes
	configFilePath := viper.ConfigFileUsed()

	model, err := app.New(args[0], configFilePath, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
