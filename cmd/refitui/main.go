package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JackWReid/refitui/internal/config"
	"github.com/JackWReid/refitui/internal/editor"
	"github.com/JackWReid/refitui/internal/logging"
	"github.com/JackWReid/refitui/internal/terminal"
)

var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], openTerminal, os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit status.
func run(args []string, open editor.Opener, stdout, stderr io.Writer) int {
	cmd := newRootCmd(open)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "refitui: %v\n", err)
		return 1
	}
	return 0
}

func openTerminal() (editor.Screen, error) {
	s, err := terminal.Open()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newRootCmd(open editor.Opener) *cobra.Command {
	var (
		configPath string
		tabWidth   int
		logFile    string
		logLevel   string
		noStatus   bool
	)

	cmd := &cobra.Command{
		Use:           "refitui <path>",
		Short:         "View and edit a text file in the terminal (Ctrl-Q quits)",
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("tab-width") {
				cfg.TabWidth = tabWidth
			}
			if flags.Changed("log-file") {
				cfg.LogFile = logFile
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if noStatus {
				cfg.StatusBar = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closeLog()

			return editor.NewApp(args[0], cfg, open, log).Run()
		},
	}

	defaults := config.Default()
	cmd.Flags().StringVar(&configPath, "config", "", "TOML settings file")
	cmd.Flags().IntVar(&tabWidth, "tab-width", defaults.TabWidth, "display width of a tab stop")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file (default: no logging)")
	cmd.Flags().StringVar(&logLevel, "log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&noStatus, "no-status", false, "hide the status bar")

	return cmd
}
