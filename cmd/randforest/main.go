// Command randforest trains a random forest on a CSV sample set and
// evaluates it against a second one.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/randforest/pkg/log"
)

type rootCmdConfig struct {
	logLevel  string
	logFormat string
	logOut    io.Writer
	logs      log.LoggerProvider
}

func main() {
	if err := cliParser(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser(logOut io.Writer) *cobra.Command {
	config := &rootCmdConfig{logOut: logOut}
	rootCmd := &cobra.Command{
		Use:   "randforest",
		Short: "randforest is a random forest classifier for integer features",
		Long:  `A tool to grow random forests from label-prefixed CSV samples and measure their accuracy`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.setupLogger()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&config.logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&config.logFormat, "log-format", "json", "log output format (json, console)")
	rootCmd.AddCommand(versionCmd(), trainTestCmd(config))
	return rootCmd
}

func (c *rootCmdConfig) setupLogger() error {
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return err
	}
	switch c.logFormat {
	case "json":
		c.logs = log.NewZerologProvider(c.logOut, level)
	case "console":
		c.logs = log.NewConsoleProvider(c.logOut, level)
	default:
		return fmt.Errorf("unknown log format %q", c.logFormat)
	}
	log.SetLogger(c.logs.GetLogger())
	return nil
}

// Logger returns a logger tagged with component.
func (c *rootCmdConfig) Logger(component string) log.Logger {
	return c.logs.GetLoggerWithName(component)
}
