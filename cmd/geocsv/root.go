// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wneessen/geocsv/internal/config"
	"github.com/wneessen/geocsv/internal/logger"
)

// app holds the state shared by all sub-commands.
type app struct {
	configPath string
	conf       *config.Config
	log        *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "geocsv",
		Short: "reverse geocode the coordinates of a CSV file",
		Long: `geocsv adds a human-readable address to every row of a CSV file that carries a
latitude and a longitude column. Tables can be converted on the command line or
uploaded through the built-in web interface.`,
		Version:           version + " (" + commit + ", " + date + ")",
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to the config file")
	root.AddCommand(newConvertCmd(a), newServeCmd(a))
	return root
}

// loadConfig reads the configuration from the given file, the default location or the
// environment, in that order.
func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	log := logger.NewLogger(slog.LevelError, cmd.ErrOrStderr())

	var conf *config.Config
	var err error
	switch path, file := findConfigFile(); {
	case a.configPath != "":
		conf, err = config.NewFromFile(filepath.Dir(a.configPath), filepath.Base(a.configPath))
	case path != "" && file != "":
		conf, err = config.NewFromFile(path, file)
	default:
		conf, err = config.New()
	}
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		return err
	}

	a.conf = conf
	a.log = logger.NewLogger(conf.LogLevel, cmd.ErrOrStderr())
	return nil
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "geocsv", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
