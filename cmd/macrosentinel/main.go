package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"MacroSentinel/internal/config"
)

var cfgPath string

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	root := &cobra.Command{
		Use:   "macrosentinel",
		Short: "Macro-indicator monitor: fetch, classify, and email a threshold report",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default configs/config.yaml)")

	root.AddCommand(newRunCmd(), newPreviewCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config path (flag, then CONFIG_PATH, then default)
// and loads it.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.yaml"
	}
	return config.Load(path)
}
