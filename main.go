package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"rds-fpgrowth/rock-share/base/config"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "rds-fpgrowth",
	Short: "Frequent itemset mining and association rules for product recommendation",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", config.DefaultPath, "Directory containing config.yml")
	rootCmd.AddCommand(serveCmd, mineCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
