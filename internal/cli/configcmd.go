package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jstrzelecki/filesearch/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("path", "filesearch.config.yaml", "Destination file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
