package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidooit/qualidoo/config"
	"github.com/aidooit/qualidoo/output"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.DefaultStore()
		if err != nil {
			return err
		}
		storedKey, err := store.StoredAPIKey()
		if err != nil {
			return err
		}
		fmt.Print(output.RenderConfigInfo(store.Path(), storedKey))
		return nil
	},
}
