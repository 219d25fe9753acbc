package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidooit/qualidoo/config"
	"github.com/aidooit/qualidoo/output"
)

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.DefaultStore()
		if err != nil {
			return err
		}
		removed, err := store.RemoveAPIKey()
		if err != nil {
			return err
		}
		if removed {
			fmt.Println(output.SuccessLine("API key removed."))
		} else {
			fmt.Println("No API key was configured.")
		}
		return nil
	},
}
