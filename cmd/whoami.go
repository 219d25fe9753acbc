package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidooit/qualidoo/config"
	"github.com/aidooit/qualidoo/output"
	"github.com/aidooit/qualidoo/qualidoo"
)

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.DefaultStore()
		if err != nil {
			return err
		}
		key := store.APIKey()
		if key == "" {
			return errors.New("not logged in. Run 'qualidoo login' first")
		}

		client := qualidoo.NewClient(key, store.APIURL())
		defer client.Close()

		fmt.Print("Checking authentication... ")
		user, err := client.ValidateKey(cmd.Context())
		if err != nil {
			fmt.Println(output.FailureLine("Failed"))
			return err
		}
		fmt.Println(output.SuccessLine("OK"))
		fmt.Println()
		fmt.Println(output.RenderUserInfo(user))
		return nil
	},
}
