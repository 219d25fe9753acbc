package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aidooit/qualidoo/config"
	"github.com/aidooit/qualidoo/output"
	"github.com/aidooit/qualidoo/qualidoo"
)

var loginKey string

func init() {
	loginCmd.Flags().StringVarP(&loginKey, "key", "k", "", "API key (or enter interactively)")
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Configure the API key used for authentication",
	Long:  `Configure the API key used for authentication. Get your API key from https://qualidoo.aidooit.com/settings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.DefaultStore()
		if err != nil {
			return err
		}

		key := loginKey
		if key == "" {
			fmt.Println("Get your API key from: https://qualidoo.aidooit.com/settings")
			fmt.Println()
			fmt.Print("Enter your API key: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read API key: %w", err)
			}
			key = strings.TrimSpace(string(raw))
		}
		if key == "" {
			return errors.New("API key is required")
		}
		if !config.ValidKeyFormat(key) {
			return errors.New("invalid API key format. Keys should start with 'qdoo_'")
		}

		client := qualidoo.NewClient(key, store.APIURL())
		defer client.Close()

		fmt.Print("Validating API key... ")
		user, err := client.ValidateKey(cmd.Context())
		if err != nil {
			fmt.Println(output.FailureLine("Failed"))
			if qualidoo.IsKind(err, qualidoo.KindAuthenticationFailed) {
				return errors.New("invalid API key. Please check and try again")
			}
			return err
		}
		fmt.Println(output.SuccessLine("Success!"))

		if err := store.SetAPIKey(key); err != nil {
			return err
		}
		fmt.Println(output.SuccessLine("API key saved to " + store.Path()))
		fmt.Println()
		fmt.Println(output.RenderUserInfo(user))
		return nil
	},
}
