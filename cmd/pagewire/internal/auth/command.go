package auth

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagewire/pagewire/cmd/pagewire/internal"
	"github.com/pagewire/pagewire/pkg/auth"
	"github.com/pagewire/pagewire/pkg/config"
)

func NewAuthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Store page credentials in the config file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cred, err := auth.PasteTokens(os.Stdin)
			if err != nil {
				return err
			}

			path := internal.GetConfigPath()
			cfg, err := config.LoadConfig(path)
			if err != nil {
				return err
			}

			cfg.AccessToken = cred.AccessToken
			if cred.VerifyToken != "" {
				cfg.VerifyToken = cred.VerifyToken
			}

			if err := config.SaveConfig(path, cfg); err != nil {
				return err
			}
			fmt.Printf("Credentials saved to %s\n", path)
			return nil
		},
	}
}
