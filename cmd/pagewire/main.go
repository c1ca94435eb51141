package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pagewire/pagewire/cmd/pagewire/internal/auth"
	"github.com/pagewire/pagewire/cmd/pagewire/internal/gateway"
	"github.com/pagewire/pagewire/cmd/pagewire/internal/send"
	"github.com/pagewire/pagewire/cmd/pagewire/internal/version"
)

func NewPagewireCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pagewire",
		Short:   "pagewire - Messenger page bot toolkit",
		Example: "pagewire gateway",
	}

	cmd.AddCommand(
		gateway.NewGatewayCommand(),
		send.NewSendCommand(),
		auth.NewAuthCommand(),
		version.NewVersionCommand(),
	)

	return cmd
}

func main() {
	cmd := NewPagewireCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
