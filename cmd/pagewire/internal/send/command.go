package send

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagewire/pagewire/cmd/pagewire/internal"
	"github.com/pagewire/pagewire/pkg/messenger"
)

func NewSendCommand() *cobra.Command {
	var to string
	var text string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a one-off text message",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := internal.LoadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := messenger.New(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			resp, err := client.SendText(ctx, to, text)
			if err != nil {
				return err
			}
			fmt.Printf("sent: %s\n", resp)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient page-scoped ID")
	cmd.Flags().StringVar(&text, "text", "", "Message text")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("text")

	return cmd
}
