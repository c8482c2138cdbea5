package commands

import (
	"time"

	"github.com/spf13/cobra"
)

func newTokenCommand(opts *globalOptions) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain an access token",
		Long:  "Obtain an access token through the configured token cache and print it, masked unless --reveal is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer client.Close()

			start := time.Now()
			token, err := client.Tokens.GetToken(cmd.Context())
			if err != nil {
				return err
			}

			shown := maskSecret(token)
			if reveal {
				shown = token
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, map[string]interface{}{
				"token_uri":    client.Config().Auth.TokenURI,
				"access_token": shown,
				"elapsed":      time.Since(start).Round(time.Millisecond).String(),
			})
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the full token")
	return cmd
}
