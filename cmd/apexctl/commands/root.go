// Package commands implements the apexctl command tree.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/antogkou/salesforce-apex-client/httpclient"
	"github.com/antogkou/salesforce-apex-client/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// ErrUnsupportedOutput is returned for an --output value other than json or yaml.
var ErrUnsupportedOutput = errors.New("unsupported output format")

type globalOptions struct {
	configFile string
	envFile    string
	email      string
	output     string
}

// NewRootCommand builds the apexctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:     "apexctl",
		Short:   "Call the Salesforce Apex REST API",
		Long:    "apexctl sends authenticated requests to the Salesforce Apex REST API using the same client as the library.",
		Version: version.GetVersion(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != OutputFormatJSON && opts.output != OutputFormatYAML {
				return fmt.Errorf("%w: %s", ErrUnsupportedOutput, opts.output)
			}
			return loadEnvFile(opts.envFile)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default: SF_ prefixed environment variables)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&opts.email, "email", "", "value of the x-user-email header")
	flags.StringVarP(&opts.output, "output", "o", OutputFormatJSON, "output format (json, yaml)")

	cmd.AddCommand(newGetCommand(opts))
	cmd.AddCommand(newBodyCommand(opts, "post"))
	cmd.AddCommand(newBodyCommand(opts, "put"))
	cmd.AddCommand(newBodyCommand(opts, "patch"))
	cmd.AddCommand(newDeleteCommand(opts))
	cmd.AddCommand(newTokenCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

// loadEnvFile loads path into the process environment without overriding variables already set.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

func (o *globalOptions) loadConfig() (*httpclient.ClientConfig, error) {
	if o.configFile != "" {
		return httpclient.LoadConfigFromFile(o.configFile)
	}
	return httpclient.LoadConfigFromEnv()
}

func (o *globalOptions) newClient(ctx context.Context) (*httpclient.Client, error) {
	config, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	client, err := httpclient.BuildClient(ctx, *config, true)
	if err != nil {
		return nil, err
	}
	if o.email != "" {
		client.SetCallerIdentity(o.email)
	}
	return client, nil
}
