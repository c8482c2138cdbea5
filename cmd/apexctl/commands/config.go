package commands

import (
	"github.com/antogkou/salesforce-apex-client/apiintegrations/apex"
	"github.com/antogkou/salesforce-apex-client/httpclient"
	"github.com/spf13/cobra"
)

func newConfigCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long:  "Show the configuration as loaded from the config file or environment, with secrets masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.loadConfig()
			if err != nil {
				return err
			}
			httpclient.SetDefaultValuesClientConfig(config)
			return writeOutput(cmd.OutOrStdout(), opts.output, describeConfig(config))
		},
	}
}

// describeConfig flattens the configuration into its file keys, masking credentials.
func describeConfig(c *httpclient.ClientConfig) map[string]interface{} {
	return map[string]interface{}{
		"client_id":                 c.Auth.ClientID,
		"client_secret":             maskSecret(c.Auth.ClientSecret),
		"username":                  c.Auth.Username,
		"password":                  maskSecret(c.Auth.Password),
		"token_uri":                 c.Auth.TokenURI,
		"api_uri":                   c.Connection.APIURI,
		"apex_uri":                  c.Connection.ApexURI,
		"base_url":                  apex.BaseURL(c.Connection.ApexURI, c.Connection.MutualTLS()),
		"document_uri":              c.Connection.DocumentURI,
		"environment":               c.Connection.Environment,
		"certificate":               c.Connection.Certificate,
		"certificate_key":           c.Connection.CertificateKey,
		"certificate_dir":           c.Connection.CertificateDir,
		"mutual_tls":                c.Connection.MutualTLS(),
		"app_uuid":                  c.Connection.AppUUID,
		"app_key":                   maskSecret(c.Connection.AppKey),
		"debug":                     c.Connection.Debug,
		"log_level":                 c.ClientOptions.LogLevel,
		"log_output_format":         c.ClientOptions.LogOutputFormat,
		"hide_sensitive_data":       c.ClientOptions.HideSensitiveData,
		"timeout":                   c.ClientOptions.Timeout.String(),
		"proxy_url":                 c.ClientOptions.ProxyURL,
		"proxy_username":            c.ClientOptions.ProxyUsername,
		"proxy_password":            maskSecret(c.ClientOptions.ProxyPassword),
		"token_cache":               c.TokenCache.Type,
		"nats_url":                  c.TokenCache.NATSURL,
		"nats_bucket":               c.TokenCache.NATSBucket,
		"token_cache_single_flight": c.TokenCache.SingleFlight,
	}
}
