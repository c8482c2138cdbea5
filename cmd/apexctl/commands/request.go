package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/antogkou/salesforce-apex-client/apiintegrations/apex"
	apierrors "github.com/antogkou/salesforce-apex-client/errors"
	"github.com/antogkou/salesforce-apex-client/httpclient"
	"github.com/spf13/cobra"
)

// ErrInvalidPair is returned for a -q or -H value that is not key=value.
var ErrInvalidPair = errors.New("expected key=value")

func newGetCommand(opts *globalOptions) *cobra.Command {
	var queryPairs, headerPairs []string

	cmd := &cobra.Command{
		Use:   "get PATH",
		Short: "Send a GET request",
		Example: `  apexctl get accounts -q status=active -q limit=10
  apexctl get /services/apexrest/accounts/001 --email jane@example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseQuery(queryPairs)
			if err != nil {
				return err
			}
			extra, err := parseHeaders(headerPairs)
			if err != nil {
				return err
			}
			return runRequest(cmd, opts, http.MethodGet, args[0], query, nil, extra)
		},
	}

	cmd.Flags().StringArrayVarP(&queryPairs, "query", "q", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&headerPairs, "header", "H", nil, "extra header as name=value (repeatable)")
	return cmd
}

func newBodyCommand(opts *globalOptions, verb string) *cobra.Command {
	var data string
	var headerPairs []string

	cmd := &cobra.Command{
		Use:   verb + " PATH",
		Short: fmt.Sprintf("Send a %s request with a JSON body", strings.ToUpper(verb)),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload interface{}
			if data != "" {
				if err := json.Unmarshal([]byte(data), &payload); err != nil {
					return fmt.Errorf("parsing --data: %w", err)
				}
			}
			extra, err := parseHeaders(headerPairs)
			if err != nil {
				return err
			}
			return runRequest(cmd, opts, strings.ToUpper(verb), args[0], nil, payload, extra)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringArrayVarP(&headerPairs, "header", "H", nil, "extra header as name=value (repeatable)")
	return cmd
}

func newDeleteCommand(opts *globalOptions) *cobra.Command {
	var headerPairs []string

	cmd := &cobra.Command{
		Use:   "delete PATH",
		Short: "Send a DELETE request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseHeaders(headerPairs)
			if err != nil {
				return err
			}
			return runRequest(cmd, opts, http.MethodDelete, args[0], nil, nil, extra)
		},
	}

	cmd.Flags().StringArrayVarP(&headerPairs, "header", "H", nil, "extra header as name=value (repeatable)")
	return cmd
}

func runRequest(cmd *cobra.Command, opts *globalOptions, method, endpoint string, query apex.Query, data interface{}, extra map[string]string) error {
	client, err := opts.newClient(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.DoRequest(cmd.Context(), method, endpoint, query, data, extra)

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		if writeErr := writeOutput(cmd.ErrOrStderr(), opts.output, apiErr.Response()); writeErr != nil {
			return writeErr
		}
		return err
	}
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), opts.output, responseBody(resp))
}

// responseBody returns the decoded JSON body, or the raw text for anything else.
func responseBody(resp *httpclient.Response) interface{} {
	if decoded := resp.JSON(); decoded != nil {
		return decoded
	}
	return map[string]interface{}{
		"status": resp.StatusCode,
		"body":   resp.String(),
	}
}

func parseQuery(pairs []string) (apex.Query, error) {
	var query apex.Query
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPair, pair)
		}
		query = query.Set(key, value)
	}
	return query, nil
}

func parseHeaders(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPair, pair)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}
