package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	client "github.com/peteraglen/api-go-client"
)

type app struct {
	baseURL   string
	token     string
	userAgent string
	verbose   bool

	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:          "apictl",
		Short:        "Send requests to the v2 API",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			a.logger = newLogger(a.stderr, a.verbose)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.baseURL, "base-url", "", "API base URL (overrides API_BASE_URL)")
	flags.StringVar(&a.token, "token", "", "access token (overrides API_ACCESS_TOKEN)")
	flags.StringVar(&a.userAgent, "user-agent", "", "User-Agent header (overrides API_USER_AGENT)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log request and response details")

	root.AddCommand(
		a.newQueryCmd(http.MethodGet),
		a.newQueryCmd(http.MethodDelete),
		a.newBodyCmd(http.MethodPost),
		a.newBodyCmd(http.MethodPut),
		a.newBodyCmd(http.MethodPatch),
	)

	return root
}

func (a *app) newQueryCmd(method string) *cobra.Command {
	var rawParams []string

	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " PATH",
		Short: fmt.Sprintf("Send a %s request", method),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(rawParams)
			if err != nil {
				return err
			}

			return a.run(cmd, method, args[0], params, nil)
		},
	}

	cmd.Flags().StringArrayVarP(&rawParams, "param", "p", nil, "query parameter as key=value (repeatable, order kept)")

	return cmd
}

func (a *app) newBodyCmd(method string) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " PATH",
		Short: fmt.Sprintf("Send a %s request with a JSON body", method),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseData(data)
			if err != nil {
				return err
			}

			return a.run(cmd, method, args[0], nil, body)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON body, or @file to read it from a file")

	return cmd
}

func (a *app) run(cmd *cobra.Command, method, path string, params client.Params, body any) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}

	c, err := client.New(cfg, client.WithRequestLogger(client.NewZerologLogger(a.logger)))
	if err != nil {
		return err
	}
	defer c.Close()

	code, resource, err := c.Request(cmd.Context(), method, path, params, body)
	if err != nil {
		event := a.logger.Error().Err(err)
		if apiErr, ok := client.AsError(err); ok {
			event = event.Str("kind", apiErr.Kind.String()).Int("status", apiErr.StatusCode)
			if apiErr.Body != nil {
				event = event.Interface("body", apiErr.Body)
			}
		}
		event.Msg("request failed")

		return err
	}

	a.logger.Info().Int("status", code).Msgf("%s %s", method, path)

	return writeJSON(a.stdout, resource)
}

// config merges environment configuration with flag overrides. The flags may
// supply the values the environment is missing.
func (a *app) config() (client.Config, error) {
	return client.LoadConfigWithOverrides(client.Config{
		BaseURL:     a.baseURL,
		AccessToken: a.token,
		UserAgent:   a.userAgent,
		Verbose:     a.verbose,
	})
}

func parseParams(raw []string) (client.Params, error) {
	params := make(client.Params, 0, len(raw))

	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", kv)
		}

		params = params.Add(key, value)
	}

	return params, nil
}

func parseData(data string) (any, error) {
	if data == "" {
		return nil, nil
	}

	raw := []byte(data)

	if name, ok := strings.CutPrefix(data, "@"); ok {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read body file: %w", err)
		}

		raw = b
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("body is not valid JSON: %w", err)
	}

	return body, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
