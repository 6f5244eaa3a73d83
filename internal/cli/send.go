package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artpar/reqpane/internal/core"
)

// SendOptions holds options for the send command.
type SendOptions struct {
	Params  []string
	Headers []string
	Body    string
	JSON    bool
}

// NewSendCommand creates the send command. Params and headers follow the
// composer rules: params are "k=v" pairs, headers stop at the first line
// missing a name or value.
func NewSendCommand(globals *GlobalOptions) *cobra.Command {
	if globals == nil {
		globals = &GlobalOptions{}
	}
	opts := &SendOptions{}

	cmd := &cobra.Command{
		Use:   "send METHOD URL",
		Short: "Send an HTTP request",
		Long:  "Send one HTTP request without the interactive composer and print the response.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, err := core.ParseMethod(args[0])
			if err != nil {
				return err
			}
			return runSend(cmd, globals, method, args[1], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Params, "param", "q", nil, "Query parameters (format: key=value, '&' separates pairs)")
	cmd.Flags().StringArrayVarP(&opts.Headers, "header", "H", nil, "Request headers (format: Key: Value)")
	cmd.Flags().StringVarP(&opts.Body, "body", "d", "", "Request body")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output response as JSON")

	return cmd
}

func runSend(cmd *cobra.Command, globals *GlobalOptions, method core.Method, url string, opts *SendOptions) error {
	cfg, err := globals.resolve(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	req := core.BuildRequest(
		method,
		url,
		strings.Join(opts.Params, "\n"),
		strings.Join(opts.Headers, "\n"),
		opts.Body,
	)

	resp, err := newApp(cfg, globals.version, logger).Send(cmd.Context(), req)
	if err != nil {
		logger.Warn("send failed", "method", method.String(), "url", url, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	logger.Info("send", "method", method.String(), "url", url, "status", resp.Status().Code())

	if opts.JSON {
		return outputJSON(cmd, resp)
	}
	return outputHuman(cmd, resp)
}

func outputJSON(cmd *cobra.Command, resp *core.Response) error {
	result := map[string]any{
		"status":      resp.Status().Code(),
		"status_text": resp.Status().Text(),
		"headers":     resp.Headers().ToMap(),
		"timing_ms":   resp.Timing().Total.Milliseconds(),
	}
	body, err := resp.Text()
	if err != nil {
		result["body_error"] = err.Error()
	} else {
		result["body"] = body
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputHuman(cmd *cobra.Command, resp *core.Response) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "HTTP %s\n", resp.Status())
	fmt.Fprintf(out, "Time: %dms\n", resp.Timing().Total.Milliseconds())
	fmt.Fprintln(out)

	if resp.Headers().Len() > 0 {
		fmt.Fprintln(out, "Headers:")
		for _, line := range strings.Split(resp.Headers().Format(), "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}
		fmt.Fprintln(out)
	}

	body, err := resp.Text()
	if err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if body != "" {
		fmt.Fprintln(out, "Body:")
		fmt.Fprintln(out, body)
	}

	return nil
}
