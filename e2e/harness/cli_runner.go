package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/artpar/reqpane/internal/cli"
)

// CLIResult is the captured output of one in-process command run.
type CLIResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// SendRequest describes one `reqpane send` invocation. Params and Headers use
// the composer's text formats ("k=v", "Name: value").
type SendRequest struct {
	Method  string
	URL     string
	Params  []string
	Headers []string
	Body    string
	Global  []string // flags placed before the subcommand, e.g. --timeout
}

func (r SendRequest) args(jsonOut bool) []string {
	args := append([]string{}, r.Global...)
	args = append(args, "send", r.Method, r.URL)
	for _, p := range r.Params {
		args = append(args, "-q", p)
	}
	for _, h := range r.Headers {
		args = append(args, "-H", h)
	}
	if r.Body != "" {
		args = append(args, "-d", r.Body)
	}
	if jsonOut {
		args = append(args, "--json")
	}
	return args
}

// SendResult mirrors the document printed by `send --json`.
type SendResult struct {
	Status     int                 `json:"status"`
	StatusText string              `json:"status_text"`
	Headers    map[string][]string `json:"headers"`
	TimingMS   int64               `json:"timing_ms"`
	Body       string              `json:"body"`
	BodyError  string              `json:"body_error"`
}

// CLIRunner runs the root command in-process against the harness config dir.
type CLIRunner struct {
	harness *E2EHarness
}

// Run executes the root command with args.
func (r *CLIRunner) Run(args ...string) (*CLIResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.harness.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand("e2e")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	result := &CLIResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		result.ExitCode = 1
	}
	return result, err
}

// Send runs `send` with human-readable output.
func (r *CLIRunner) Send(req SendRequest) (*CLIResult, error) {
	return r.Run(req.args(false)...)
}

// SendJSON runs `send --json` and decodes the response document.
func (r *CLIRunner) SendJSON(req SendRequest) (*SendResult, error) {
	out, err := r.Run(req.args(true)...)
	if err != nil {
		return nil, err
	}
	var result SendResult
	if err := json.Unmarshal([]byte(out.Stdout), &result); err != nil {
		return nil, fmt.Errorf("decode send output: %w\n%s", err, out.Stdout)
	}
	return &result, nil
}
