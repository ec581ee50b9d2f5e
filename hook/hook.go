// Package hook runs the external commands configured around a release.
// Hooks receive the resolved release context through environment variables
// (RELEASE_VERSION, RELEASE_STAGE, ...) and perform the work this tool
// delegates: verification, artifact publishing, notifications.
//
// Hooks are argument vectors, not shell strings: the first element is the
// executable, the rest are its arguments. They run sequentially and the
// first failure aborts the release. Nothing is retried unless retries are
// explicitly configured.
package hook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"
)

// ErrEmptyHook is returned when a hook has no command to run.
var ErrEmptyHook = errors.New("hook has no command")

// Result holds the output and error from one hook execution.
type Result struct {
	Stdout   string
	Stderr   string
	Combined string
	ExitCode int
	Err      error
}

// Runner executes release hooks. The zero value is not usable; create one
// with New. A Runner is safe to reuse across hooks; per-call options override
// the Runner's own.
type Runner struct {
	options *Options
}

// Options configures hook execution behavior.
type Options struct {
	// Output handling
	CaptureStdout     bool
	CaptureStderr     bool
	CaptureCombined   bool
	RedirectToConsole bool

	// Retry configuration. Hooks are never retried implicitly: MaxRetries
	// defaults to zero and is only raised through explicit configuration.
	MaxRetries int
	RetryDelay time.Duration
	RetryOn    func(error) bool

	// WorkingDir is the directory the hook runs in.
	WorkingDir string

	// Env holds environment variables appended to the current process
	// environment. This is where the release context travels.
	Env map[string]string

	// Custom stdout/stderr writers (for advanced use cases)
	StdoutWriter io.Writer
	StderrWriter io.Writer
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns default execution options: output captured, no
// console redirect, no retries.
func DefaultOptions() *Options {
	return &Options{
		CaptureStdout: true,
		CaptureStderr: true,
		RetryDelay:    time.Second,
		Env:           make(map[string]string),
	}
}

// New creates a Runner. The given options apply to every hook the Runner
// executes.
func New(opts ...Option) *Runner {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Runner{options: options}
}

// Run executes a single hook and returns its Result. The argv slice is the
// hook's command line: executable first, then arguments. Per-call options
// are applied on top of the Runner's options.
//
// A non-zero exit is an error; the Result still carries the captured output
// and exit code. Context cancellation terminates the hook process.
func (r *Runner) Run(ctx context.Context, argv []string, opts ...Option) (*Result, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyHook
	}

	options := r.mergeOptions(opts...)

	maxAttempts := options.MaxRetries + 1
	var lastResult *Result

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := runOnce(ctx, argv, options)
		lastResult = result

		// Success or exhausted attempts
		if err == nil || attempt == maxAttempts {
			return result, err
		}

		// Check if we should retry
		if options.RetryOn != nil && !options.RetryOn(err) {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, fmt.Errorf("canceled while waiting to retry hook: %w", ctx.Err())
		case <-time.After(options.RetryDelay):
			// Continue to next attempt
		}
	}

	return lastResult, lastResult.Err
}

// RunAll executes hooks in order, stopping at the first failure. It returns
// the results of every hook that ran, including the failing one. The error
// names the hook that failed.
func (r *Runner) RunAll(ctx context.Context, hooks [][]string, opts ...Option) ([]*Result, error) {
	results := make([]*Result, 0, len(hooks))

	for i, argv := range hooks {
		result, err := r.Run(ctx, argv, opts...)
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			name := fmt.Sprintf("hook %d", i)
			if len(argv) > 0 && argv[0] != "" {
				name = fmt.Sprintf("hook %q", argv[0])
			}
			return results, fmt.Errorf("%s failed: %w", name, err)
		}
	}

	return results, nil
}

// runOnce performs a single execution attempt.
func runOnce(ctx context.Context, argv []string, options *Options) (*Result, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	if options.WorkingDir != "" {
		cmd.Dir = options.WorkingDir
	}

	if len(options.Env) > 0 {
		keys := make([]string, 0, len(options.Env))
		for k := range options.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		cmd.Env = os.Environ()
		for _, k := range keys {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, options.Env[k]))
		}
	}

	stdoutBuf, stderrBuf, combinedBuf := setupOutputCapture(cmd, options)

	err := cmd.Run()
	result := newResult(stdoutBuf, stderrBuf, combinedBuf, err)

	if err != nil {
		return result, fmt.Errorf("hook execution failed: %w", err)
	}
	return result, nil
}

// setupOutputCapture configures stdout and stderr writers for the command.
func setupOutputCapture(cmd *exec.Cmd, options *Options) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	var stdoutBuf, stderrBuf, combinedBuf bytes.Buffer

	stdoutWriters := []io.Writer{}
	if options.CaptureCombined {
		stdoutWriters = append(stdoutWriters, &combinedBuf)
	} else if options.CaptureStdout {
		stdoutWriters = append(stdoutWriters, &stdoutBuf)
	}
	if options.RedirectToConsole {
		stdoutWriters = append(stdoutWriters, os.Stdout)
	}
	if options.StdoutWriter != nil {
		stdoutWriters = append(stdoutWriters, options.StdoutWriter)
	}
	if len(stdoutWriters) > 0 {
		cmd.Stdout = io.MultiWriter(stdoutWriters...)
	}

	stderrWriters := []io.Writer{}
	if options.CaptureCombined {
		stderrWriters = append(stderrWriters, &combinedBuf)
	} else if options.CaptureStderr {
		stderrWriters = append(stderrWriters, &stderrBuf)
	}
	if options.RedirectToConsole {
		stderrWriters = append(stderrWriters, os.Stderr)
	}
	if options.StderrWriter != nil {
		stderrWriters = append(stderrWriters, options.StderrWriter)
	}
	if len(stderrWriters) > 0 {
		cmd.Stderr = io.MultiWriter(stderrWriters...)
	}

	return &stdoutBuf, &stderrBuf, &combinedBuf
}

// newResult assembles a Result from the captured output and run error.
func newResult(stdoutBuf, stderrBuf, combinedBuf *bytes.Buffer, err error) *Result {
	result := &Result{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Combined: combinedBuf.String(),
		Err:      err,
	}

	var exitErr *exec.ExitError
	switch {
	case err != nil && errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err == nil:
		result.ExitCode = 0
	default:
		result.ExitCode = -1
	}

	return result
}

func (r *Runner) mergeOptions(opts ...Option) *Options {
	merged := *r.options

	// The env map is shared by reference; copy before per-call mutation.
	if len(opts) > 0 && merged.Env != nil {
		env := make(map[string]string, len(merged.Env))
		for k, v := range merged.Env {
			env[k] = v
		}
		merged.Env = env
	}

	for _, opt := range opts {
		opt(&merged)
	}

	return &merged
}

// Option functions for fluent configuration

// WithCapture configures output capture
func WithCapture(stdout, stderr, combined bool) Option {
	return func(o *Options) {
		o.CaptureStdout = stdout
		o.CaptureStderr = stderr
		o.CaptureCombined = combined
	}
}

// WithConsoleRedirect enables/disables streaming hook output to the console
func WithConsoleRedirect(redirect bool) Option {
	return func(o *Options) {
		o.RedirectToConsole = redirect
	}
}

// WithRetry configures retry behavior
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(o *Options) {
		o.MaxRetries = maxRetries
		o.RetryDelay = delay
	}
}

// WithRetryCondition sets a custom retry condition
func WithRetryCondition(fn func(error) bool) Option {
	return func(o *Options) {
		o.RetryOn = fn
	}
}

// WithWorkingDir sets the working directory
func WithWorkingDir(dir string) Option {
	return func(o *Options) {
		o.WorkingDir = dir
	}
}

// WithEnv adds environment variables
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		if o.Env == nil {
			o.Env = make(map[string]string)
		}
		for k, v := range env {
			o.Env[k] = v
		}
	}
}

// WithEnvVar adds a single environment variable
func WithEnvVar(key, value string) Option {
	return func(o *Options) {
		if o.Env == nil {
			o.Env = make(map[string]string)
		}
		o.Env[key] = value
	}
}

// WithEnviron adds environment variables given as "KEY=VALUE" pairs, the
// form the release context renders itself in. Malformed pairs are skipped.
func WithEnviron(pairs []string) Option {
	return func(o *Options) {
		if o.Env == nil {
			o.Env = make(map[string]string)
		}
		for _, pair := range pairs {
			key, value, found := strings.Cut(pair, "=")
			if !found || key == "" {
				continue
			}
			o.Env[key] = value
		}
	}
}

// WithStdoutWriter sets a custom stdout writer
func WithStdoutWriter(w io.Writer) Option {
	return func(o *Options) {
		o.StdoutWriter = w
	}
}

// WithStderrWriter sets a custom stderr writer
func WithStderrWriter(w io.Writer) Option {
	return func(o *Options) {
		o.StderrWriter = w
	}
}
