package wkhtmltopdf

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ajsjunior/wkhtmltopdf-1/internal/fileutil"
)

// Compile-time interface implementation checks.
var (
	_ commandRunner = (*execRunner)(nil)
	_ Unit          = (*Page)(nil)
	_ Unit          = (*Cover)(nil)
	_ Unit          = (*TableOfContents)(nil)
)

// Converter turns Documents into PDFs by running wkhtmltopdf.
// It holds no per-conversion state and is safe for concurrent use.
type Converter struct {
	env    Environment
	runner commandRunner
	logger *slog.Logger
	exists func(string) bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithEnvironment replaces the whole environment.
func WithEnvironment(env Environment) Option {
	return func(c *Converter) {
		c.env = env
	}
}

// WithTimeout sets the deadline for one wkhtmltopdf run.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.env.Timeout = d
	}
}

// WithExecutable sets the wkhtmltopdf binary to run.
func WithExecutable(path string) Option {
	return func(c *Converter) {
		c.env.ExecutablePath = path
	}
}

// WithExecutableDir sets the install folder searched for the binary.
func WithExecutableDir(dir string) Option {
	return func(c *Converter) {
		c.env.ExecutableDir = dir
	}
}

// WithTempDir sets where inline content and ephemeral PDFs are written.
func WithTempDir(dir string) Option {
	return func(c *Converter) {
		c.env.TempDir = dir
	}
}

// WithStdin routes the first inline page through standard input.
func WithStdin(enabled bool) Option {
	return func(c *Converter) {
		c.env.Stdin = enabled
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// withRunner replaces process execution (tests only).
func withRunner(r commandRunner) Option {
	return func(c *Converter) {
		c.runner = r
	}
}

// NewConverter creates a Converter. Unset environment fields are resolved
// on each Convert call.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		logger: slog.New(slog.DiscardHandler),
		exists: fileutil.FileExists,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.runner == nil {
		c.runner = &execRunner{logger: c.logger}
	}
	return c
}

// Convert renders doc with the given environment (nil for defaults) and
// delivers the PDF to out.
func Convert(ctx context.Context, doc *Document, env *Environment, out Output) error {
	var opts []Option
	if env != nil {
		opts = append(opts, WithEnvironment(*env))
	}
	return NewConverter(opts...).Convert(ctx, doc, out)
}

// Convert validates doc, runs wkhtmltopdf once and delivers the result.
// Every temp file created along the way is removed before returning,
// whatever the outcome. Recovers from internal panics.
func (c *Converter) Convert(ctx context.Context, doc *Document, out Output) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := doc.Validate(); err != nil {
		return err
	}
	if err := out.validate(); err != nil {
		return err
	}

	env, err := c.env.resolve(c.exists)
	if err != nil {
		return err
	}
	c.logger.Debug("resolved environment",
		"executable", env.ExecutablePath, "temp_dir", env.TempDir, "timeout", env.Timeout)

	ws := newWorkspace(env.TempDir, env.Stdin)
	defer ws.cleanup(c.logger)

	dest := out.Path
	if dest == "" {
		dest, err = fileutil.TempPath(env.TempDir, "pdf")
		if err != nil {
			return err
		}
		ws.track(dest)
	}

	args, err := buildArgs(doc, ws, dest)
	if err != nil {
		return err
	}

	cmd := Command{Path: env.ExecutablePath, Args: args, Stdin: ws.stdin, Output: dest}
	if err := c.invoke(ctx, cmd, env.Timeout); err != nil {
		return err
	}

	return deliver(doc, dest, out)
}

// invoke runs cmd and decides success. A non-zero exit only fails the
// conversion when no output file was produced.
func (c *Converter) invoke(ctx context.Context, cmd Command, timeout time.Duration) error {
	c.logger.Debug("running wkhtmltopdf", "command", cmd.String())

	start := time.Now()
	res, err := c.runner.Run(ctx, cmd, timeout)
	if err != nil {
		return err
	}

	if res.ExitCode != 0 {
		if !c.exists(cmd.Output) {
			return &ProcessError{
				Kind:     ErrConversionFailed,
				Command:  cmd.String(),
				ExitCode: res.ExitCode,
				Stderr:   string(res.Stderr),
			}
		}
		c.logger.Warn("wkhtmltopdf reported warnings",
			"exit_code", res.ExitCode, "stderr", string(res.Stderr))
	}

	c.logger.Debug("wkhtmltopdf finished", "output", cmd.Output, "duration", time.Since(start))
	return nil
}
