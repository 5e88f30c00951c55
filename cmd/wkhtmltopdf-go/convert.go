package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	wkhtmltopdf "github.com/ajsjunior/wkhtmltopdf-1"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/config"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/fileutil"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/markdown"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/pdfinfo"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage     = errors.New("invalid usage")
	ErrNoInput   = errors.New("no input specified")
	ErrReadInput = errors.New("failed to read input")
	ErrOutputDir = errors.New("failed to create output directory")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// defaultOutput is used when no input names a local file.
const defaultOutput = "output.pdf"

// runConvertCmd parses flags, assembles the document and converts it.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	logger := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)

	if err := loadDotEnv(flags.common.envFile); err != nil {
		return err
	}
	warnUnknownEnvVars(logger)
	envCfg := loadEnvConfig(logger)

	job, err := loadJob(flags.common.config, envCfg.Job)
	if err != nil {
		return fmt.Errorf("loading job: %w", err)
	}

	wkEnv, err := resolveEnvironment(job, envCfg, flags)
	if err != nil {
		return err
	}

	renderer := markdown.New(markdown.WithStyle(flags.structure.style))
	doc, err := buildDocument(ctx, job, inputs, flags, env.Stdin, renderer)
	if err != nil {
		return err
	}

	out, err := resolveOutput(job, inputs, flags, env.Stdout, logger)
	if err != nil {
		return err
	}

	conv := wkhtmltopdf.NewConverter(
		wkhtmltopdf.WithEnvironment(wkEnv),
		wkhtmltopdf.WithLogger(logger),
	)

	start := time.Now()
	if err := conv.Convert(ctx, doc, out); err != nil {
		return err
	}
	logger.Debug("conversion finished", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

// loadJob loads the job named by the flag, else by WKHTMLTOPDF_JOB.
// Returns nil when neither is set.
func loadJob(flagValue, envValue string) (*config.Job, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return nil, nil
	}
	return config.LoadJob(name)
}

// resolveEnvironment merges the job, environment variables and flags,
// in increasing priority.
func resolveEnvironment(job *config.Job, envCfg *envConfig, flags *convertFlags) (wkhtmltopdf.Environment, error) {
	var e wkhtmltopdf.Environment
	if job != nil {
		e = job.Environment()
	}
	applyEnvConfig(envCfg, &e)

	if flags.changed("executable") {
		e.ExecutablePath = flags.run.executable
	}
	if flags.changed("executable-dir") {
		e.ExecutableDir = flags.run.executableDir
	}
	if flags.changed("temp-dir") {
		e.TempDir = flags.run.tempDir
	}
	if flags.changed("pipe") {
		e.Stdin = flags.run.stdin
	}
	if flags.run.timeout != "" {
		d, err := time.ParseDuration(flags.run.timeout)
		if err != nil || d <= 0 {
			return wkhtmltopdf.Environment{}, fmt.Errorf("%w: --timeout must be a positive duration, got %q", ErrUsage, flags.run.timeout)
		}
		e.Timeout = d
	}
	return e, nil
}

// buildDocument assembles cover, TOC, job units and positional inputs, in
// that order, then applies option flags and renders Markdown files.
func buildDocument(ctx context.Context, job *config.Job, inputs []string, flags *convertFlags, stdin io.Reader, renderer *markdown.Renderer) (*wkhtmltopdf.Document, error) {
	doc := &wkhtmltopdf.Document{}
	if job != nil {
		doc = job.Document()
	}
	if len(inputs) == 0 && len(doc.Units) == 0 {
		return nil, ErrNoInput
	}

	header, footer := flags.headerFooter()
	src := &inputSource{stdin: stdin}

	var units []wkhtmltopdf.Unit
	if flags.structure.cover != "" {
		content, literal, err := src.resolve(flags.structure.cover)
		if err != nil {
			return nil, err
		}
		units = append(units, &wkhtmltopdf.Cover{Content: content, Literal: literal})
	}
	if flags.structure.toc {
		toc := &wkhtmltopdf.TableOfContents{Header: header, Footer: footer}
		if flags.changed("toc-header") {
			toc.Options.HeaderText = wkhtmltopdf.String(flags.structure.tocHeader)
		}
		units = append(units, toc)
	}
	units = append(units, doc.Units...)
	for _, in := range inputs {
		content, literal, err := src.resolve(in)
		if err != nil {
			return nil, err
		}
		units = append(units, &wkhtmltopdf.Page{Content: content, Literal: literal, Header: header, Footer: footer})
	}
	doc.Units = units

	if err := flags.applyGlobal(&doc.Options); err != nil {
		return nil, err
	}
	if err := flags.applyPage(&doc.Page); err != nil {
		return nil, err
	}
	if err := renderMarkdownUnits(ctx, doc, renderer); err != nil {
		return nil, err
	}
	return doc, nil
}

// inputSource resolves positional inputs. Standard input can be read once.
type inputSource struct {
	stdin    io.Reader
	consumed bool
}

// resolve turns an input argument into unit content. URLs pass through,
// local files become absolute paths, and "-" reads markup from stdin.
func (s *inputSource) resolve(arg string) (content string, literal bool, err error) {
	switch {
	case arg == "-":
		if s.consumed {
			return "", false, fmt.Errorf("%w: standard input can only be used once", ErrUsage)
		}
		s.consumed = true
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return "", false, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return string(data), true, nil
	case fileutil.IsURL(arg):
		return arg, false, nil
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", false, fmt.Errorf("%w: %s: %v", ErrReadInput, arg, err)
	}
	if !fileutil.FileExists(abs) {
		return "", false, fmt.Errorf("%w: %s: %w", ErrReadInput, arg, os.ErrNotExist)
	}
	return abs, false, nil
}

// renderMarkdownUnits replaces Markdown file pages and covers with their
// rendered HTML.
func renderMarkdownUnits(ctx context.Context, doc *wkhtmltopdf.Document, renderer *markdown.Renderer) error {
	render := func(content *string, literal *bool) error {
		if *literal || !isMarkdownFile(*content) || !filepath.IsAbs(*content) {
			return nil
		}
		data, err := os.ReadFile(*content) // #nosec G304 -- path is a user-provided input
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		title := strings.TrimSuffix(filepath.Base(*content), filepath.Ext(*content))
		html, err := renderer.Render(ctx, string(data), title)
		if err != nil {
			return err
		}
		*content, *literal = html, true
		return nil
	}

	for _, u := range doc.Units {
		var err error
		switch u := u.(type) {
		case *wkhtmltopdf.Page:
			err = render(&u.Content, &u.Literal)
		case *wkhtmltopdf.Cover:
			err = render(&u.Content, &u.Literal)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func isMarkdownFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// resolveOutput picks the sinks: --output, then the job's output, then a
// name derived from the first local input. --stdout alone skips the file.
func resolveOutput(job *config.Job, inputs []string, flags *convertFlags, stdout io.Writer, logger *slog.Logger) (wkhtmltopdf.Output, error) {
	path := flags.run.output
	if path == "" && !flags.run.stdout {
		if job != nil {
			path = job.OutputPath()
		}
		if path == "" {
			path = defaultOutputPath(inputs)
		}
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
			return wkhtmltopdf.Output{}, fmt.Errorf("%w: %w", ErrOutputDir, err)
		}
	}

	out := wkhtmltopdf.Output{Path: path, Callback: summarize(logger, path)}
	if flags.run.stdout {
		out.Writer = stdout
	}
	return out, nil
}

// defaultOutputPath derives <name>.pdf from the first local file input.
func defaultOutputPath(inputs []string) string {
	for _, in := range inputs {
		if in == "-" || fileutil.IsURL(in) {
			continue
		}
		return strings.TrimSuffix(in, filepath.Ext(in)) + ".pdf"
	}
	return defaultOutput
}

// summarize logs the page count of the produced PDF. Inspection failures
// are logged, never returned.
func summarize(logger *slog.Logger, path string) func(*wkhtmltopdf.Document, []byte) error {
	dest := path
	if dest == "" {
		dest = "stdout"
	}
	return func(doc *wkhtmltopdf.Document, pdf []byte) error {
		info, err := pdfinfo.Inspect(pdf)
		if err != nil {
			logger.Warn("could not read page count", "output", dest, "error", err)
			return nil
		}
		logger.Info("PDF written", "output", dest, "pages", info.Pages, "bytes", info.Size, "units", len(doc.Units))
		return nil
	}
}
