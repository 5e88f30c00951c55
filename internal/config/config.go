// Package config loads YAML job files describing a conversion: the
// environment to run in and the document to render.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	wkhtmltopdf "github.com/ajsjunior/wkhtmltopdf-1"
	"github.com/ajsjunior/wkhtmltopdf-1/internal/yamlutil"
)

// Sentinel errors for job file operations.
var (
	ErrJobNotFound  = errors.New("job file not found")
	ErrEmptyJobName = errors.New("job name cannot be empty")
	ErrJobParse     = errors.New("failed to parse job file")
	ErrInvalidJob   = errors.New("invalid job file")
)

// Unit types accepted in a job file.
const (
	UnitPage  = "page"
	UnitCover = "cover"
	UnitTOC   = "toc"
)

// appDir is the folder under the user config directory searched for jobs.
const appDir = "wkhtmltopdf-go"

// Job is the YAML form of one conversion.
type Job struct {
	Executable    string `yaml:"executable,omitempty"`
	ExecutableDir string `yaml:"executableDir,omitempty"`
	TempDir       string `yaml:"tempDir,omitempty"`
	Timeout       string `yaml:"timeout,omitempty"` // Go duration, e.g. "90s"
	Stdin         bool   `yaml:"stdin,omitempty"`
	Output        string `yaml:"output,omitempty"`

	Options wkhtmltopdf.GlobalOptions `yaml:"options,omitempty"`
	Page    wkhtmltopdf.PageOptions   `yaml:"page,omitempty"`
	Units   []Unit                    `yaml:"units,omitempty"`

	dir string // folder of the job file, for relative paths
}

// Unit is one entry of Job.Units.
type Unit struct {
	Type    string                          `yaml:"type,omitempty"`    // page (default), cover, toc
	Content string                          `yaml:"content,omitempty"` // URL, absolute path or inline HTML
	File    string                          `yaml:"file,omitempty"`    // relative to the job file
	Literal bool                            `yaml:"literal,omitempty"`
	Options wkhtmltopdf.PageOptions         `yaml:"options,omitempty"`
	Header  wkhtmltopdf.HeaderFooterOptions `yaml:"header,omitempty"`
	Footer  wkhtmltopdf.HeaderFooterOptions `yaml:"footer,omitempty"`
	TOC     wkhtmltopdf.TOCOptions          `yaml:"toc,omitempty"`
}

// Validate checks the job structure. Document-level invariants are left
// to wkhtmltopdf.Document.Validate.
func (j *Job) Validate() error {
	if j.Timeout != "" {
		d, err := time.ParseDuration(j.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout: %v", ErrInvalidJob, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: timeout: must be positive, got %s", ErrInvalidJob, j.Timeout)
		}
	}

	for i, u := range j.Units {
		field := fmt.Sprintf("units[%d]", i)
		switch u.kind() {
		case UnitPage, UnitCover:
			if u.Content != "" && u.File != "" {
				return fmt.Errorf("%w: %s: content and file are mutually exclusive", ErrInvalidJob, field)
			}
			if u.Content == "" && u.File == "" {
				return fmt.Errorf("%w: %s: content or file is required", ErrInvalidJob, field)
			}
		case UnitTOC:
			if u.Content != "" || u.File != "" {
				return fmt.Errorf("%w: %s: toc takes no content", ErrInvalidJob, field)
			}
		default:
			return fmt.Errorf("%w: %s.type: invalid value %q (must be page, cover, or toc)", ErrInvalidJob, field, u.Type)
		}
	}
	return nil
}

func (u Unit) kind() string {
	if u.Type == "" {
		return UnitPage
	}
	return strings.ToLower(u.Type)
}

// TimeoutDuration returns the parsed timeout, or zero when unset.
func (j *Job) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(j.Timeout)
	return d
}

// Environment returns the environment settings of the job.
func (j *Job) Environment() wkhtmltopdf.Environment {
	return wkhtmltopdf.Environment{
		ExecutablePath: j.executable(),
		ExecutableDir:  j.resolvePath(j.ExecutableDir),
		TempDir:        j.resolvePath(j.TempDir),
		Timeout:        j.TimeoutDuration(),
		Stdin:          j.Stdin,
	}
}

// executable keeps bare command names for PATH lookup.
func (j *Job) executable() string {
	if !isFilePath(j.Executable) {
		return j.Executable
	}
	return j.resolvePath(j.Executable)
}

// OutputPath returns the output file, relative to the job file.
func (j *Job) OutputPath() string {
	return j.resolvePath(j.Output)
}

// Document builds the document described by the job. File units become
// absolute paths so wkhtmltopdf reads them directly.
func (j *Job) Document() *wkhtmltopdf.Document {
	doc := &wkhtmltopdf.Document{Options: j.Options, Page: j.Page}
	for _, u := range j.Units {
		content := u.Content
		if u.File != "" {
			content = j.resolvePath(u.File)
		}

		switch u.kind() {
		case UnitCover:
			doc.Units = append(doc.Units, &wkhtmltopdf.Cover{Content: content, Literal: u.Literal, Options: u.Options})
		case UnitTOC:
			doc.Units = append(doc.Units, &wkhtmltopdf.TableOfContents{Options: u.TOC, Header: u.Header, Footer: u.Footer})
		default:
			doc.Units = append(doc.Units, &wkhtmltopdf.Page{
				Content: content, Literal: u.Literal, Options: u.Options, Header: u.Header, Footer: u.Footer,
			})
		}
	}
	return doc
}

// resolvePath makes p absolute against the job file folder.
func (j *Job) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(filepath.Join(j.dir, p))
	if err != nil {
		return p
	}
	return abs
}

// Sample returns a small job used by the init command.
func Sample() *Job {
	return &Job{
		Timeout: "60s",
		Output:  "report.pdf",
		Options: wkhtmltopdf.GlobalOptions{
			PageSize: wkhtmltopdf.Size(wkhtmltopdf.PageSizeA4),
			Title:    wkhtmltopdf.String("Report"),
		},
		Page: wkhtmltopdf.PageOptions{
			PrintMediaType: wkhtmltopdf.Bool(true),
		},
		Units: []Unit{
			{Type: UnitCover, Content: "<html><body><h1>Report</h1></body></html>"},
			{Type: UnitTOC},
			{
				Type:    UnitPage,
				Content: "https://example.com",
				Footer:  wkhtmltopdf.HeaderFooterOptions{Right: wkhtmltopdf.String("[page]/[topage]")},
			},
		},
	}
}

// Encode renders the job as YAML.
func (j *Job) Encode() ([]byte, error) {
	return yamlutil.Marshal(j)
}

// LoadJob loads a job from a file path or job name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadJob(nameOrPath string) (*Job, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyJobName
	}

	var jobPath string
	var err error

	if isFilePath(nameOrPath) {
		jobPath = nameOrPath
	} else {
		jobPath, err = resolveJobPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(jobPath) // #nosec G304 -- job path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobPath)
		}
		return nil, fmt.Errorf("reading job file: %w", err)
	}

	job, err := ParseJob(data)
	if err != nil {
		return nil, err
	}
	job.dir = filepath.Dir(jobPath)
	return job, nil
}

// ParseJob decodes and validates a job. Relative paths resolve against the
// working directory.
func ParseJob(data []byte) (*Job, error) {
	var job Job
	if err := yamlutil.UnmarshalStrict(data, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJobParse, err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveJobPath searches for a job file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/wkhtmltopdf-go/
func resolveJobPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrJobNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
