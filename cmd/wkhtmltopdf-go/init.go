package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/ajsjunior/wkhtmltopdf-1/internal/config"
)

// defaultJobFile is written by init when no path is given.
const defaultJobFile = "job.yaml"

// ErrJobExists is returned by init when the target exists and --force is unset.
var ErrJobExists = errors.New("job file already exists")

// runInit writes a sample job file.
func runInit(args []string, env *Environment) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	force := fs.BoolP("force", "f", false, "overwrite an existing file")
	fs.Usage = func() { printInitUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: init takes at most one path", ErrUsage)
	}

	path := defaultJobFile
	if fs.NArg() == 1 {
		path = fs.Arg(0)
	}

	if !*force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrJobExists, path)
		}
	}

	data, err := config.Sample().Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputDir, err)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil { // #nosec G306 -- job files are not secret
		return fmt.Errorf("writing job file: %w", err)
	}

	fmt.Fprintf(env.Stdout, "wrote %s\n", path)
	return nil
}
