package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wkhtmltopdf-go [command] [flags] [inputs]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert URLs, HTML or Markdown to PDF (default)")
	fmt.Fprintln(w, "  doctor     Check the wkhtmltopdf installation")
	fmt.Fprintln(w, "  init       Write a sample job file")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'wkhtmltopdf-go help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wkhtmltopdf-go convert [flags] [inputs...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert pages into one PDF. Inputs are URLs, local files or - for stdin.")
	fmt.Fprintln(w, "Markdown files (.md, .markdown) are rendered to HTML first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>            Output PDF (default: <first input>.pdf)")
	fmt.Fprintln(w, "      --stdout                   Write the PDF to standard output")
	fmt.Fprintln(w, "  -c, --config <name>            Job file name or path")
	fmt.Fprintln(w, "      --env-file <path>          Dotenv file (default: .env)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintln(w, "  -t, --timeout <d>              Run timeout, e.g. 30s, 2m (default: 60s)")
	fmt.Fprintln(w, "      --executable <path>        wkhtmltopdf binary")
	fmt.Fprintln(w, "      --executable-dir <dir>     wkhtmltopdf install folder")
	fmt.Fprintln(w, "      --temp-dir <dir>           Folder for temporary files")
	fmt.Fprintln(w, "      --pipe                     Feed the first inline page on stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Structure:")
	fmt.Fprintln(w, "      --cover <input>            Cover page")
	fmt.Fprintln(w, "      --toc                      Insert a table of contents")
	fmt.Fprintln(w, "      --toc-header <s>           Table of contents heading")
	fmt.Fprintln(w, "      --code-style <name>        Highlighting style for Markdown (default: github)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -s, --page-size <s>            A4, Letter, Legal, ...")
	fmt.Fprintln(w, "  -O, --orientation <s>          portrait, landscape")
	fmt.Fprintln(w, "      --title <s>                PDF title")
	fmt.Fprintln(w, "  -T, --margin-top <mm>          Top margin")
	fmt.Fprintln(w, "  -B, --margin-bottom <mm>       Bottom margin")
	fmt.Fprintln(w, "  -L, --margin-left <mm>         Left margin")
	fmt.Fprintln(w, "  -R, --margin-right <mm>        Right margin")
	fmt.Fprintln(w, "  -g, --grayscale                Render in grayscale")
	fmt.Fprintln(w, "  -l, --lowquality               Smaller, lower quality output")
	fmt.Fprintln(w, "  -d, --dpi <n>                  Output DPI")
	fmt.Fprintln(w, "      --image-quality <n>        JPEG quality (0-100)")
	fmt.Fprintln(w, "      --copies <n>               Number of copies")
	fmt.Fprintln(w, "      --no-outline               Do not add a PDF outline")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	fmt.Fprintln(w, "      --no-background            Do not print backgrounds")
	fmt.Fprintln(w, "      --print-media-type         Use print media CSS")
	fmt.Fprintln(w, "      --enable-local-file-access Allow local files to load other files")
	fmt.Fprintln(w, "      --zoom <f>                 Zoom factor")
	fmt.Fprintln(w, "      --javascript-delay <ms>    Wait for JavaScript")
	fmt.Fprintln(w, "      --load-error-handling <s>  abort, ignore, skip")
	fmt.Fprintln(w, "      --user-style-sheet <path>  Extra CSS for every page")
	fmt.Fprintln(w, "      --cookie <k=v>             Cookie (repeatable)")
	fmt.Fprintln(w, "      --custom-header <k=v>      HTTP header (repeatable)")
	fmt.Fprintln(w, "      --run-script <js>          Script run after load (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Header/Footer:")
	fmt.Fprintln(w, "      --header-left|center|right <s>  Header text ([page], [topage], [title], ...)")
	fmt.Fprintln(w, "      --header-html <input>           Header HTML")
	fmt.Fprintln(w, "      --header-line                   Line below the header")
	fmt.Fprintln(w, "      --footer-left|center|right <s>  Footer text")
	fmt.Fprintln(w, "      --footer-html <input>           Footer HTML")
	fmt.Fprintln(w, "      --footer-line                   Line above the footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                    Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose                  Show debug logs and the command line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  WKHTMLTOPDF_DIR, WKHTMLTOPDF_PATH, WKHTMLTOPDF_TEMP_DIR,")
	fmt.Fprintln(w, "  WKHTMLTOPDF_TIMEOUT, WKHTMLTOPDF_JOB")
	fmt.Fprintln(w, "  Precedence: flags > environment > job file > defaults")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wkhtmltopdf-go doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that wkhtmltopdf can be found and run.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json               Print results as JSON")
	fmt.Fprintln(w, "      --smoke              Convert a small page end to end")
	fmt.Fprintln(w, "      --executable <path>  wkhtmltopdf binary")
	fmt.Fprintln(w, "      --temp-dir <dir>     Folder for temporary files")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wkhtmltopdf-go init [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a sample job file (default: job.yaml).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --force    Overwrite an existing file")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: wkhtmltopdf-go version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: wkhtmltopdf-go help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
