package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a Word document to PDF")
	fmt.Fprintln(w, "  batch      Convert every Word document in a folder")
	fmt.Fprintln(w, "  run        Convert as described by a config file")
	fmt.Fprintln(w, "  watch      Convert documents as they appear in a folder")
	fmt.Fprintln(w, "  find       List recently modified PDF files")
	fmt.Fprintln(w, "  doctor     Check that a conversion engine is available")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'word2pdf help <command>' for details on a specific command.")
}

// printEngineFlags prints the flags shared by conversion commands.
func printEngineFlags(w io.Writer) {
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "  -e, --engine <name>       Engine: office (LibreOffice), word (Windows only)")
	fmt.Fprintln(w, "      --soffice <path>      LibreOffice binary (default: auto-detect)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (default: 10m)")
	fmt.Fprintln(w, "      --lock-file <path>    Engine lock file (default: in temp directory)")
	fmt.Fprintln(w, "      --validate            Fail when the produced PDF cannot be parsed")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show session stages and debug logs")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  WORD2PDF_ENGINE, WORD2PDF_SOFFICE, WORD2PDF_TIMEOUT, WORD2PDF_LOCK_FILE,")
	fmt.Fprintln(w, "  WORD2PDF_LOG_LEVEL (also read from .env). Flags take precedence.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf convert <document> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a .doc or .docx file to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default: beside the document)")
	fmt.Fprintln(w)
	printEngineFlags(w)
}

// printBatchUsage prints usage for the batch command.
func printBatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf batch <folder> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every .doc and .docx file in a folder. A document that fails")
	fmt.Fprintln(w, "is reported and skipped; the batch carries on.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output folder (default: beside each document)")
	fmt.Fprintln(w, "  -r, --recursive           Include subfolders, mirrored under --output")
	fmt.Fprintln(w)
	printEngineFlags(w)
}

// printRunUsage prints usage for the run command.
func printRunUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf run [config] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert as described by a JSON or YAML config file. The config is")
	fmt.Fprintln(w, "looked up in the working directory, then ~/.config/go-word2pdf/.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: config.json)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Keys:")
	fmt.Fprintln(w, "  batch_mode, recursive, input_file, output_file, input_folder,")
	fmt.Fprintln(w, "  output_folder, engine, office_binary, timeout, lock_file, validate_output")
	fmt.Fprintln(w)
	printEngineFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf watch <folder> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Word documents created or changed in a folder until interrupted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output folder (default: beside each document)")
	fmt.Fprintln(w, "  -r, --recursive           Watch subfolders too")
	fmt.Fprintln(w, "      --existing            Convert documents already present first")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before converting (default: 2s)")
	fmt.Fprintln(w)
	printEngineFlags(w)
}

// printFindUsage prints usage for the find command.
func printFindUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: word2pdf find [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List PDF files modified recently under dir (default: current directory),")
	fmt.Fprintln(w, "newest first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -H, --hours <n>           Look back this many hours (default: 1)")
	fmt.Fprintln(w, "  -m, --match <pattern>     Fuzzy file name filter")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "batch":
		printBatchUsage(env.Stdout)
	case "run":
		printRunUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "find":
		printFindUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: word2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check engines, the engine lock and the temp directory.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: word2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: word2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
