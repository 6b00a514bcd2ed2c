// Command asm24 drives the assembler core over one or more source files,
// producing the four output artifacts (.am, .ob, .ent, .ext) per file.
//
// Flag parsing, a per-file error banner printed to stderr, and os.Exit with
// a status reflecting failure across a positional list of source files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"asm24/pkg/assembler"
	"asm24/pkg/diag"
	"asm24/pkg/emit"
	"asm24/pkg/utils"
)

const version = "asm24 1.0.0"

func main() {
	showVersion := flag.Bool("v", false, "print version and exit")
	showVersionLong := flag.Bool("version", false, "print version and exit")
	showHelp := flag.Bool("h", false, "print usage and exit")
	showHelpLong := flag.Bool("help", false, "print usage and exit")
	flag.Parse()

	if *showHelp || *showHelpLong {
		printUsage()
		os.Exit(0)
	}
	if *showVersion || *showVersionLong {
		fmt.Println(version)
		os.Exit(0)
	}

	files := flag.Args()
	if len(files) == 0 {
		printUsage()
		os.Exit(1)
	}

	failed := false
	for _, path := range files {
		if err := assembleFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: asm24 [-h|--help] [-v|--version] file1.as [file2.as ...]")
}

func assembleFile(path string) error {
	if !strings.HasSuffix(path, ".as") {
		return fmt.Errorf("source file must have a .as suffix")
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	fullPath, _, err := utils.GetPathInfo(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	base := utils.OutputBase(fullPath, ".as")
	sink := diag.New()
	sink.SetFile(path)

	res, err := assembler.Assemble(string(source), sink)
	if res != nil {
		if werr := emit.WriteExpanded(base+".am", res.Expanded); werr != nil {
			return werr
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %d error(s) reported\n", path, sink.Count())
		return fmt.Errorf("assembly failed")
	}

	if werr := emit.WriteObject(base+".ob", res.State); werr != nil {
		return werr
	}
	if werr := emit.WriteEntries(base+".ent", res.State); werr != nil {
		return werr
	}
	if werr := emit.WriteExterns(base+".ext", res.State); werr != nil {
		return werr
	}

	fmt.Printf("%s: assembled (%d code words, %d data words)\n", path, len(res.State.Code), len(res.State.Data))
	return nil
}
