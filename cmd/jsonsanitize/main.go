// Command jsonsanitize is a filter that repairs JSON-ish text from stdin
// (or a file) into strictly valid, embedding-safe JSON on stdout.
//
//	echo "{foo:'bar',}" | jsonsanitize
//	jsonsanitize -in messy.json -out clean.json -max-depth 128
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrymomot/jsonsanitize"
)

func main() {
	var (
		inPath   = flag.String("in", "", "input file (default stdin)")
		outPath  = flag.String("out", "", "output file (default stdout)")
		maxDepth = flag.Int("max-depth", jsonsanitize.DefaultNestingDepth, "maximum container nesting depth")
	)
	flag.Parse()

	if err := run(*inPath, *outPath, *maxDepth); err != nil {
		fmt.Fprintf(os.Stderr, "jsonsanitize: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, maxDepth int) error {
	var in io.Reader = os.Stdin
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	clean, err := jsonsanitize.Sanitize(string(raw), jsonsanitize.WithMaxNestingDepth(maxDepth))
	if err != nil {
		if errors.Is(err, jsonsanitize.ErrNestingTooDeep) {
			return fmt.Errorf("input rejected: %w", err)
		}
		return err
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	_, err = io.WriteString(out, clean)
	return err
}
