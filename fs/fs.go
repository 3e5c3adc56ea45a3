// Package fs resolves command line inputs to pages and local markdown
// files.
package fs

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/notionpub"
)

// InputKind distinguishes the sources an input can refer to.
type InputKind int

const (
	InputPage InputKind = iota // A page ID or page URL.
	InputFile                  // A local markdown file.
)

// Input is a single resolved publishing input.
type Input struct {
	Kind  InputKind
	Value string // page ID for InputPage, file path for InputFile
}

// IsPattern reports whether s contains glob metacharacters.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// Resolve classifies args in order. Glob patterns expand to the files they
// match, existing paths are files, and anything else is a page reference.
// A pattern that matches nothing is an error.
func Resolve(args []string) ([]Input, error) {
	var inputs []Input
	for _, arg := range args {
		if IsPattern(arg) {
			matches, err := Expand(arg)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %q", arg)
			}
			for _, m := range matches {
				inputs = append(inputs, Input{Kind: InputFile, Value: m})
			}
			continue
		}
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			inputs = append(inputs, Input{Kind: InputFile, Value: arg})
			continue
		}
		inputs = append(inputs, Input{Kind: InputPage, Value: notionpub.ParsePageID(arg)})
	}
	return inputs, nil
}
