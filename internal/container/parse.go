package container

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
)

// maxLineSize bounds one JSON line; containers with many labels produce long lines.
const maxLineSize = 1024 * 1024

// errMissingField marks a line that decodes but lacks Names or State.
var errMissingField = errors.New("object must have string Names and State")

// listLine is one line of `ls --format json`. Pointer fields tell a missing
// key (or a `null` line) apart from an empty string.
type listLine struct {
	Names *string `json:"Names"`
	State *string `json:"State"`
}

// parseEntries decodes JSON-lines listing output. Blank lines are skipped.
// A single malformed line fails the whole listing.
func parseEntries(out []byte) ([]Entry, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var entries []Entry
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var l listLine
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		if l.Names == nil || l.State == nil {
			return nil, &ParseError{Line: lineNo, Err: errMissingField}
		}
		entries = append(entries, Entry{Names: *l.Names, State: *l.State})
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: lineNo + 1, Err: err}
	}

	return entries, nil
}

// runningToken reports whether inspect output means "running". Strict mode
// requires the exact bytes `true`; trimmed mode first strips whitespace and
// the quote characters the inspect format template wraps the value in.
func runningToken(out []byte, trim bool) bool {
	if trim {
		out = bytes.Trim(bytes.TrimSpace(out), `'"`)
	}
	return bytes.Equal(out, []byte("true"))
}
