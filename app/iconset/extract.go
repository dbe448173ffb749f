package iconset

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	PhosphorStartMarker = "export const icons = ("
	PhosphorEndMarker   = ") satisfies readonly IconEntry[];"

	snippetLength = 500
)

var (
	ErrMarkerNotFound = errors.New("marker not found")
	ErrNotArray       = errors.New("extracted content is not an array literal")
	ErrInvalidJSON    = errors.New("rewritten literal is not valid JSON")
)

// ExtractStage names the step of the extraction that failed.
type ExtractStage string

const (
	StageLocate ExtractStage = "locate"
	StageUnwrap ExtractStage = "unwrap"
	StageDecode ExtractStage = "decode"
)

type ExtractError struct {
	Stage   ExtractStage
	Snippet string
	Err     error
}

func (e *ExtractError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("phosphor extract (%s): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("phosphor extract (%s): %v: %s", e.Stage, e.Err, e.Snippet)
}

func (e *ExtractError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

var (
	enumConstant  = regexp.MustCompile(`\b(?:IconCategory|FigmaCategory)\.([A-Z_]+)`)
	repeatedComma = regexp.MustCompile(`,{2,}`)
	leadingComma  = regexp.MustCompile(`([{\[])\s*,+`)
	bareKey       = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)\s*:`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)

// LocateLiteral returns the text between the first start marker and the last
// end marker that follows it.
func LocateLiteral(src, start, end string) (string, error) {
	startIndex := strings.Index(src, start)
	if startIndex == -1 {
		return "", &ExtractError{Stage: StageLocate, Err: fmt.Errorf("%w: start %q", ErrMarkerNotFound, start)}
	}

	endIndex := strings.LastIndex(src, end)
	if endIndex == -1 || endIndex < startIndex+len(start) {
		return "", &ExtractError{Stage: StageLocate, Err: fmt.Errorf("%w: end %q", ErrMarkerNotFound, end)}
	}

	return src[startIndex+len(start) : endIndex], nil
}

// UnwrapArray strips wrapping parentheses and a <const> assertion and checks
// that an array literal remains.
func UnwrapArray(literal string) (string, error) {
	literal = strings.TrimSpace(literal)

	if strings.HasPrefix(literal, "(") && strings.HasSuffix(literal, ")") {
		literal = strings.TrimSpace(literal[1 : len(literal)-1])
	}

	if strings.HasPrefix(strings.ToLower(literal), "<const>") {
		literal = strings.TrimSpace(literal[len("<const>"):])
	}

	if !strings.HasPrefix(literal, "[") || !strings.HasSuffix(literal, "]") {
		return "", &ExtractError{Stage: StageUnwrap, Snippet: snippet(literal), Err: ErrNotArray}
	}

	return literal, nil
}

// RewriteLiteral turns a TypeScript array literal into JSON text: enum
// constants become strings, bare keys get quoted and stray commas go away.
func RewriteLiteral(literal string) string {
	literal = enumConstant.ReplaceAllString(literal, `"${1}"`)

	literal = repeatedComma.ReplaceAllString(literal, ",")
	literal = leadingComma.ReplaceAllString(literal, "${1}")

	literal = bareKey.ReplaceAllString(literal, `"${1}":`)

	return trailingComma.ReplaceAllString(literal, "${1}")
}

// ExtractPhosphor pulls the icon entries out of Phosphor's icons.ts source.
func ExtractPhosphor(src string) ([]map[string]any, error) {
	literal, err := LocateLiteral(src, PhosphorStartMarker, PhosphorEndMarker)
	if err != nil {
		return nil, err
	}

	literal, err = UnwrapArray(literal)
	if err != nil {
		return nil, err
	}

	rewritten := RewriteLiteral(literal)

	var entries []map[string]any
	if err := json.Unmarshal([]byte(rewritten), &entries); err != nil {
		return nil, &ExtractError{
			Stage:   StageDecode,
			Snippet: snippet(rewritten),
			Err:     fmt.Errorf("%w: %w", ErrInvalidJSON, err),
		}
	}

	return entries, nil
}

// snippet keeps the head and tail of long text for diagnostics.
func snippet(text string) string {
	if len(text) <= 2*snippetLength {
		return text
	}
	head := snippetLength
	for head > 0 && !utf8.RuneStart(text[head]) {
		head--
	}
	tail := len(text) - snippetLength
	for tail < len(text) && !utf8.RuneStart(text[tail]) {
		tail++
	}
	return text[:head] + " ... " + text[tail:]
}
