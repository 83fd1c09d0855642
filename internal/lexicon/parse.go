package lexicon

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// DefaultSnippetLength is how many runes of a malformed file are kept.
const DefaultSnippetLength = 500

// maxDiagnostics bounds the line errors kept in Parsed.Diagnostics.
const maxDiagnostics = 5

// Grammar identifies which parse strategy produced the records.
type Grammar int

const (
	// GrammarDocument parsed the file as one JSON value.
	GrammarDocument Grammar = iota + 1
	// GrammarLines parsed the file as one JSON object per line.
	GrammarLines
)

func (g Grammar) String() string {
	switch g {
	case GrammarDocument:
		return "document"
	case GrammarLines:
		return "lines"
	default:
		return "unknown"
	}
}

// LineError records a line the line grammar rejected.
type LineError struct {
	Line int // 1-based
	Err  error
}

func (e LineError) String() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Parsed is the output of Parse.
type Parsed struct {
	Records     []RawRecord
	Grammar     Grammar
	LineErrors  int
	Ignored     int
	Diagnostics []LineError
}

var (
	commentLine   = regexp.MustCompile(`(?m)^[ \t]*(//|#).*$`)
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// Clean applies the lenient preprocessing shared by both grammars: a
// leading byte order mark is dropped, full-line comments are blanked and
// trailing commas before a closing bracket are removed.
func Clean(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = commentLine.ReplaceAllString(text, "")
	return trailingComma.ReplaceAllString(text, "$1")
}

// Parse turns file text into an ordered sequence of raw records.
func Parse(text string) (*Parsed, error) {
	return parse(text, DefaultSnippetLength)
}

func parse(text string, snippetLen int) (*Parsed, error) {
	cleaned := Clean(text)

	records, docErr := parseDocument(cleaned)
	if docErr == nil {
		return &Parsed{Records: records, Grammar: GrammarDocument}, nil
	}

	parsed := parseLines(cleaned)
	if len(parsed.Records) == 0 {
		return nil, &MalformedError{
			Cause:      docErr.Error(),
			Snippet:    snippet(text, snippetLen),
			LineErrors: parsed.LineErrors,
		}
	}
	return parsed, nil
}

func parseDocument(text string) ([]RawRecord, error) {
	v, err := decodeValue(text)
	if err != nil {
		return nil, err
	}

	switch doc := v.(type) {
	case []any:
		records := make([]RawRecord, 0, len(doc))
		for _, el := range doc {
			obj, _ := el.(map[string]any)
			records = append(records, RawRecord(obj))
		}
		return records, nil
	case map[string]any:
		return []RawRecord{doc}, nil
	default:
		return nil, fmt.Errorf("top-level value is a %s, not an object or array", kindOf(v))
	}
}

func parseLines(text string) *Parsed {
	parsed := &Parsed{Grammar: GrammarLines}

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}

		v, err := decodeValue(line)
		if err == nil {
			if _, ok := v.(map[string]any); !ok {
				err = fmt.Errorf("line holds a %s, not an object", kindOf(v))
			}
		}
		if err != nil {
			parsed.LineErrors++
			if len(parsed.Diagnostics) < maxDiagnostics {
				parsed.Diagnostics = append(parsed.Diagnostics, LineError{Line: i + 1, Err: err})
			}
			continue
		}

		rec := RawRecord(v.(map[string]any))
		if rec.HeadWord() == "" {
			parsed.Ignored++
			continue
		}
		parsed.Records = append(parsed.Records, rec)
	}

	return parsed
}

// decodeValue parses exactly one JSON value, keeping numbers verbatim.
func decodeValue(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no JSON value found")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	default:
		return "object"
	}
}

func snippet(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
