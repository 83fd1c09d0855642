// Package lexicon parses vocabulary exports and normalizes them into entries.
package lexicon

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DefinitionSeparator joins translated senses in Entry.Definitions.
const DefinitionSeparator = "；"

// MaxExamples is the number of example sentences kept per entry.
const MaxExamples = 2

// Entry is one normalized vocabulary record.
// Entries are values; nothing mutates them after Normalize returns.
type Entry struct {
	Word        string    `json:"word" yaml:"word"`
	Phonetic    string    `json:"phonetic,omitempty" yaml:"phonetic,omitempty"`
	Definitions string    `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	Examples    []Example `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Example is a usage sentence and its translation. Either side may be empty.
type Example struct {
	Source      string `json:"source" yaml:"source"`
	Translation string `json:"translation" yaml:"translation"`
}

// RawRecord is one untyped record as produced by a parse grammar.
// All accessors are total: a missing key, a nil record or a value of the
// wrong shape yields the zero value.
type RawRecord map[string]any

func (r RawRecord) lookup(path ...string) any {
	var cur any = map[string]any(r)
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

// Text returns the text form of the scalar at path, or "".
func (r RawRecord) Text(path ...string) string {
	return textOf(r.lookup(path...))
}

// List returns the array at path, or nil.
func (r RawRecord) List(path ...string) []any {
	list, _ := r.lookup(path...).([]any)
	return list
}

// Object returns the object at path as a RawRecord, or nil.
func (r RawRecord) Object(path ...string) RawRecord {
	obj, _ := r.lookup(path...).(map[string]any)
	return obj
}

// HeadWord returns the trimmed head word, or "" when the record has none.
func (r RawRecord) HeadWord() string {
	return strings.TrimSpace(r.Text(headWordKey))
}

func textOf(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
