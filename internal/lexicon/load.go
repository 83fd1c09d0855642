package lexicon

import "fmt"

// LoadOptions tunes Load.
type LoadOptions struct {
	// SnippetLength is the rune length of MalformedError.Snippet.
	// Zero means DefaultSnippetLength.
	SnippetLength int
}

// Import is a parsed and normalized lexicon file.
type Import struct {
	Entries     []Entry
	Skipped     int
	LineErrors  int
	Ignored     int
	Grammar     Grammar
	Diagnostics []LineError
}

// Summary renders the counts shown to the operator after an import.
func (imp *Import) Summary() string {
	return fmt.Sprintf("imported %d, skipped %d", len(imp.Entries), imp.Skipped)
}

// Words returns the head words of all entries in order.
func (imp *Import) Words() []string {
	words := make([]string, len(imp.Entries))
	for i, e := range imp.Entries {
		words[i] = e.Word
	}
	return words
}

// Load parses text and normalizes every record. When no record yields an
// entry it returns ErrEmptyLexicon together with the Import, so callers
// can still report how much was skipped.
func Load(text string, opts LoadOptions) (*Import, error) {
	snippetLen := opts.SnippetLength
	if snippetLen == 0 {
		snippetLen = DefaultSnippetLength
	}

	parsed, err := parse(text, snippetLen)
	if err != nil {
		return nil, err
	}

	imp := &Import{
		Entries:     make([]Entry, 0, len(parsed.Records)),
		LineErrors:  parsed.LineErrors,
		Ignored:     parsed.Ignored,
		Grammar:     parsed.Grammar,
		Diagnostics: parsed.Diagnostics,
	}
	for _, rec := range parsed.Records {
		entry, ok := Normalize(rec)
		if !ok {
			imp.Skipped++
			continue
		}
		imp.Entries = append(imp.Entries, entry)
	}

	if len(imp.Entries) == 0 {
		return imp, ErrEmptyLexicon
	}
	return imp, nil
}
