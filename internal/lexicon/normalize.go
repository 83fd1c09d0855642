package lexicon

import "strings"

// Field names of the word-book export format.
const (
	headWordKey    = "headWord"
	usPhoneKey     = "usphone"
	ukPhoneKey     = "ukphone"
	transKey       = "trans"
	tranCnKey      = "tranCn"
	sentenceKey    = "sentence"
	sentencesKey   = "sentences"
	sContentKey    = "sContent"
	sTranslatedKey = "sCn"
)

// contentPath locates the payload object inside a record.
var contentPath = []string{"content", "word", "content"}

// Normalize converts a raw record into an Entry. It reports false when the
// record has no head word; every other missing field becomes an empty value.
func Normalize(rec RawRecord) (Entry, bool) {
	word := rec.HeadWord()
	if word == "" {
		return Entry{}, false
	}

	content := rec.Object(contentPath...)

	phonetic := content.Text(usPhoneKey)
	if phonetic == "" {
		phonetic = content.Text(ukPhoneKey)
	}

	return Entry{
		Word:        word,
		Phonetic:    phonetic,
		Definitions: definitions(content),
		Examples:    examples(content),
	}, true
}

func definitions(content RawRecord) string {
	trans := content.List(transKey)
	if len(trans) == 0 {
		return ""
	}

	senses := make([]string, 0, len(trans))
	for _, t := range trans {
		sense, _ := t.(map[string]any)
		senses = append(senses, RawRecord(sense).Text(tranCnKey))
	}
	return strings.Join(senses, DefinitionSeparator)
}

func examples(content RawRecord) []Example {
	sentences := content.List(sentenceKey, sentencesKey)
	if len(sentences) > MaxExamples {
		sentences = sentences[:MaxExamples]
	}
	out := make([]Example, 0, len(sentences))
	for _, s := range sentences {
		sentence, _ := s.(map[string]any)
		rec := RawRecord(sentence)
		out = append(out, Example{
			Source:      rec.Text(sContentKey),
			Translation: rec.Text(sTranslatedKey),
		})
	}
	return out
}
