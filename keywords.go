package expanse

// JSON-LD keywords.
const (
	KeywordBase      = "@base"
	KeywordContainer = "@container"
	KeywordContext   = "@context"
	KeywordGraph     = "@graph"
	KeywordID        = "@id"
	KeywordIndex     = "@index"
	KeywordLanguage  = "@language"
	KeywordList      = "@list"
	KeywordSet       = "@set"
	KeywordType      = "@type"
	KeywordVersion   = "@version"
	KeywordVocab     = "@vocab"
)

// JSON-LD MIME type for context documents.
const ApplicationLDJSON = "application/ld+json"

// aliasableKeywords are the keywords a context may alias to another term.
var aliasableKeywords = []string{
	KeywordID,
	KeywordType,
	KeywordContainer,
	KeywordSet,
	KeywordList,
	KeywordGraph,
}

// containerKeywords are the values accepted for a term's @container.
var containerKeywords = []string{
	KeywordList,
	KeywordSet,
	KeywordLanguage,
	KeywordIndex,
	KeywordID,
	KeywordType,
}

// looksLikeKeyword determines if a string has the general shape of a JSON-LD
// keyword: "@" followed by alpha characters only.
func looksLikeKeyword(s string) bool {
	if len(s) < 2 {
		return false
	}

	if s[0] != '@' {
		return false
	}

	for _, char := range s[1:] {
		if (char < 'a' || char > 'z') &&
			(char < 'A' || char > 'Z') {
			return false
		}
	}

	return true
}
