package pagelens

import "regexp"

// Language is an ISO 639-1 language code.
type Language string

// Supported languages.
const (
	LangRomanian   Language = "ro"
	LangEnglish    Language = "en"
	LangFrench     Language = "fr"
	LangSpanish    Language = "es"
	LangGerman     Language = "de"
	LangItalian    Language = "it"
	LangPortuguese Language = "pt"
)

// DefaultLanguage is returned when no language scores any matches and wins
// ties against equally scored candidates.
const DefaultLanguage = LangEnglish

// languageOrder fixes the scoring order so that detection is deterministic.
// Ties between equally scored languages resolve to the earlier entry, with
// DefaultLanguage first.
var languageOrder = []Language{
	LangEnglish,
	LangRomanian,
	LangFrench,
	LangSpanish,
	LangGerman,
	LangItalian,
	LangPortuguese,
}

// languagePatterns maps each supported language to a regex over its most
// frequent function words. The tables are immutable configuration data
// compiled once at process start.
var languagePatterns = map[Language]*regexp.Regexp{
	LangRomanian:   regexp.MustCompile(`(?i)\b(și|sau|dar|pentru|este|sunt|care|într|după|până|către|acest|această|aceste|fără|foarte|două|trei|unde|când|cum|mai|nu|da|la|cu|de|pe|din|un|o)\b`),
	LangEnglish:    regexp.MustCompile(`(?i)\b(the|and|or|but|for|is|are|was|were|which|that|this|these|with|from|have|has|not|very|where|when|how|more|you|they|their|about)\b`),
	LangFrench:     regexp.MustCompile(`(?i)\b(le|la|les|et|ou|mais|pour|est|sont|qui|que|cette|ces|avec|dans|sur|pas|très|où|quand|comment|plus|vous|ils|leur|être|avoir)\b`),
	LangSpanish:    regexp.MustCompile(`(?i)\b(el|la|los|las|y|o|pero|para|es|son|que|este|esta|estos|con|en|sobre|no|muy|donde|cuando|como|más|usted|ellos|su|ser|tener)\b`),
	LangGerman:     regexp.MustCompile(`(?i)\b(der|die|das|und|oder|aber|für|ist|sind|war|waren|welche|dass|diese|mit|von|haben|hat|nicht|sehr|wo|wann|wie|mehr|sie|ihre|über)\b`),
	LangItalian:    regexp.MustCompile(`(?i)\b(il|lo|la|gli|le|e|o|ma|per|è|sono|che|questo|questa|questi|con|da|su|non|molto|dove|quando|come|più|voi|loro|essere|avere)\b`),
	LangPortuguese: regexp.MustCompile(`(?i)\b(o|a|os|as|e|ou|mas|para|é|são|que|este|esta|estes|com|em|sobre|não|muito|onde|quando|como|mais|você|eles|seu|ser|ter)\b`),
}

// DetectLanguage scores the text against each supported language's function
// word list and returns the highest scoring language. Scoring is pure
// frequency counting; ties resolve deterministically in languageOrder.
func DetectLanguage(text string) Language {
	if text == "" {
		return DefaultLanguage
	}

	best := DefaultLanguage
	bestCount := 0
	for _, lang := range languageOrder {
		count := len(languagePatterns[lang].FindAllStringIndex(text, -1))
		if count > bestCount {
			best = lang
			bestCount = count
		}
	}
	return best
}
