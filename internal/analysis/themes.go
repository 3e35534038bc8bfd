package analysis

// GeneralTheme is the fallback tag when no vocabulary theme matches.
const GeneralTheme = "general"

// themeTable maps each theme to its keyword list. Declaration order is the
// order themes appear in extraction results.
var themeTable = []struct {
	name     string
	keywords []string
}{
	{"work", []string{
		"work", "job", "career", "business", "project", "meeting", "deadline",
		"office", "colleague", "boss", "employee", "employer", "profession",
		"industry", "company", "organization", "task", "assignment",
		"promotion", "resume", "presentation",
	}},
	{"family", []string{
		"family", "home", "children", "parents", "siblings", "household",
		"mother", "father", "brother", "sister", "grandmother", "grandfather",
		"cousin", "aunt", "uncle", "nephew", "niece", "marriage", "wedding",
		"anniversary",
	}},
	{"health", []string{
		"health", "exercise", "fitness", "wellness", "medical", "doctor",
		"hospital", "medicine", "treatment", "therapy", "recovery", "illness",
		"disease", "pain", "injury", "surgery", "medication", "nurse",
		"clinic", "pharmacy",
	}},
	{"travel", []string{
		"travel", "vacation", "trip", "journey", "destination", "adventure",
		"flight", "hotel", "booking", "tourism", "explore", "visit",
		"sightseeing", "passport", "luggage", "airport", "train", "bus",
		"roadtrip", "backpacking",
	}},
	{"creativity", []string{
		"art", "music", "writing", "design", "creative", "inspiration",
		"painting", "drawing", "sculpture", "photography", "poetry", "novel",
		"story", "song", "instrument", "performance", "gallery", "exhibition",
		"craft", "artistic",
	}},
	{"learning", []string{
		"study", "learn", "education", "knowledge", "skill", "course",
		"school", "university", "college", "student", "teacher", "professor",
		"book", "research", "academic", "degree", "certificate", "training",
		"workshop", "seminar",
	}},
	{"relationships", []string{
		"friend", "relationship", "love", "dating", "partner", "social",
		"boyfriend", "girlfriend", "spouse", "husband", "wife", "companion",
		"acquaintance", "neighbor", "colleague", "mentor", "confidant",
		"support", "trust", "connection",
	}},
	{"technology", []string{
		"tech", "computer", "software", "digital", "online", "app",
		"internet", "website", "programming", "coding", "data", "artificial",
		"intelligence", "smartphone", "laptop", "tablet", "gaming", "social",
		"media", "platform",
	}},
	{"money", []string{
		"money", "financial", "budget", "income", "expense", "investment",
		"savings", "debt", "payment", "cost", "price", "expensive", "cheap",
		"afford", "spend", "earn", "salary", "rent", "bills", "bank",
	}},
}

// Themes returns the set of vocabulary themes whose keywords exact-match at
// least one token of the text, in table declaration order. Always non-empty:
// when nothing matches it returns ["general"].
func Themes(text string) []string {
	tokens := Tokenize(text)
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		seen[tok] = true
	}

	var found []string
	for _, theme := range themeTable {
		for _, kw := range theme.keywords {
			if seen[kw] {
				found = append(found, theme.name)
				break
			}
		}
	}

	if len(found) == 0 {
		return []string{GeneralTheme}
	}
	return found
}

// ThemeVocabulary returns the fixed theme names in declaration order,
// excluding the general fallback.
func ThemeVocabulary() []string {
	names := make([]string, len(themeTable))
	for i, t := range themeTable {
		names[i] = t.name
	}
	return names
}
