package classify

import "strings"

// Word lists below follow the original service's Turkish/English corpus.
// Matching is substring-based over lowercased content throughout.

// positiveWords and negativeWords feed the lexical polarity estimator and
// the rating-mismatch estimate of the fake classifier.
var positiveWords = []string{
	"good", "great", "excellent", "amazing", "perfect",
	"iyi", "harika", "mükemmel", "süper", "güzel",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "worst",
	"kötü", "berbat", "çöp", "kullanılamaz", "sorun",
}

// rulePositiveKeywords and ruleNegativeKeywords adjust the rating-derived
// estimate in the final rule-based sentiment fallback.
var rulePositiveKeywords = []string{
	"harika", "mükemmel", "süper", "güzel", "beğendim", "tavsiye",
	"başarılı", "kullanışlı", "pratik", "kolay", "hızlı", "kaliteli",
}

var ruleNegativeKeywords = []string{
	"kötü", "berbat", "çöp", "kullanılamaz", "yavaş", "hatalı",
	"sorun", "problem", "bug", "çökme", "donma", "siliyorum",
}

// spamKeywords are per-language promotional markers.
var spamKeywords = map[string][]string{
	"tr": {
		"reklam", "link", "tıkla", "indir", "ücretsiz para",
		"kazanç", "bonus", "hediye", "çekiliş", "kampanya",
		"telegram", "whatsapp", "instagram", "takip et",
	},
	"en": {
		"click here", "free money", "earn money", "bonus", "gift",
		"telegram", "whatsapp", "instagram", "follow me", "link",
	},
}

// genericTemplates are boilerplate phrases that carry no real signal.
var genericTemplates = []string{
	"good app", "nice app", "great app", "bad app", "not good",
	"iyi uygulama", "güzel uygulama", "kötü uygulama", "beğenmedim",
}

// creativeKeywords mark imaginative or design-focused reviews.
var creativeKeywords = map[string][]string{
	"tr": {
		"hayal", "yaratıcı", "özgün", "farklı", "yenilikçi", "orijinal",
		"tasarım", "sanat", "estetik", "görsel", "hikaye", "karakter",
	},
	"en": {
		"creative", "innovative", "original", "unique", "artistic", "design",
		"aesthetic", "visual", "story", "character", "imagination",
	},
}

// constructiveKeywords mark actionable feedback.
var constructiveKeywords = map[string][]string{
	"tr": {
		"öneri", "tavsiye", "geliştirilmeli", "eklenmeli", "özellik",
		"güncelleme", "iyileştirme", "geliştirici", "feedback", "daha iyi",
	},
	"en": {
		"suggestion", "recommend", "improve", "feature", "update",
		"enhancement", "developer", "feedback", "better", "should add",
	},
}

// solutionPhrases are explicit proposals, weighted double.
var solutionPhrases = []string{
	"şöyle olsa", "böyle yapılsa", "eklenirse", "if you add", "should be",
}

// humorWords complement the humor regex patterns.
var humorWords = []string{
	"komik", "gülmek", "eğlenceli", "funny", "hilarious", "amusing",
}

// metaphorMarkers hint at similes and comparisons-as-imagery.
var metaphorMarkers = []string{
	"gibi", "benzer", "sanki", "like", "as if", "similar",
}

// detailedKeywords are causal or explanatory connectives.
var detailedKeywords = []string{
	"çünkü", "nedeni", "sebep", "because", "reason", "why", "how",
	"nasıl", "neden", "örneğin", "mesela", "for example", "such as",
}

// comparisonWords mark relative judgements.
var comparisonWords = []string{
	"daha", "en", "better", "worse", "best", "worst", "versus", "compared",
}

// countContained counts how many needles occur as substrings of the
// lowercased haystack. Needles are stored lowercase already.
func countContained(haystackLower string, needles []string) int {
	hits := 0
	for _, needle := range needles {
		if needle != "" && strings.Contains(haystackLower, needle) {
			hits++
		}
	}
	return hits
}
