// Package features derives structured creative features from raw creative
// records: headline linguistics, heuristic image traits, and destination
// URL properties. Extraction is pure and fails soft; a malformed
// destination URL yields a zeroed feature object, never an error.
package features

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ignite/creative-engine/internal/domain"
)

// Keyword lists are deliberately static. They encode copywriting heuristics
// the team has validated against historical creative performance.
var (
	brandKeywords = []string{"official", "original", "authentic", "certified", "trusted"}

	positiveWords = []string{
		"great", "best", "love", "amazing", "easy", "free", "save",
		"win", "new", "proven", "guaranteed", "happy", "perfect",
	}
	negativeWords = []string{
		"worst", "bad", "hate", "never", "problem", "avoid",
		"stop", "broken", "fail", "wrong", "scam",
	}

	benefitKeywords = []string{
		"save", "free", "easy", "fast", "boost", "improve", "proven",
		"effortless", "affordable", "guaranteed",
	}
	curiosityKeywords = []string{
		"secret", "revealed", "surprising", "truth", "nobody", "hidden",
		"finally", "weird",
	}
	urgencyKeywords = []string{
		"now", "today", "limited", "hurry", "ends", "last chance",
		"don't miss", "expires",
	}
	stepKeywords = []string{
		"steps", "ways", "tips", "hacks", "rules", "lessons", "reasons",
	}
	ctaKeywords = []string{
		"shop now", "buy", "sign up", "learn more", "get started",
		"order", "subscribe", "download", "claim", "try",
	}
	superlativeKeywords = []string{
		"best", "top", "ultimate", "greatest", "#1", "leading", "unbeatable",
	}

	imperativeStarters = []string{
		"get", "try", "start", "discover", "shop", "buy", "join",
		"claim", "grab", "unlock", "save", "stop", "learn",
	}

	colorNames = []string{
		"red", "blue", "green", "yellow", "orange", "purple", "pink",
		"black", "white", "teal",
	}

	reDigits        = regexp.MustCompile(`\d`)
	reCurrency      = regexp.MustCompile(`[$€£¥]`)
	reQuestionStart = regexp.MustCompile(`(?i)^(how|what|why|when|where|who|which|can|do|does|is|are|will|would|should)\b`)

	ecommerceHints = []string{
		"shop", "store", "cart", "checkout", "product", "buy", "order", "sale",
	}
)

// Extract builds the full feature bundle for one creative record.
func Extract(rec domain.CreativeRecord) domain.FeatureBundle {
	return domain.FeatureBundle{
		Headline:    ExtractHeadline(rec.Headline),
		Image:       ExtractImage(rec.ThumbnailURL),
		Destination: ExtractDestination(rec.DestinationURL),
	}
}

// ExtractHeadline derives linguistic features from headline text.
func ExtractHeadline(text string) domain.HeadlineFeatures {
	lower := strings.ToLower(text)
	return domain.HeadlineFeatures{
		Length:              len(text),
		HasNumerals:         reDigits.MatchString(text),
		HasCurrency:         reCurrency.MatchString(text),
		HasBrandKeyword:     containsAny(lower, brandKeywords),
		Format:              classifyFormat(text, lower),
		Sentiment:           Sentiment(text),
		BenefitKeywords:     matchedKeywords(lower, benefitKeywords),
		CuriosityKeywords:   matchedKeywords(lower, curiosityKeywords),
		UrgencyKeywords:     matchedKeywords(lower, urgencyKeywords),
		StepKeywords:        matchedKeywords(lower, stepKeywords),
		CTAKeywords:         matchedKeywords(lower, ctaKeywords),
		SuperlativeKeywords: matchedKeywords(lower, superlativeKeywords),
	}
}

// ExtractImage derives image traits by matching substrings inside the
// thumbnail URL and filename. This is a deliberate stand-in for real
// computer vision: accuracy is low, but the ImageFeatures contract lets a
// genuine vision backend replace it without downstream changes.
func ExtractImage(thumbnailURL string) domain.ImageFeatures {
	lower := strings.ToLower(thumbnailURL)

	f := domain.ImageFeatures{
		HasFace:        containsAny(lower, []string{"face", "person", "portrait", "people", "smile", "selfie"}),
		HasTextOverlay: containsAny(lower, []string{"text", "banner", "overlay", "sale", "percent", "offer"}),
		HasLogo:        containsAny(lower, []string{"logo", "brand"}),
		IsStorefront:   containsAny(lower, []string{"store", "shop", "storefront", "interior"}),
	}
	f.HasEyeContact = f.HasFace && containsAny(lower, []string{"close", "closeup", "close-up", "eye", "portrait"})

	for _, c := range colorNames {
		if strings.Contains(lower, c) {
			f.DominantColor = c
			break
		}
	}

	// Contrast and complexity are categorical stand-ins derived from the
	// other flags, there is no pixel data to measure them from.
	if f.HasTextOverlay {
		f.Contrast = "high"
	} else if f.DominantColor != "" {
		f.Contrast = "medium"
	} else {
		f.Contrast = "low"
	}

	flags := 0
	for _, set := range []bool{f.HasFace, f.HasTextOverlay, f.HasLogo, f.IsStorefront} {
		if set {
			flags++
		}
	}
	switch {
	case flags >= 3:
		f.Complexity = "complex"
	case flags >= 1:
		f.Complexity = "moderate"
	default:
		f.Complexity = "simple"
	}
	return f
}

// ExtractDestination parses the landing-page URL. Parse failure returns a
// zeroed feature object with Parsed=false rather than an error. LoadTime
// and MobileFriendly are placeholders until real HTTP probing lands.
func ExtractDestination(rawURL string) domain.DestinationFeatures {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return domain.DestinationFeatures{}
	}

	lower := strings.ToLower(u.Host + u.Path)
	return domain.DestinationFeatures{
		Parsed:         true,
		Domain:         u.Hostname(),
		IsEcommerce:    containsAny(lower, ecommerceHints),
		HasSSL:         u.Scheme == "https",
		LoadTime:       "unknown",
		MobileFriendly: true,
	}
}

// Sentiment classifies text by majority vote between positive and negative
// keyword hit counts. Ties, including zero hits, are neutral.
func Sentiment(text string) string {
	lower := strings.ToLower(text)
	pos := countHits(lower, positiveWords)
	neg := countHits(lower, negativeWords)
	switch {
	case pos > neg:
		return "positive"
	case neg > pos:
		return "negative"
	default:
		return "neutral"
	}
}

// HasCTA reports whether the text contains a call-to-action keyword.
func HasCTA(text string) bool {
	return containsAny(strings.ToLower(text), ctaKeywords)
}

func classifyFormat(text, lower string) string {
	if strings.HasSuffix(strings.TrimSpace(text), "?") || reQuestionStart.MatchString(text) {
		return "question"
	}
	for _, s := range imperativeStarters {
		if strings.HasPrefix(lower, s+" ") || lower == s {
			return "imperative"
		}
	}
	return "statement"
}

func matchedKeywords(lower string, list []string) []string {
	var out []string
	for _, kw := range list {
		if strings.Contains(lower, kw) {
			out = append(out, kw)
		}
	}
	return out
}

func containsAny(lower string, list []string) bool {
	for _, kw := range list {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func countHits(lower string, list []string) int {
	n := 0
	for _, kw := range list {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}
