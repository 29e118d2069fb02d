package domain

// HeadlineFeatures describes structural and linguistic properties of a
// creative's headline text.
type HeadlineFeatures struct {
	Length              int      `json:"length"`
	HasNumerals         bool     `json:"has_numerals"`
	HasCurrency         bool     `json:"has_currency"`
	HasBrandKeyword     bool     `json:"has_brand_keyword"`
	Format              string   `json:"format"` // question, imperative, statement
	Sentiment           string   `json:"sentiment"`
	BenefitKeywords     []string `json:"benefit_keywords"`
	CuriosityKeywords   []string `json:"curiosity_keywords"`
	UrgencyKeywords     []string `json:"urgency_keywords"`
	StepKeywords        []string `json:"step_keywords"`
	CTAKeywords         []string `json:"cta_keywords"`
	SuperlativeKeywords []string `json:"superlative_keywords"`
}

// ImageFeatures describes heuristic visual properties of a creative's
// thumbnail. These are derived from URL/filename substring matching, not
// pixel data; accuracy is low. The contract is stable so a real vision
// backend can be substituted without touching scoring or recommendations.
type ImageFeatures struct {
	HasFace        bool   `json:"has_face"`
	HasEyeContact  bool   `json:"has_eye_contact"`
	HasTextOverlay bool   `json:"has_text_overlay"`
	HasLogo        bool   `json:"has_logo"`
	IsStorefront   bool   `json:"is_storefront"`
	DominantColor  string `json:"dominant_color"`
	Contrast       string `json:"contrast"`   // low, medium, high
	Complexity     string `json:"complexity"` // simple, moderate, complex
}

// DestinationFeatures describes the landing page a creative points at.
// LoadTime and MobileFriendly are placeholders pending real HTTP probing.
// Parsed is false when the URL could not be parsed; all other fields are
// then zero values.
type DestinationFeatures struct {
	Parsed         bool   `json:"parsed"`
	Domain         string `json:"domain"`
	IsEcommerce    bool   `json:"is_ecommerce"`
	HasSSL         bool   `json:"has_ssl"`
	LoadTime       string `json:"load_time"`
	MobileFriendly bool   `json:"mobile_friendly"`
}

// FeatureBundle is the full feature snapshot extracted from one creative.
type FeatureBundle struct {
	Headline    HeadlineFeatures    `json:"headline"`
	Image       ImageFeatures       `json:"image"`
	Destination DestinationFeatures `json:"destination"`
}
