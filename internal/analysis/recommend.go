package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/osteele/liquid"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/pkg/logger"
)

const (
	maxHeadlineRecs = 12
	maxImageRecs    = 8
)

// SpecsProvider supplies the current platform policy snapshot. Implemented
// by specs.Client; never returns nil.
type SpecsProvider interface {
	Current(ctx context.Context) *domain.SpecSnapshot
}

// headlineTemplate is one liquid transform applied to the existing headline.
type headlineTemplate struct {
	src        string
	kind       string // number, question, urgency
	reason     string
	confidence int
	tmpl       *liquid.Template
}

var headlineTemplateDefs = []headlineTemplate{
	{src: "{{ n }} Reasons to Love {{ headline }}", kind: "number",
		reason: "numeric hooks lift CTR for list-style headlines", confidence: 80},
	{src: "Top {{ n }} Picks: {{ headline }}", kind: "number",
		reason: "ranked framing adds a concrete hook", confidence: 75},
	{src: "Ready for {{ headline }}?", kind: "question",
		reason: "question framing invites engagement", confidence: 78},
	{src: "What If You Could Get {{ headline }}?", kind: "question",
		reason: "hypothetical questions raise curiosity", confidence: 72},
	{src: "Last Chance: {{ headline }}", kind: "urgency",
		reason: "scarcity phrasing drives immediate clicks", confidence: 76},
	{src: "{{ headline }} Today Only", kind: "urgency",
		reason: "deadline phrasing drives immediate clicks", confidence: 74},
	{src: "Don't Miss Out: {{ headline }}", kind: "urgency",
		reason: "loss-aversion phrasing drives immediate clicks", confidence: 70},
}

// Recommender proposes concrete headline and image variations, consulting
// the specs client so every headline candidate respects platform limits.
type Recommender struct {
	specs     SpecsProvider
	templates []headlineTemplate
}

// NewRecommender compiles the headline templates and returns a ready
// recommender.
func NewRecommender(specs SpecsProvider) (*Recommender, error) {
	engine := liquid.NewEngine()
	templates := make([]headlineTemplate, 0, len(headlineTemplateDefs))
	for _, def := range headlineTemplateDefs {
		tmpl, err := engine.ParseString(def.src)
		if err != nil {
			return nil, fmt.Errorf("parse headline template %q: %w", def.src, err)
		}
		def.tmpl = tmpl
		templates = append(templates, def)
	}
	return &Recommender{specs: specs, templates: templates}, nil
}

// HeadlineRecommendations applies the templated transforms to the existing
// headline. Candidates over the platform's headline length limit are
// dropped. At most 12 results, sorted by descending confidence.
func (r *Recommender) HeadlineRecommendations(ctx context.Context, rec domain.CreativeRecord, f domain.FeatureBundle) []domain.Recommendation {
	maxChars := r.specs.Current(ctx).Policy.Headline.MaxChars

	var out []domain.Recommendation
	for _, t := range r.templates {
		if t.kind == "question" && f.Headline.Format == "question" {
			continue
		}
		conf := t.confidence
		if t.kind == "number" && !f.Headline.HasNumerals {
			conf += 5
		}
		content, err := t.tmpl.RenderString(map[string]interface{}{
			"headline": strings.TrimSpace(rec.Headline),
			"n":        7,
		})
		if err != nil {
			logger.Warn("headline template render failed", "template", t.src, "error", err.Error())
			continue
		}
		if maxChars > 0 && len(content) > maxChars {
			continue
		}
		out = append(out, domain.Recommendation{
			Type:       "headline",
			Content:    content,
			Reason:     t.reason,
			Confidence: conf,
			BasedOn:    "headline:" + t.kind,
		})
	}

	sortByConfidence(out)
	if len(out) > maxHeadlineRecs {
		out = out[:maxHeadlineRecs]
	}
	return out
}

// ImageRecommendations applies the fixed image rule set. At most 8 results,
// sorted by descending confidence.
func (r *Recommender) ImageRecommendations(f domain.FeatureBundle) []domain.Recommendation {
	var out []domain.Recommendation

	if !f.Image.HasFace {
		out = append(out, domain.Recommendation{
			Type:       "image",
			Content:    "Add a human face to the creative",
			Reason:     "creatives with faces consistently outperform faceless ones",
			Confidence: 90,
			BasedOn:    "image:has_face=false",
		})
	}
	if f.Image.HasFace && !f.Image.HasEyeContact {
		out = append(out, domain.Recommendation{
			Type:       "image",
			Content:    "Use a shot with direct eye contact",
			Reason:     "eye contact increases attention capture",
			Confidence: 85,
			BasedOn:    "image:has_eye_contact=false",
		})
	}
	if f.Image.Contrast == "low" {
		out = append(out, domain.Recommendation{
			Type:       "image",
			Content:    "Increase contrast between subject and background",
			Reason:     "low-contrast images get lost in feed placements",
			Confidence: 75,
			BasedOn:    "image:contrast=low",
		})
	}
	if f.Image.Complexity == "complex" {
		out = append(out, domain.Recommendation{
			Type:       "image",
			Content:    "Simplify the composition to a single focal point",
			Reason:     "busy compositions dilute the message at thumbnail size",
			Confidence: 80,
			BasedOn:    "image:complexity=complex",
		})
	}
	if f.Destination.IsEcommerce && !f.Image.IsStorefront {
		out = append(out, domain.Recommendation{
			Type:       "image",
			Content:    "Test a product close-up against a lifestyle shot",
			Reason:     "e-commerce destinations convert better with product-forward imagery",
			Confidence: 70,
			BasedOn:    "image:ecommerce_without_product_shot",
		})
	}

	sortByConfidence(out)
	if len(out) > maxImageRecs {
		out = out[:maxImageRecs]
	}
	return out
}

func sortByConfidence(recs []domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
}
