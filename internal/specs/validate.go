package specs

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ignite/creative-engine/internal/domain"
	"github.com/ignite/creative-engine/internal/features"
)

var (
	reValidatorDigits  = regexp.MustCompile(`\d`)
	reSpecialChars     = regexp.MustCompile(`[!?%&*#@~^]`)
	reURLSizeHint      = regexp.MustCompile(`(\d{2,4})[xX](\d{2,4})`)
	allCapsMinLen      = 5
	overLengthPenalty  = 30
	warnLengthPenalty  = 10
	allCapsPenalty     = 20
	bannedWordPenalty  = 25
	validationBonus    = 5
	aspectRatioPenalty = 15
)

// ValidateHeadline scores a headline against the current platform policy.
// Hard errors (length, all-caps, banned words) invalidate; warnings do not.
func (c *Client) ValidateHeadline(ctx context.Context, text string) domain.HeadlineValidation {
	policy := c.Current(ctx).Policy.Headline

	v := domain.HeadlineValidation{
		Score:           100,
		HasDigits:       reValidatorDigits.MatchString(text),
		HasSpecialChars: reSpecialChars.MatchString(text),
		HasCTA:          features.HasCTA(text),
		Sentiment:       features.Sentiment(text),
	}

	if policy.MaxChars > 0 && len(text) > policy.MaxChars {
		v.Errors = append(v.Errors, fmt.Sprintf("headline is %d characters, limit is %d", len(text), policy.MaxChars))
		v.Score -= overLengthPenalty
	} else if policy.WarnChars > 0 && len(text) > policy.WarnChars {
		v.Warnings = append(v.Warnings, fmt.Sprintf("headline is %d characters, recommended maximum is %d", len(text), policy.WarnChars))
		v.Score -= warnLengthPenalty
	}

	if isAllCaps(text) {
		v.Errors = append(v.Errors, "headline is entirely upper case")
		v.Score -= allCapsPenalty
	}

	if banned := matchedBannedWords(text, policy.BannedWords); len(banned) > 0 {
		v.Errors = append(v.Errors, "banned words present: "+strings.Join(banned, ", "))
		v.Score -= bannedWordPenalty
	}

	if v.HasDigits {
		v.Score += validationBonus
	}
	if v.HasCTA {
		v.Score += validationBonus
	}
	if v.Sentiment == "positive" {
		v.Score += validationBonus
	}

	if v.Score > 100 {
		v.Score = 100
	}
	if v.Score < 0 {
		v.Score = 0
	}
	v.IsValid = len(v.Errors) == 0
	return v
}

// ValidateImageURL issues a HEAD request (fixed timeout, no retries) to
// read content type and length, then validates against policy. True pixel
// dimensions are not fetched; they are estimated from WxH hints embedded
// in the URL string, pending real image-metadata extraction. Network
// failure fails closed: isValid false, score 0, descriptive error.
func (c *Client) ValidateImageURL(ctx context.Context, rawURL string) domain.ImageValidation {
	policy := c.Current(ctx).Policy.Image

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return domain.ImageValidation{
			Errors: []string{fmt.Sprintf("invalid image URL: %v", err)},
		}
	}
	resp, err := c.headClient.Do(req)
	if err != nil {
		return domain.ImageValidation{
			Errors: []string{fmt.Sprintf("image could not be reached: %v", err)},
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.ImageValidation{
			Errors: []string{fmt.Sprintf("image request returned status %d", resp.StatusCode)},
		}
	}

	v := domain.ImageValidation{Score: 100}
	v.Format = formatFromContentType(resp.Header.Get("Content-Type"))
	v.Bytes = resp.ContentLength

	if !formatAllowed(v.Format, policy.AllowedFormats) {
		v.Errors = append(v.Errors, fmt.Sprintf("format %q is not allowed", v.Format))
		v.Score -= 40
	}
	if policy.MaxBytes > 0 && v.Bytes > policy.MaxBytes {
		v.Errors = append(v.Errors, fmt.Sprintf("image is %d bytes, limit is %d", v.Bytes, policy.MaxBytes))
		v.Score -= 30
	}

	if m := reURLSizeHint.FindStringSubmatch(rawURL); m != nil {
		v.EstimatedWidth, _ = strconv.Atoi(m[1])
		v.EstimatedHeight, _ = strconv.Atoi(m[2])
	}
	if v.EstimatedWidth > 0 && v.EstimatedHeight > 0 {
		v.AspectRatio = float64(v.EstimatedWidth) / float64(v.EstimatedHeight)
		if policy.TargetAspect > 0 && math.Abs(v.AspectRatio-policy.TargetAspect) > policy.AspectTolerance {
			v.Warnings = append(v.Warnings, fmt.Sprintf("estimated aspect ratio %.2f deviates from target %.2f", v.AspectRatio, policy.TargetAspect))
			v.Score -= aspectRatioPenalty
		}
		if (policy.MinWidth > 0 && v.EstimatedWidth < policy.MinWidth) ||
			(policy.MinHeight > 0 && v.EstimatedHeight < policy.MinHeight) {
			v.Warnings = append(v.Warnings, fmt.Sprintf("estimated dimensions %dx%d are below the %dx%d minimum",
				v.EstimatedWidth, v.EstimatedHeight, policy.MinWidth, policy.MinHeight))
			v.Score -= 10
		}
	} else {
		v.Warnings = append(v.Warnings, "no size hint in URL, dimensions unknown")
	}

	if v.Score < 0 {
		v.Score = 0
	}
	v.IsValid = len(v.Errors) == 0
	return v
}

func isAllCaps(text string) bool {
	if len(text) <= allCapsMinLen {
		return false
	}
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

func matchedBannedWords(text string, banned []string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, w := range banned {
		if strings.Contains(lower, strings.ToLower(w)) {
			out = append(out, w)
		}
	}
	return out
}

func formatFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	return strings.TrimPrefix(ct, "image/")
}

func formatAllowed(format string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, format) {
			return true
		}
	}
	return false
}
