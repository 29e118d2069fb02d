package specs

import (
	"time"

	"github.com/ignite/creative-engine/internal/domain"
)

// snapshotTTL is how long a fetched policy snapshot is considered current.
const snapshotTTL = 24 * time.Hour

// DefaultPolicy is the hardcoded last-resort policy used when no snapshot
// has ever been fetched or persisted.
func DefaultPolicy() domain.PlatformPolicy {
	return domain.PlatformPolicy{
		Headline: domain.HeadlinePolicy{
			MaxChars:  60,
			WarnChars: 45,
			BannedWords: []string{
				"free money", "guaranteed", "miracle", "get rich",
				"risk free", "100% free", "click here",
			},
		},
		Image: domain.ImagePolicy{
			AllowedFormats:  []string{"jpg", "jpeg", "png", "gif", "webp"},
			MaxBytes:        5 * 1024 * 1024,
			MinWidth:        600,
			MinHeight:       315,
			TargetAspect:    16.0 / 9.0,
			AspectTolerance: 0.2,
		},
	}
}

func defaultSnapshot() *domain.SpecSnapshot {
	return &domain.SpecSnapshot{
		ID:        "builtin",
		Version:   "builtin-default",
		FetchedAt: time.Now().UTC(),
		Policy:    DefaultPolicy(),
	}
}
