package analysis

import "github.com/ignite/creative-engine/internal/domain"

// spendBandFraction defines how close a peer's spend must be to the
// subject's for spend-based cohort membership.
const spendBandFraction = 0.5

// CompareToPeers computes the subject's relative uplift against its peer
// cohort. The cohort is a single merged set: other creatives in the same
// campaign, or with spend within 50% of the subject's. The subject itself
// is always excluded. An empty cohort yields zero uplifts with sample
// size 0.
func CompareToPeers(subject domain.CreativeRecord, all []domain.CreativeRecord) domain.PeerComparison {
	var peers []domain.CreativeRecord
	for _, c := range all {
		if c.ID == subject.ID {
			continue
		}
		sameCampaign := c.CampaignID != "" && c.CampaignID == subject.CampaignID
		similarSpend := subject.Spend > 0 && abs(c.Spend-subject.Spend) <= spendBandFraction*subject.Spend
		if sameCampaign || similarSpend {
			peers = append(peers, c)
		}
	}

	if len(peers) == 0 {
		return domain.PeerComparison{}
	}

	cmp := domain.PeerComparison{SampleSize: len(peers)}

	var ctrSum float64
	for _, p := range peers {
		ctrSum += p.CTR
	}
	cmp.PeerAvgCTR = ctrSum / float64(len(peers))

	// CPA and ROAS averages only cover peers reporting each metric.
	var cpaSum float64
	var cpaN int
	var roasSum float64
	var roasN int
	for _, p := range peers {
		if p.CPA != nil {
			cpaSum += *p.CPA
			cpaN++
		}
		if p.ROAS != nil {
			roasSum += *p.ROAS
			roasN++
		}
	}
	if cpaN > 0 {
		cmp.PeerAvgCPA = cpaSum / float64(cpaN)
	}
	if roasN > 0 {
		cmp.PeerAvgROAS = roasSum / float64(roasN)
	}

	if cmp.PeerAvgCTR > 0 {
		cmp.CTRUplift = (subject.CTR - cmp.PeerAvgCTR) / cmp.PeerAvgCTR
	}
	if subject.CPA != nil && cmp.PeerAvgCPA > 0 {
		cmp.CPAUplift = (*subject.CPA - cmp.PeerAvgCPA) / cmp.PeerAvgCPA
	}
	if subject.ROAS != nil && cmp.PeerAvgROAS > 0 {
		cmp.ROASUplift = (*subject.ROAS - cmp.PeerAvgROAS) / cmp.PeerAvgROAS
	}
	return cmp
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
