package matching

import (
	"sort"
	"strings"

	"myBizHub/domain"
)

type DuplicateConfig struct {
	NameWeight    float64
	EmailWeight   float64
	PhoneWeight   float64
	WebsiteWeight float64

	// names must be strictly more similar than this to count
	NameSimilarityMin float64

	// a record is reported only when its score is strictly above this
	Threshold float64
}

const (
	defaultNameWeight        = 0.4
	defaultEmailWeight       = 0.3
	defaultPhoneWeight       = 0.2
	defaultWebsiteWeight     = 0.1
	defaultNameSimilarityMin = 0.7
	defaultDuplicateThresh   = 0.5
)

func DefaultDuplicateConfig() DuplicateConfig {
	return DuplicateConfig{
		NameWeight:        defaultNameWeight,
		EmailWeight:       defaultEmailWeight,
		PhoneWeight:       defaultPhoneWeight,
		WebsiteWeight:     defaultWebsiteWeight,
		NameSimilarityMin: defaultNameSimilarityMin,
		Threshold:         defaultDuplicateThresh,
	}
}

// FindDuplicates scores candidate against every existing record with the
// default weights.
func FindDuplicates(candidate domain.PartialRecord, existing []domain.ComparableRecord) []domain.MatchResult {
	return FindDuplicatesWithConfig(candidate, existing, DefaultDuplicateConfig())
}

// FindDuplicatesWithConfig returns the existing records that look like
// candidate, best first. Records with equal scores keep their input order.
//
// A field rule contributes only when both sides carry the field. The score is
// the earned weight over the weight of the fields the candidate supplied, so
// a complete candidate scores the plain weighted sum and a sparse existing
// record cannot inflate its own score.
func FindDuplicatesWithConfig(candidate domain.PartialRecord, existing []domain.ComparableRecord, cfg DuplicateConfig) []domain.MatchResult {
	out := []domain.MatchResult{}
	if len(existing) == 0 {
		return out
	}

	c := prepareCandidate(candidate, cfg)
	if c.divisor <= 0 {
		return out
	}

	for _, rec := range existing {
		score, reasons := scorePair(c, rec, cfg)
		if len(reasons) == 0 || score <= cfg.Threshold {
			continue
		}
		out = append(out, domain.MatchResult{
			Record:  rec,
			Score:   score,
			Reasons: reasons,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// preparedCandidate caches the normalized candidate fields across records.
type preparedCandidate struct {
	name    string
	email   string
	phone   string
	website string

	// weight of the supplied fields; 1 when every field is supplied
	divisor float64
}

func prepareCandidate(p domain.PartialRecord, cfg DuplicateConfig) preparedCandidate {
	c := preparedCandidate{
		name:    lower(strings.TrimSpace(p.Name)),
		email:   lower(strings.TrimSpace(p.Email)),
		phone:   NormalizePhone(p.Phone),
		website: NormalizeURL(strings.TrimSpace(p.Website)),
	}

	if c.name != "" && c.email != "" && c.phone != "" && c.website != "" {
		// summing the weights would give 0.9999999999999999 for the defaults
		c.divisor = 1
		return c
	}
	if c.name != "" {
		c.divisor += cfg.NameWeight
	}
	if c.email != "" {
		c.divisor += cfg.EmailWeight
	}
	if c.phone != "" {
		c.divisor += cfg.PhoneWeight
	}
	if c.website != "" {
		c.divisor += cfg.WebsiteWeight
	}
	return c
}

func scorePair(c preparedCandidate, rec domain.ComparableRecord, cfg DuplicateConfig) (float64, []string) {
	var (
		earned  float64
		reasons []string
	)

	if c.name != "" && rec.Name != "" {
		sim := SimilarityRatio(c.name, lower(strings.TrimSpace(rec.Name)))
		if sim > cfg.NameSimilarityMin {
			earned += sim * cfg.NameWeight
			reasons = append(reasons, domain.ReasonSimilarName)
		}
	}

	if c.email != "" && rec.Email != "" && c.email == lower(strings.TrimSpace(rec.Email)) {
		earned += cfg.EmailWeight
		reasons = append(reasons, domain.ReasonSameEmail)
	}

	if c.phone != "" && c.phone == NormalizePhone(rec.Phone) {
		earned += cfg.PhoneWeight
		reasons = append(reasons, domain.ReasonSamePhone)
	}

	if c.website != "" && c.website == NormalizeURL(strings.TrimSpace(rec.Website)) {
		earned += cfg.WebsiteWeight
		reasons = append(reasons, domain.ReasonSameWebsite)
	}

	if len(reasons) == 0 {
		return 0, nil
	}
	return clamp01(earned / c.divisor), reasons
}
