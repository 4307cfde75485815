package scoring

import "sort"

// Profile is one of the four DISC behavioral profiles.
type Profile string

const (
	ProfileDominance         Profile = "D"
	ProfileInfluence         Profile = "I"
	ProfileSteadiness        Profile = "S"
	ProfileConscientiousness Profile = "C"
)

// discProfiles is the tie-break precedence: when two profiles score equal,
// the earlier one ranks higher.
var discProfiles = []Profile{
	ProfileDominance,
	ProfileInfluence,
	ProfileSteadiness,
	ProfileConscientiousness,
}

// scoreDISC accumulates raw statement responses into per-profile totals and
// derives the two dominant profiles. Statements are visited in structure
// order so the item list is stable across invocations.
func scoreDISC(answers Answers, structure *TestStructure) (*DISCResult, error) {
	scores := make(map[Profile]float64, len(discProfiles))
	for _, p := range discProfiles {
		scores[p] = 0
	}

	items := make([]ScoredItem, 0, len(answers))
	for ci := range structure.Categories {
		cat := &structure.Categories[ci]
		for qi := range cat.Questions {
			q := &cat.Questions[qi]
			if q.MatrixConfig == nil {
				continue
			}
			max, err := MaxScore(q, structure.Scoring)
			if err != nil {
				return nil, err
			}
			for _, st := range q.MatrixConfig.Statements {
				profile := Profile(st.Metadata.Profile)
				if _, known := scores[profile]; !known {
					continue
				}
				key, value, answered := statementAnswer(answers, q.ID, st.ID)
				if !answered {
					continue
				}
				scores[profile] += value
				items = append(items, ScoredItem{
					ID:       key,
					Profile:  string(profile),
					Score:    value,
					MaxScore: max,
				})
			}
		}
	}

	return &DISCResult{
		Scores:  scores,
		Profile: dominantProfiles(scores),
		Items:   items,
	}, nil
}

// statementAnswer looks up a matrix statement's response, preferring the
// composite questionId_statementId key over the bare statement id.
func statementAnswer(answers Answers, questionID, statementID string) (string, float64, bool) {
	composite := questionID + "_" + statementID
	if value, ok := answers[composite]; ok {
		return composite, value, true
	}
	if value, ok := answers[statementID]; ok {
		return statementID, value, true
	}
	return "", 0, false
}

// dominantProfiles concatenates the single-letter codes of the two
// highest-scoring profiles, e.g. "DI".
func dominantProfiles(scores map[Profile]float64) string {
	ranked := make([]Profile, len(discProfiles))
	copy(ranked, discProfiles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return string(ranked[0]) + string(ranked[1])
}
