package scoring

import "sort"

// StyleUndefined is reported when no result band contains the total.
const StyleUndefined = "Indefinido"

// scoreLeadershipStyle sums every answer value with no max-score
// normalization and maps the total against the structure's inclusive result
// bands. No per-question breakdown is produced.
func scoreLeadershipStyle(answers Answers, structure *TestStructure) (*LeadershipStyleResult, error) {
	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var total float64
	for _, key := range keys {
		total += answers[key]
	}

	result := &LeadershipStyleResult{
		Score: total,
		Style: StyleUndefined,
	}
	for _, band := range structure.Results {
		if total >= band.Range.Min && total <= band.Range.Max {
			result.Style = band.Style
			result.Description = band.Description
			break
		}
	}
	return result, nil
}
