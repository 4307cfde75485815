package scoring

import "math"

// scoreDEFMethod sums answers and resolved maxima per category, derives a
// rounded per-category percentage, and aggregates every category into a
// global score. Output category order mirrors the structure's order.
func scoreDEFMethod(answers Answers, structure *TestStructure) (*DEFMethodResult, error) {
	result := &DEFMethodResult{
		Categories: make([]CategoryResult, 0, len(structure.Categories)),
	}

	for ci := range structure.Categories {
		cat := &structure.Categories[ci]
		cr := CategoryResult{Name: cat.Name}
		for qi := range cat.Questions {
			q := &cat.Questions[qi]
			max, err := MaxScore(q, structure.Scoring)
			if err != nil {
				return nil, err
			}
			value := answers[q.ID]
			cr.Score += value
			cr.MaxScore += max
			cr.Items = append(cr.Items, ScoredItem{
				ID:       q.ID,
				Score:    value,
				MaxScore: max,
			})
		}
		cr.Percentage = roundedPercentage(cr.Score, cr.MaxScore)

		result.GlobalScore += cr.Score
		result.GlobalMaxScore += cr.MaxScore
		result.Categories = append(result.Categories, cr)
	}

	result.GlobalPercentage = roundedPercentage(result.GlobalScore, result.GlobalMaxScore)
	return result, nil
}

// roundedPercentage guards the zero-max case so empty categories report 0
// instead of NaN.
func roundedPercentage(score, max float64) float64 {
	if max == 0 {
		return 0
	}
	return math.Round(score / max * 100)
}
