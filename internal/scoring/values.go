package scoring

import "math"

// scoreValues8D computes the arithmetic mean (not sum) of raw answers per
// dimension, rounded to one decimal place. Dimensions with no questions
// score 0. The raw average carries no percentage; interpretation is left to
// the presentation layer.
func scoreValues8D(answers Answers, structure *TestStructure) (*Values8DResult, error) {
	result := &Values8DResult{
		Dimensions: make([]DimensionResult, 0, len(structure.Categories)),
	}

	for ci := range structure.Categories {
		cat := &structure.Categories[ci]
		var sum float64
		for qi := range cat.Questions {
			q := &cat.Questions[qi]
			value := answers[q.ID]
			sum += value
			result.Items = append(result.Items, ValueItem{
				ID:        q.ID,
				Dimension: cat.Name,
				Score:     value,
			})
		}

		var average float64
		if n := len(cat.Questions); n > 0 {
			average = math.Round(sum/float64(n)*10) / 10
		}
		result.Dimensions = append(result.Dimensions, DimensionResult{
			Name:  cat.Name,
			Score: average,
		})
	}

	return result, nil
}
