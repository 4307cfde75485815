package scoring

// Fallback level labels used when a structure defines no explicit bands.
const (
	LevelJunior = "Júnior"
	LevelPleno  = "Pleno"
	LevelSenior = "Sênior"
)

// scoreSeniority performs a single additive pass over every question: raw
// answers into the total, resolved maxima into the max total, one breakdown
// item per question tagged with its category.
//
// Level selection is an either/or policy decided at the structure level:
// explicit seniority_levels match the absolute total against inclusive
// bands; without bands, fixed percentage thresholds apply (<50 Júnior,
// <80 Pleno, else Sênior — exactly 80 is Sênior).
func scoreSeniority(answers Answers, structure *TestStructure) (*SeniorityResult, error) {
	var total, maxTotal float64
	var items []ScoredItem

	for ci := range structure.Categories {
		cat := &structure.Categories[ci]
		for qi := range cat.Questions {
			q := &cat.Questions[qi]
			max, err := MaxScore(q, structure.Scoring)
			if err != nil {
				return nil, err
			}
			value := answers[q.ID]
			total += value
			maxTotal += max
			items = append(items, ScoredItem{
				ID:       q.ID,
				Category: cat.Name,
				Score:    value,
				MaxScore: max,
			})
		}
	}

	var percentage float64
	if maxTotal > 0 {
		percentage = total / maxTotal * 100
	}

	result := &SeniorityResult{
		Score:      total,
		MaxScore:   maxTotal,
		Percentage: percentage,
		Items:      items,
	}

	if len(structure.SeniorityLevels) > 0 {
		for _, band := range structure.SeniorityLevels {
			if total >= band.MinScore && total <= band.MaxScore {
				result.Level = band.Label
				result.Description = band.Description
				break
			}
		}
		return result, nil
	}

	switch {
	case percentage < 50:
		result.Level = LevelJunior
	case percentage < 80:
		result.Level = LevelPleno
	default:
		result.Level = LevelSenior
	}
	return result, nil
}
