package scoring

import "fmt"

// UnresolvableScaleError reports a question whose maximum score cannot be
// derived from any of the four scale sources. It indicates a malformed
// structure that should never have been activated, so callers must surface
// it rather than swallow it.
type UnresolvableScaleError struct {
	QuestionID string
}

func (e *UnresolvableScaleError) Error() string {
	return fmt.Sprintf("no usable scale found for question %q", e.QuestionID)
}

// MaxScore resolves the maximum attainable score for a single question.
// Resolution order is significant and must not change:
// scale_descriptors, then matrix_config.scale, then options, then the
// structure-level scoring scale.
func MaxScore(q *Question, global *ScoringConfig) (float64, error) {
	if len(q.ScaleDescriptors) > 0 {
		max := q.ScaleDescriptors[0].Value
		for _, d := range q.ScaleDescriptors[1:] {
			if d.Value > max {
				max = d.Value
			}
		}
		return max, nil
	}

	if q.MatrixConfig != nil {
		return q.MatrixConfig.Scale.Max, nil
	}

	if len(q.Options) > 0 {
		max := float64(q.Options[0].Value)
		for _, o := range q.Options[1:] {
			if float64(o.Value) > max {
				max = float64(o.Value)
			}
		}
		return max, nil
	}

	if global != nil && global.Scale != nil {
		return global.Scale.Max, nil
	}

	return 0, &UnresolvableScaleError{QuestionID: q.ID}
}
