package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxScore_Precedence(t *testing.T) {
	global := &ScoringConfig{Scale: &Scale{Min: 1, Max: 4}}

	tests := []struct {
		name     string
		question Question
		expected float64
	}{
		{
			name: "scale descriptors win over everything",
			question: Question{
				ID: "q1",
				ScaleDescriptors: []ScaleDescriptor{
					{Value: 1}, {Value: 3}, {Value: 2},
				},
				MatrixConfig: &MatrixConfig{Scale: Scale{Max: 10}},
				Options:      []Option{{Value: 99}},
			},
			expected: 3,
		},
		{
			name: "matrix scale wins over options",
			question: Question{
				ID:           "q2",
				MatrixConfig: &MatrixConfig{Scale: Scale{Min: 1, Max: 5}},
				Options:      []Option{{Value: 99}},
			},
			expected: 5,
		},
		{
			name: "options win over global scale",
			question: Question{
				ID:      "q3",
				Options: []Option{{Value: 2}, {Value: 10}, {Value: 7}},
			},
			expected: 10,
		},
		{
			name:     "global scale is the last resort",
			question: Question{ID: "q4"},
			expected: 4,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MaxScore(&tc.question, global)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMaxScore_UnresolvableScale(t *testing.T) {
	q := &Question{ID: "q-broken"}

	_, err := MaxScore(q, nil)
	require.Error(t, err)

	var scaleErr *UnresolvableScaleError
	require.ErrorAs(t, err, &scaleErr)
	assert.Equal(t, "q-broken", scaleErr.QuestionID)
	assert.Contains(t, err.Error(), "q-broken")

	// A global config without a scale resolves nothing either.
	_, err = MaxScore(q, &ScoringConfig{})
	assert.Error(t, err)
}

func TestFlexNumber_UnmarshalJSON(t *testing.T) {
	var q Question
	raw := `{"id":"q1","options":[{"value":"5","label":"Sempre"},{"value":3},{"value":""}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &q))

	assert.Equal(t, FlexNumber(5), q.Options[0].Value)
	assert.Equal(t, FlexNumber(3), q.Options[1].Value)
	assert.Equal(t, FlexNumber(0), q.Options[2].Value)

	err := json.Unmarshal([]byte(`{"options":[{"value":"abc"}]}`), &q)
	assert.Error(t, err)
}
