// Package scoring implements the assessment scoring calculator: a pure,
// synchronous, deterministic transformation from a submitted answer set and
// a versioned test structure to a per-test-type result object.
//
// The package performs no I/O and holds no shared state; concurrent
// invocations are independent. Given identical inputs it always produces
// identical output, which is what allows results to be recomputed for
// auditing by simply re-invoking it.
package scoring

// CalculateResult scores a submitted answer set against a test structure.
//
// A nil result with a nil error is a deliberate no-op, not a failure: it
// means either the answer map is empty (the assessment was never started)
// or the test type has no scoring rule defined. Malformed structures
// (unresolvable question scales) surface as errors and must not be
// swallowed by callers.
func CalculateResult(testType TestType, answers Answers, structure *TestStructure) (Result, error) {
	if len(answers) == 0 || structure == nil {
		return nil, nil
	}

	switch testType {
	case TestTypeDISC:
		return scoreDISC(answers, structure)
	case TestTypeSenioritySeller:
		return scoreSeniority(answers, structure)
	case TestTypeLeadershipStyle:
		return scoreLeadershipStyle(answers, structure)
	case TestTypeDEFMethod:
		return scoreDEFMethod(answers, structure)
	case TestTypeValues8D:
		return scoreValues8D(answers, structure)
	default:
		return nil, nil
	}
}
