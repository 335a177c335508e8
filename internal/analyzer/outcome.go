package analyzer

// OutcomeKind tags the single terminal result of one pipeline run.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmptyInput
	OutcomeMissingParameter
	OutcomeNotFound
	OutcomeDataFetchFailed
	OutcomeAnalysisFailed
	OutcomeSynthesisFailed
	OutcomeCompletionFailed
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeSuccess:          "success",
	OutcomeEmptyInput:       "empty_input",
	OutcomeMissingParameter: "missing_parameter",
	OutcomeNotFound:         "not_found",
	OutcomeDataFetchFailed:  "data_fetch_failed",
	OutcomeAnalysisFailed:   "analysis_failed",
	OutcomeSynthesisFailed:  "synthesis_failed",
	OutcomeCompletionFailed: "completion_failed",
}

func (k OutcomeKind) String() string {
	if name, ok := outcomeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Outcome is what a handler hands to the response assembler. Payload is only
// set on success and is serialized as the JSON body; Reason is only set on
// the *Failed kinds.
type Outcome struct {
	Kind    OutcomeKind
	Payload any
	Reason  string
}

func Success(payload any) Outcome {
	return Outcome{Kind: OutcomeSuccess, Payload: payload}
}

func Failure(kind OutcomeKind, err error) Outcome {
	o := Outcome{Kind: kind}
	if err != nil {
		o.Reason = err.Error()
	}
	return o
}
