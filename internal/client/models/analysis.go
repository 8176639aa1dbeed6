package models

// State is the analysis workflow phase.
type State int

const (
	StateIdle State = iota
	StateFileSelected
	StateSubmitting
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFileSelected:
		return "FileSelected"
	case StateSubmitting:
		return "Submitting"
	case StateResult:
		return "Result"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// UnknownStage is used when the response carries no stage label.
const UnknownStage = "Unknown"

// AnalysisResult is the interpreted answer of the inference endpoint.
// Confidence is nil when the response had no numeric value.
type AnalysisResult struct {
	StageLabel string
	Confidence *float64
	Details    string
}
