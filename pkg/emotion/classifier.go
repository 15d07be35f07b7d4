package emotion

import "context"

// Fixed affect label set returned by the classifier backend.
const (
	LabelAnger    = "anger"
	LabelDisgust  = "disgust"
	LabelFear     = "fear"
	LabelJoy      = "joy"
	LabelNeutral  = "neutral"
	LabelSadness  = "sadness"
	LabelSurprise = "surprise"
)

// Classifier returns a best-guess affect label for a message. Callers fall
// back to LabelNeutral on error rather than failing the turn.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}
