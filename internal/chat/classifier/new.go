package classifier

import (
	"meal-planning-assistant/pkg/log"
)

type implClassifier struct {
	l         log.Logger
	generator Generator
}

// New builds the two-layer classifier: deterministic rules backed by
// model-based classification through the provider manager.
func New(l log.Logger, generator Generator) Classifier {
	return &implClassifier{
		l:         l,
		generator: generator,
	}
}

var _ Classifier = (*implClassifier)(nil)
