package dispatcher

import (
	"time"

	"meal-planning-assistant/internal/agent"
	"meal-planning-assistant/internal/chat/classifier"
	"meal-planning-assistant/pkg/log"
)

type implDispatcher struct {
	l           log.Logger
	registry    *agent.Registry
	classifier  classifier.Classifier
	toolTimeout time.Duration
}

// New builds the dispatcher. toolTimeout bounds each tool execution; zero
// falls back to one minute.
func New(l log.Logger, registry *agent.Registry, cls classifier.Classifier, toolTimeout time.Duration) Dispatcher {
	if toolTimeout <= 0 {
		toolTimeout = time.Minute
	}
	return &implDispatcher{
		l:           l,
		registry:    registry,
		classifier:  cls,
		toolTimeout: toolTimeout,
	}
}

var _ Dispatcher = (*implDispatcher)(nil)
