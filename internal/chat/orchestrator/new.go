package orchestrator

import (
	"meal-planning-assistant/internal/chat"
	"meal-planning-assistant/internal/chat/classifier"
	"meal-planning-assistant/internal/chat/composer"
	"meal-planning-assistant/internal/chat/dispatcher"
	"meal-planning-assistant/pkg/log"
)

type implUseCase struct {
	l          log.Logger
	store      chat.ContextStore
	classifier classifier.Classifier
	dispatcher dispatcher.Dispatcher
	composer   composer.Composer
	generator  classifier.Generator
}

// New wires the turn pipeline: context load, classification, dispatch,
// context merge, composition.
func New(
	l log.Logger,
	store chat.ContextStore,
	cls classifier.Classifier,
	dsp dispatcher.Dispatcher,
	cmp composer.Composer,
	generator classifier.Generator,
) chat.UseCase {
	return &implUseCase{
		l:          l,
		store:      store,
		classifier: cls,
		dispatcher: dsp,
		composer:   cmp,
		generator:  generator,
	}
}

var _ chat.UseCase = (*implUseCase)(nil)
