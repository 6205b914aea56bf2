package prefs

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Store is the preference persistence contract. Get returns an empty default
// document for a chat id it has never seen; Save overwrites the whole
// document atomically for that user.
type Store interface {
	Get(ctx context.Context, chatID int64) (Document, error)
	Save(ctx context.Context, chatID int64, doc Document) error
}

// Machine drives the fixed question sequence:
// season → length → price → difficulty → popularity → transport → tags.
// Every Apply is one read-modify-write of the user's document. A validation
// failure re-issues the same prompt and leaves the document untouched.
type Machine struct {
	store Store
}

func NewMachine(store Store) *Machine {
	return &Machine{store: store}
}

// Result is what the dialogue layer renders after an event.
type Result struct {
	Doc    Document
	Prompt Prompt
	Tag    string // last toggled tag, set for PromptTagAdded
}

// Apply routes one dialogue event through the transition function.
func (m *Machine) Apply(ctx context.Context, chatID int64, ev Event) (Result, error) {
	doc, err := m.store.Get(ctx, chatID)
	if err != nil {
		return Result{}, err
	}

	switch ev.Kind {
	case EventStartSetup:
		if !doc.Empty() {
			return Result{Doc: doc, Prompt: PromptResetOrContinue}, nil
		}
		return Result{Doc: doc, Prompt: PromptChooseSeason}, nil

	case EventSelectSeason:
		season, ok := ParseSeason(strings.TrimSpace(ev.Value))
		if !ok {
			return Result{Doc: doc, Prompt: PromptChooseSeason}, nil
		}
		doc.Season = season
		doc.Step = StepLength
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		logrus.WithFields(logrus.Fields{"chat_id": chatID, "season": season}).Info("preference season set")
		return Result{Doc: doc, Prompt: PromptEnterLength}, nil

	case EventAnswer:
		return m.applyAnswer(ctx, chatID, doc, ev.Value)

	case EventSelectDifficulty:
		diff, ok := ParseDifficulty(strings.TrimSpace(ev.Value))
		if !ok {
			return Result{Doc: doc, Prompt: PromptChooseDifficulty}, nil
		}
		doc.Difficulty = diff
		doc.Step = StepPopularity
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		logrus.WithFields(logrus.Fields{"chat_id": chatID, "difficulty": diff}).Info("preference difficulty set")
		return Result{Doc: doc, Prompt: PromptEnterPopularity}, nil

	case EventSelectTransport:
		transport, ok := ParseTransport(strings.TrimSpace(ev.Value))
		if !ok {
			return Result{Doc: doc, Prompt: PromptChooseTransport}, nil
		}
		doc.Transport = transport
		doc.Step = StepTags
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		logrus.WithFields(logrus.Fields{"chat_id": chatID, "transport": transport}).Info("preference transport set")
		return Result{Doc: doc, Prompt: PromptChooseTags}, nil

	case EventTagToggle:
		tag := strings.TrimSpace(ev.Value)
		if tag == "" {
			return Result{Doc: doc, Prompt: PromptChooseTags}, nil
		}
		doc.AddTag(tag)
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		return Result{Doc: doc, Prompt: PromptTagAdded, Tag: tag}, nil

	case EventTagsDone:
		doc.Step = StepNone
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		logrus.WithField("chat_id", chatID).Info("preference setup finished")
		return Result{Doc: doc, Prompt: PromptSetupComplete}, nil

	case EventReset:
		doc.Reset()
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		logrus.WithField("chat_id", chatID).Info("preferences reset")
		return Result{Doc: doc, Prompt: PromptResetDone}, nil

	case EventResetRestart:
		doc.Reset()
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		logrus.WithField("chat_id", chatID).Info("preferences reset, restarting setup")
		return Result{Doc: doc, Prompt: PromptChooseSeason}, nil

	case EventContinue:
		return Result{Doc: doc, Prompt: promptForStep(doc.Step)}, nil
	}

	return Result{Doc: doc, Prompt: PromptMainMenu}, nil
}

// applyAnswer handles free-text input for whichever numeric step is pending.
// Unparseable input never advances the step and never writes a value.
func (m *Machine) applyAnswer(ctx context.Context, chatID int64, doc Document, text string) (Result, error) {
	text = strings.TrimSpace(text)

	switch doc.Step {
	case StepLength:
		length, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Result{Doc: doc, Prompt: PromptRetryLength}, nil
		}
		doc.LengthKm = &length
		doc.Step = StepPrice
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		return Result{Doc: doc, Prompt: PromptEnterPrice}, nil

	case StepPrice:
		price, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Result{Doc: doc, Prompt: PromptRetryPrice}, nil
		}
		doc.PriceEstimate = &price
		doc.Step = StepDifficulty
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		return Result{Doc: doc, Prompt: PromptChooseDifficulty}, nil

	case StepPopularity:
		val, err := strconv.Atoi(text)
		if err != nil || val < 0 || val > 100 {
			return Result{Doc: doc, Prompt: PromptRetryPopularity}, nil
		}
		doc.Popularity = &val
		doc.Step = StepTransport
		if err := m.store.Save(ctx, chatID, doc); err != nil {
			return Result{}, err
		}
		return Result{Doc: doc, Prompt: PromptChooseTransport}, nil
	}

	// Free text outside a text-input step: point the user back at the menu.
	return Result{Doc: doc, Prompt: PromptMainMenu}, nil
}

// promptForStep maps a pending step to the prompt that resumes it.
// A finished or untouched document restarts at season choice.
func promptForStep(step Step) Prompt {
	switch step {
	case StepLength:
		return PromptEnterLength
	case StepPrice:
		return PromptEnterPrice
	case StepDifficulty:
		return PromptChooseDifficulty
	case StepPopularity:
		return PromptEnterPopularity
	case StepTransport:
		return PromptChooseTransport
	case StepTags:
		return PromptChooseTags
	}
	return PromptChooseSeason
}
