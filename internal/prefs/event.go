package prefs

// EventKind enumerates every dialogue event the machine understands.
// The dialogue layer maps raw transport callbacks onto these; the machine
// never sees opaque callback strings.
type EventKind string

const (
	// EventStartSetup is the "set preferences" entry point.
	EventStartSetup EventKind = "start_setup"
	// EventSelectSeason carries a season choice and (re)starts the sequence.
	EventSelectSeason EventKind = "select_season"
	// EventAnswer carries free text for whatever numeric step is pending.
	EventAnswer EventKind = "answer"
	// EventSelectDifficulty and EventSelectTransport carry structured choices.
	EventSelectDifficulty EventKind = "select_difficulty"
	EventSelectTransport  EventKind = "select_transport"
	// EventTagToggle selects a tag; selecting a selected tag is a no-op.
	EventTagToggle EventKind = "tag_toggle"
	// EventTagsDone finishes tag selection and completes setup.
	EventTagsDone EventKind = "tags_done"
	// EventReset wipes the document.
	EventReset EventKind = "reset"
	// EventResetRestart wipes the document and re-enters at season choice.
	EventResetRestart EventKind = "reset_restart"
	// EventContinue resumes setup at the document's current step.
	EventContinue EventKind = "continue"
)

// Event is the tagged union consumed by Machine.Apply.
type Event struct {
	Kind  EventKind
	Value string // selection value or answer text, when the kind carries one
}

// Prompt identifies what the dialogue layer should ask next. Message text
// and keyboards belong to the transport, not to the machine.
type Prompt string

const (
	PromptChooseSeason     Prompt = "choose_season"
	PromptEnterLength      Prompt = "enter_length"
	PromptRetryLength      Prompt = "retry_length"
	PromptEnterPrice       Prompt = "enter_price"
	PromptRetryPrice       Prompt = "retry_price"
	PromptChooseDifficulty Prompt = "choose_difficulty"
	PromptEnterPopularity  Prompt = "enter_popularity"
	PromptRetryPopularity  Prompt = "retry_popularity"
	PromptChooseTransport  Prompt = "choose_transport"
	PromptChooseTags       Prompt = "choose_tags"
	PromptTagAdded         Prompt = "tag_added"
	PromptSetupComplete    Prompt = "setup_complete"
	PromptResetOrContinue  Prompt = "reset_or_continue"
	PromptResetDone        Prompt = "reset_done"
	PromptMainMenu         Prompt = "main_menu"
)
