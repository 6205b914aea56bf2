package prefs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/prefs"
)

// memStore keeps documents in memory and counts writes, so tests can assert
// that validation failures never persist anything.
type memStore struct {
	docs  map[int64]prefs.Document
	saves int
}

func newMemStore() *memStore {
	return &memStore{docs: map[int64]prefs.Document{}}
}

func (m *memStore) Get(_ context.Context, chatID int64) (prefs.Document, error) {
	return m.docs[chatID], nil
}

func (m *memStore) Save(_ context.Context, chatID int64, doc prefs.Document) error {
	m.docs[chatID] = doc
	m.saves++
	return nil
}

const chat = int64(111)

func apply(t *testing.T, m *prefs.Machine, kind prefs.EventKind, value string) prefs.Result {
	t.Helper()
	res, err := m.Apply(context.Background(), chat, prefs.Event{Kind: kind, Value: value})
	require.NoError(t, err)
	return res
}

func TestFullSetupSequence(t *testing.T) {
	store := newMemStore()
	m := prefs.NewMachine(store)

	res := apply(t, m, prefs.EventStartSetup, "")
	require.Equal(t, prefs.PromptChooseSeason, res.Prompt)

	res = apply(t, m, prefs.EventSelectSeason, "summer")
	require.Equal(t, prefs.PromptEnterLength, res.Prompt)
	require.Equal(t, prefs.SeasonSummer, res.Doc.Season)
	require.Equal(t, prefs.StepLength, res.Doc.Step)

	res = apply(t, m, prefs.EventAnswer, "40")
	require.Equal(t, prefs.PromptEnterPrice, res.Prompt)
	require.Equal(t, 40.0, *res.Doc.LengthKm)

	res = apply(t, m, prefs.EventAnswer, "2500")
	require.Equal(t, prefs.PromptChooseDifficulty, res.Prompt)
	require.Equal(t, 2500.0, *res.Doc.PriceEstimate)

	res = apply(t, m, prefs.EventSelectDifficulty, "easy")
	require.Equal(t, prefs.PromptEnterPopularity, res.Prompt)
	require.Equal(t, prefs.DifficultyEasy, res.Doc.Difficulty)

	res = apply(t, m, prefs.EventAnswer, "50")
	require.Equal(t, prefs.PromptChooseTransport, res.Prompt)
	require.Equal(t, 50, *res.Doc.Popularity)

	res = apply(t, m, prefs.EventSelectTransport, "car")
	require.Equal(t, prefs.PromptChooseTags, res.Prompt)
	require.Equal(t, prefs.TransportCar, res.Doc.Transport)

	res = apply(t, m, prefs.EventTagToggle, "nature")
	require.Equal(t, prefs.PromptTagAdded, res.Prompt)
	require.Equal(t, "nature", res.Tag)

	res = apply(t, m, prefs.EventTagToggle, "family")
	require.Equal(t, []string{"nature", "family"}, res.Doc.Tags)

	res = apply(t, m, prefs.EventTagsDone, "")
	require.Equal(t, prefs.PromptSetupComplete, res.Prompt)
	require.Equal(t, prefs.StepNone, res.Doc.Step)
	require.False(t, res.Doc.Empty())
}

func TestNumericValidationDoesNotAdvance(t *testing.T) {
	store := newMemStore()
	m := prefs.NewMachine(store)
	apply(t, m, prefs.EventSelectSeason, "winter")
	savesBefore := store.saves

	for _, bad := range []string{"", "abc", "12,5", "40km"} {
		res := apply(t, m, prefs.EventAnswer, bad)
		require.Equal(t, prefs.PromptRetryLength, res.Prompt, "input %q", bad)
		require.Equal(t, prefs.StepLength, res.Doc.Step)
		require.Nil(t, res.Doc.LengthKm)
	}
	require.Equal(t, savesBefore, store.saves, "rejected input must not write")

	res := apply(t, m, prefs.EventAnswer, "45.5")
	require.Equal(t, prefs.PromptEnterPrice, res.Prompt)
	require.Equal(t, 45.5, *res.Doc.LengthKm)
	require.Equal(t, savesBefore+1, store.saves, "valid input advances exactly once")
}

func TestPriceValidation(t *testing.T) {
	store := newMemStore()
	store.docs[chat] = prefs.Document{Season: prefs.SeasonSpring, Step: prefs.StepPrice}
	m := prefs.NewMachine(store)

	res := apply(t, m, prefs.EventAnswer, "дорого")
	require.Equal(t, prefs.PromptRetryPrice, res.Prompt)
	require.Nil(t, res.Doc.PriceEstimate)

	res = apply(t, m, prefs.EventAnswer, "2000")
	require.Equal(t, prefs.PromptChooseDifficulty, res.Prompt)
	require.Equal(t, prefs.StepDifficulty, res.Doc.Step)
}

func TestPopularityBounds(t *testing.T) {
	m := prefs.NewMachine(newMemStore())
	seed := func(s *memStore) {
		s.docs[chat] = prefs.Document{Season: prefs.SeasonSummer, Step: prefs.StepPopularity}
	}

	for _, bad := range []string{"-1", "101", "abc", "49.5"} {
		store := newMemStore()
		seed(store)
		m = prefs.NewMachine(store)
		res := apply(t, m, prefs.EventAnswer, bad)
		require.Equal(t, prefs.PromptRetryPopularity, res.Prompt, "input %q", bad)
		require.Nil(t, res.Doc.Popularity)
		require.Equal(t, prefs.StepPopularity, res.Doc.Step)
	}

	for _, good := range []string{"0", "100"} {
		store := newMemStore()
		seed(store)
		m = prefs.NewMachine(store)
		res := apply(t, m, prefs.EventAnswer, good)
		require.Equal(t, prefs.PromptChooseTransport, res.Prompt, "input %q", good)
		require.NotNil(t, res.Doc.Popularity)
	}
}

func TestInvalidSelectionsReprompt(t *testing.T) {
	store := newMemStore()
	m := prefs.NewMachine(store)

	res := apply(t, m, prefs.EventSelectSeason, "monsoon")
	require.Equal(t, prefs.PromptChooseSeason, res.Prompt)
	require.Zero(t, store.saves)

	res = apply(t, m, prefs.EventSelectDifficulty, "extreme")
	require.Equal(t, prefs.PromptChooseDifficulty, res.Prompt)
	require.Zero(t, store.saves)

	res = apply(t, m, prefs.EventSelectTransport, "rocket")
	require.Equal(t, prefs.PromptChooseTransport, res.Prompt)
	require.Zero(t, store.saves)
}

func TestTagSelectionIdempotent(t *testing.T) {
	store := newMemStore()
	store.docs[chat] = prefs.Document{Season: prefs.SeasonSummer, Step: prefs.StepTags}
	m := prefs.NewMachine(store)

	apply(t, m, prefs.EventTagToggle, "nature")
	res := apply(t, m, prefs.EventTagToggle, "nature")
	require.Equal(t, []string{"nature"}, res.Doc.Tags)
}

func TestStartWithExistingDocumentOffersResetOrContinue(t *testing.T) {
	store := newMemStore()
	store.docs[chat] = prefs.Document{Season: prefs.SeasonWinter, Step: prefs.StepPrice}
	m := prefs.NewMachine(store)

	res := apply(t, m, prefs.EventStartSetup, "")
	require.Equal(t, prefs.PromptResetOrContinue, res.Prompt)

	res = apply(t, m, prefs.EventContinue, "")
	require.Equal(t, prefs.PromptEnterPrice, res.Prompt)
	require.Equal(t, prefs.SeasonWinter, res.Doc.Season, "continue keeps captured fields")
}

func TestContinueAfterCompletionRestartsAtSeason(t *testing.T) {
	store := newMemStore()
	store.docs[chat] = prefs.Document{Season: prefs.SeasonWinter, Transport: prefs.TransportCar}
	m := prefs.NewMachine(store)

	res := apply(t, m, prefs.EventContinue, "")
	require.Equal(t, prefs.PromptChooseSeason, res.Prompt)
}

func TestResetClearsEverything(t *testing.T) {
	pop := 50
	length := 40.0
	store := newMemStore()
	store.docs[chat] = prefs.Document{
		Season:     prefs.SeasonSummer,
		LengthKm:   &length,
		Popularity: &pop,
		Transport:  prefs.TransportCar,
		Tags:       []string{"nature"},
		Step:       prefs.StepTags,
	}
	m := prefs.NewMachine(store)

	res := apply(t, m, prefs.EventReset, "")
	require.Equal(t, prefs.PromptResetDone, res.Prompt)
	require.True(t, res.Doc.Empty())
	persisted := store.docs[chat]
	require.True(t, persisted.Empty(), "reset must persist")
}

func TestResetRestartReentersAtSeason(t *testing.T) {
	store := newMemStore()
	store.docs[chat] = prefs.Document{Season: prefs.SeasonSummer, Step: prefs.StepTags}
	m := prefs.NewMachine(store)

	res := apply(t, m, prefs.EventResetRestart, "")
	require.Equal(t, prefs.PromptChooseSeason, res.Prompt)
	require.True(t, res.Doc.Empty())
}

func TestFreeTextOutsideInputStep(t *testing.T) {
	store := newMemStore()
	m := prefs.NewMachine(store)

	res := apply(t, m, prefs.EventAnswer, "привет")
	require.Equal(t, prefs.PromptMainMenu, res.Prompt)
	require.True(t, res.Doc.Empty())
	require.Zero(t, store.saves)
}
