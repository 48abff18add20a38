package typewriter

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhavsidana/vaibhav-dev/internal/schedule"
)

type recorder struct {
	texts []string
}

func (r *recorder) record(text string) {
	r.texts = append(r.texts, text)
}

func TestNew_EmptyPhrases(t *testing.T) {
	clock := schedule.NewManual()

	a, err := New(clock, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Nil(t, a)

	_, err = New(clock, []string{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Zero(t, clock.Pending(), "no tick is scheduled for an invalid animator")
}

func TestAnimator_DisplaySequence(t *testing.T) {
	clock := schedule.NewManual()
	rec := &recorder{}

	a, err := New(clock, []string{"A", "BB"}, rec.record)
	require.NoError(t, err)
	defer a.Stop()

	assert.Equal(t, "", a.Text())

	clock.Advance(3850 * time.Millisecond)
	assert.Equal(t, []string{"A", "", "B", "BB", "B", "", "A"}, rec.texts)
	assert.Equal(t, 0, a.Snapshot().PhraseIndex)
}

func TestAnimator_Timing(t *testing.T) {
	clock := schedule.NewManual()
	a, err := New(clock, []string{"A", "BB"}, nil)
	require.NoError(t, err)
	defer a.Stop()

	steps := []struct {
		advance time.Duration
		want    Snapshot
	}{
		{99 * time.Millisecond, Snapshot{Text: ""}},
		{1 * time.Millisecond, Snapshot{CharIndex: 1, Text: "A"}},
		// the next tick finds the phrase complete and starts the pause
		{100 * time.Millisecond, Snapshot{CharIndex: 1, Paused: true, Text: "A"}},
		{1499 * time.Millisecond, Snapshot{CharIndex: 1, Paused: true, Text: "A"}},
		{1 * time.Millisecond, Snapshot{CharIndex: 1, Direction: Backward, Text: "A"}},
		// erasing runs at twice the typing speed
		{50 * time.Millisecond, Snapshot{CharIndex: 0, Direction: Backward, Text: ""}},
		{50 * time.Millisecond, Snapshot{PhraseIndex: 1, Text: ""}},
		{100 * time.Millisecond, Snapshot{PhraseIndex: 1, CharIndex: 1, Text: "B"}},
		{100 * time.Millisecond, Snapshot{PhraseIndex: 1, CharIndex: 2, Text: "BB"}},
	}

	for i, step := range steps {
		clock.Advance(step.advance)
		assert.Equal(t, step.want, a.Snapshot(), "step %d at %v", i, clock.Elapsed())
	}
}

func TestAnimator_NeverExceedsPhrase(t *testing.T) {
	clock := schedule.NewManual()
	phrases := []string{"UI/UX Designer", "Cybersecurity enthusiast", "Tech Innovator"}
	a, err := New(clock, phrases, nil)
	require.NoError(t, err)
	defer a.Stop()

	for i := 0; i < 2000; i++ {
		clock.Advance(10 * time.Millisecond)
		s := a.Snapshot()
		phrase := phrases[s.PhraseIndex]
		require.GreaterOrEqual(t, s.CharIndex, 0)
		require.LessOrEqual(t, s.CharIndex, utf8.RuneCountInString(phrase))
		require.Equal(t, string([]rune(phrase)[:s.CharIndex]), s.Text)
	}
}

func TestAnimator_Runes(t *testing.T) {
	clock := schedule.NewManual()
	rec := &recorder{}
	a, err := New(clock, []string{"héé"}, rec.record)
	require.NoError(t, err)
	defer a.Stop()

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, []string{"h", "hé", "héé"}, rec.texts)
}

func TestAnimator_EmptyPhraseDoesNotSpin(t *testing.T) {
	clock := schedule.NewManual()
	rec := &recorder{}
	a, err := New(clock, []string{"", "A"}, rec.record)
	require.NoError(t, err)
	defer a.Stop()

	// tick at 100 pauses, erase begins at 1600, phrase advances at 1650
	clock.Advance(1750 * time.Millisecond)
	assert.Equal(t, []string{"A"}, rec.texts)
	assert.Equal(t, 1, a.Snapshot().PhraseIndex)
}

func TestAnimator_StopHaltsUpdates(t *testing.T) {
	clock := schedule.NewManual()
	rec := &recorder{}
	a, err := New(clock, []string{"Hello"}, rec.record)
	require.NoError(t, err)

	clock.Advance(250 * time.Millisecond)
	require.Equal(t, []string{"H", "He"}, rec.texts)

	a.Stop()
	assert.Zero(t, clock.Pending())

	clock.Advance(time.Minute)
	assert.Equal(t, []string{"H", "He"}, rec.texts)
	assert.Equal(t, "He", a.Text())

	a.Stop()
}

func TestAnimator_StopDuringPause(t *testing.T) {
	clock := schedule.NewManual()
	rec := &recorder{}
	a, err := New(clock, []string{"A"}, rec.record)
	require.NoError(t, err)

	clock.Advance(500 * time.Millisecond)
	require.True(t, a.Snapshot().Paused)

	a.Stop()
	clock.Advance(time.Minute)
	assert.Equal(t, []string{"A"}, rec.texts)
}

func TestAnimator_StaleCallbackAfterStop(t *testing.T) {
	clock := schedule.NewManual()
	rec := &recorder{}
	a, err := New(clock, []string{"A"}, rec.record)
	require.NoError(t, err)

	a.Stop()
	// a timer that already fired concurrently with Stop must be a no-op
	a.tick()
	a.beginErase()
	assert.Empty(t, rec.texts)
}

func TestAnimator_Restart(t *testing.T) {
	clock := schedule.NewManual()
	first, err := New(clock, []string{"A", "BB"}, nil)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	require.Equal(t, 1, first.Snapshot().PhraseIndex)
	first.Stop()

	second, err := New(clock, []string{"A", "BB"}, nil)
	require.NoError(t, err)
	defer second.Stop()

	assert.Equal(t, Snapshot{}, second.Snapshot())
	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, "A", second.Text())
}

func TestAnimator_RealClock(t *testing.T) {
	updates := make(chan string, 8)
	a, err := New(schedule.Clock{}, []string{"Go"}, func(s string) {
		select {
		case updates <- s:
		default:
		}
	})
	require.NoError(t, err)
	defer a.Stop()

	select {
	case got := <-updates:
		assert.Equal(t, "G", got)
	case <-time.After(2 * time.Second):
		t.Fatal("no update from the wall clock animator")
	}
}
