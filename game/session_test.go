package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePublisher records everything the session emits so tests can assert on
// notifications without a live transport.
type fakePublisher struct {
	mu         sync.Mutex
	broadcasts []Event
	direct     map[string][]Event
	kicked     []string
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{direct: make(map[string][]Event)}
}

func (f *fakePublisher) Broadcast(evt Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broadcasts = append(f.broadcasts, evt)
}

func (f *fakePublisher) SendTo(connID string, evt Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.direct[connID] = append(f.direct[connID], evt)
}

func (f *fakePublisher) Kick(connID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kicked = append(f.kicked, connID)
}

func (f *fakePublisher) countBroadcasts(evtType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.broadcasts {
		if e.Type == evtType {
			n++
		}
	}
	return n
}

func (f *fakePublisher) lastSentTo(connID, evtType string) (Event, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.direct[connID]) - 1; i >= 0; i-- {
		if f.direct[connID][i].Type == evtType {
			return f.direct[connID][i], true
		}
	}
	return Event{}, false
}

func (f *fakePublisher) wasKicked(connID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.kicked {
		if id == connID {
			return true
		}
	}
	return false
}

// newTestSession uses a huge interval when a test must not race the timer.
func newTestSession(interval time.Duration) (*Session, *fakePublisher) {
	pub := newFakePublisher()
	return NewSession(pub, interval), pub
}

func (s *Session) stateForTest() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func TestSessionStartOnlyFromIdle(t *testing.T) {
	s, pub := newTestSession(time.Hour)

	s.Start()
	require.Equal(t, StateRunning, s.stateForTest())
	require.Equal(t, 1, pub.countBroadcasts(EvtGameStarted))

	// already running: no-op
	s.Start()
	require.Equal(t, 1, pub.countBroadcasts(EvtGameStarted))

	// from ended only reset is valid
	s.End()
	require.Equal(t, StateEnded, s.stateForTest())
	s.Start()
	require.Equal(t, StateEnded, s.stateForTest())
	require.Equal(t, 1, pub.countBroadcasts(EvtGameStarted))

	s.Reset()
	require.Equal(t, StateIdle, s.stateForTest())
	s.Start()
	require.Equal(t, 2, pub.countBroadcasts(EvtGameStarted))
}

func TestSessionJoinRejectedMidRound(t *testing.T) {
	s, pub := newTestSession(time.Hour)

	s.Join("c1", "ana")
	require.Len(t, s.Players(), 1)

	s.Start()
	s.Join("c2", "ben")

	_, gotErr := pub.lastSentTo("c2", EvtGameError)
	require.True(t, gotErr)
	require.True(t, pub.wasKicked("c2"))
	require.Len(t, s.Players(), 1)
}

func TestSessionAdminArbitration(t *testing.T) {
	s, pub := newTestSession(time.Hour)

	s.RegisterAdmin("a1")
	require.Equal(t, 1, pub.countBroadcasts(EvtAdminStatus))

	// second admin is told and dropped, slot untouched
	s.RegisterAdmin("a2")
	_, rejected := pub.lastSentTo("a2", EvtAdminExists)
	require.True(t, rejected)
	require.True(t, pub.wasKicked("a2"))

	s.CheckAdmin("viewer")
	evt, ok := pub.lastSentTo("viewer", EvtAdminStatus)
	require.True(t, ok)
	require.True(t, evt.Payload.(AdminStatusPayload).Exists)

	// release from a non-admin connection is absorbed
	s.LeaveAdmin("a2")
	s.CheckAdmin("viewer")
	evt, _ = pub.lastSentTo("viewer", EvtAdminStatus)
	require.True(t, evt.Payload.(AdminStatusPayload).Exists)

	// admin disconnect frees the slot and is observable
	s.Disconnect("a1")
	s.CheckAdmin("viewer")
	evt, _ = pub.lastSentTo("viewer", EvtAdminStatus)
	require.False(t, evt.Payload.(AdminStatusPayload).Exists)
}

func TestSessionTwoPlayerRoundEndsOnFirstWinner(t *testing.T) {
	s, pub := newTestSession(time.Hour)

	card := fullCard()
	s.Join("c1", "ana")
	s.Join("c2", "ben")
	s.UpsertPlayer("c1", "ana", []Card{card})
	s.UpsertPlayer("c2", "ben", []Card{card})
	s.Start()

	s.CheckBlackout("c1", card, cardNumbers(card))

	require.Equal(t, 1, pub.countBroadcasts(EvtWinner))
	require.Equal(t, 1, pub.countBroadcasts(EvtGameEnded))
	require.Equal(t, StateEnded, s.stateForTest())
	require.Equal(t, []string{"ana"}, s.Snapshot().Winners)
}

func TestSessionFivePlayerRoundAcceptsThreeWinners(t *testing.T) {
	s, pub := newTestSession(time.Hour)

	card := fullCard()
	called := cardNumbers(card)
	for _, p := range []struct{ id, nick string }{
		{"c1", "ana"}, {"c2", "ben"}, {"c3", "cho"}, {"c4", "dan"}, {"c5", "eve"},
	} {
		s.Join(p.id, p.nick)
		s.UpsertPlayer(p.id, p.nick, []Card{card})
	}
	s.Start()

	s.CheckBlackout("c1", card, called)
	s.CheckBlackout("c2", card, called)
	require.Equal(t, StateRunning, s.stateForTest())

	// repeat claim from the same player is absorbed
	s.CheckBlackout("c1", card, called)
	require.Equal(t, 2, pub.countBroadcasts(EvtWinner))

	// losing claim changes nothing
	s.CheckBlackout("c3", card, called[:5])
	require.Equal(t, 2, pub.countBroadcasts(EvtWinner))
	require.Equal(t, StateRunning, s.stateForTest())

	s.CheckBlackout("c4", card, called)
	require.Equal(t, 3, pub.countBroadcasts(EvtWinner))
	require.Equal(t, StateEnded, s.stateForTest())
	require.Equal(t, []string{"ana", "ben", "dan"}, s.Snapshot().Winners)
}

func TestSessionBlackoutFromUnknownConnectionIgnored(t *testing.T) {
	s, pub := newTestSession(time.Hour)

	s.Join("c1", "ana")
	s.Start()

	card := fullCard()
	s.CheckBlackout("ghost", card, cardNumbers(card))
	require.Zero(t, pub.countBroadcasts(EvtWinner))
	require.Equal(t, StateRunning, s.stateForTest())
}

func TestSessionPauseStopsDrawsAndResumeContinues(t *testing.T) {
	s, _ := newTestSession(2 * time.Millisecond)

	s.Start()
	require.Eventually(t, func() bool {
		return len(s.Snapshot().CalledNumbers) >= 5
	}, 2*time.Second, time.Millisecond)

	s.Pause()
	require.Equal(t, StatePaused, s.stateForTest())
	drawnAtPause := len(s.Snapshot().CalledNumbers)

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, drawnAtPause, len(s.Snapshot().CalledNumbers))

	s.Resume()
	require.Eventually(t, func() bool {
		return len(s.Snapshot().CalledNumbers) > drawnAtPause
	}, 2*time.Second, time.Millisecond)

	// no duplicates, no gaps: ledger stays unique and the pool accounts for
	// the rest of the domain
	s.Pause()
	called := s.Snapshot().CalledNumbers
	seen := make(map[int]bool, len(called))
	for _, n := range called {
		require.False(t, seen[n], "number %d called twice", n)
		seen[n] = true
	}
	s.mu.Lock()
	require.Equal(t, MaxNumber, s.pool.Remaining()+len(called))
	s.mu.Unlock()
}

func TestSessionResetFromAnyState(t *testing.T) {
	s, pub := newTestSession(time.Hour)

	card := fullCard()
	s.RegisterAdmin("a1")
	s.Join("c1", "ana")
	s.Join("c2", "ben")
	s.UpsertPlayer("c1", "ana", []Card{card})
	s.UpsertPlayer("c2", "ben", []Card{card})
	s.Start()
	s.CheckBlackout("c1", card, cardNumbers(card)) // two players: round over

	s.Reset()
	require.Equal(t, StateIdle, s.stateForTest())

	snap := s.Snapshot()
	require.False(t, snap.Started)
	require.Empty(t, snap.CalledNumbers)
	require.Empty(t, snap.Winners)
	require.Empty(t, s.Players())

	// the admin page survives a reset
	s.CheckAdmin("viewer")
	evt, ok := pub.lastSentTo("viewer", EvtAdminStatus)
	require.True(t, ok)
	require.True(t, evt.Payload.(AdminStatusPayload).Exists)
}

func TestSessionFullRoundExhaustsPool(t *testing.T) {
	s, pub := newTestSession(time.Millisecond)

	s.Join("c1", "ana")
	s.Join("c2", "ben")
	s.Join("c3", "cho")
	s.Start()

	// nobody ever claims: all 75 numbers get called, then the round ends
	require.Eventually(t, func() bool {
		return s.stateForTest() == StateEnded
	}, 10*time.Second, 5*time.Millisecond)

	snap := s.Snapshot()
	require.Len(t, snap.CalledNumbers, MaxNumber)
	require.Empty(t, snap.Winners)
	require.Equal(t, MaxNumber, pub.countBroadcasts(EvtNumberCalled))
	require.Equal(t, 1, pub.countBroadcasts(EvtGameEnded))
}

func TestSessionRoundHook(t *testing.T) {
	s, _ := newTestSession(time.Hour)

	got := make(chan RoundSummary, 1)
	s.SetRoundHook(func(sum RoundSummary) { got <- sum })

	card := fullCard()
	s.Join("c1", "ana")
	s.Join("c2", "ben")
	s.UpsertPlayer("c1", "ana", []Card{card})
	s.UpsertPlayer("c2", "ben", []Card{card})
	s.Start()
	s.CheckBlackout("c2", card, cardNumbers(card))

	select {
	case sum := <-got:
		require.Equal(t, 2, sum.PlayerCount)
		require.Equal(t, []string{"ben"}, sum.Winners)
		require.False(t, sum.EndedAt.Before(sum.StartedAt))
	case <-time.After(time.Second):
		t.Fatal("round hook never fired")
	}
}
