package game

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/bingolive/backend/utils/logger"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateEnded   State = "ended"
)

// RoundSummary is handed to the round hook when a round ends.
type RoundSummary struct {
	PlayerCount int
	Numbers     []int
	Winners     []string
	StartedAt   time.Time
	EndedAt     time.Time
}

type winner struct {
	connID   string
	nickname string
	cards    []Card
}

// Session is the authoritative coordinator for the single shared bingo round.
// One mutex guards the whole aggregate: every inbound intent, the draw tick
// and disconnect handling all serialize through it, so no two mutations ever
// interleave. The Publisher never blocks, which makes it safe to publish while
// holding the lock and keeps broadcast order identical to mutation order.
type Session struct {
	mu       sync.Mutex
	pub      Publisher
	interval time.Duration

	state     State
	pool      *Pool
	roster    Roster
	admin     adminGuard
	winners   []winner
	startedAt time.Time

	// drawStop is non-nil exactly while the draw loop runs; closing it is the
	// single cancellation point, so a double stop is impossible.
	drawStop chan struct{}

	onRoundEnded func(RoundSummary)
}

func NewSession(pub Publisher, drawInterval time.Duration) *Session {
	return &Session{
		pub:      pub,
		interval: drawInterval,
		state:    StateIdle,
		pool:     NewPool(),
	}
}

// SetRoundHook installs a callback invoked (on its own goroutine) whenever a
// round ends. Must be called before the session starts serving intents.
func (s *Session) SetRoundHook(fn func(RoundSummary)) {
	s.onRoundEnded = fn
}

// ---------- admin ----------

// RegisterAdmin claims the admin role for connID. A second live admin is
// rejected, told so, and disconnected.
func (s *Session) RegisterAdmin(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.admin.Register(connID) {
		s.pub.SendTo(connID, Event{Type: EvtAdminExists, Payload: AdminStatusPayload{Exists: true}})
		s.pub.Kick(connID)
		return
	}
	logger.Infof("admin registered: %s", connID)
	s.pub.Broadcast(Event{Type: EvtAdminStatus, Payload: AdminStatusPayload{Exists: true}})
}

// CheckAdmin answers the caller with the current admin presence.
func (s *Session) CheckAdmin(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pub.SendTo(connID, Event{Type: EvtAdminStatus, Payload: AdminStatusPayload{Exists: s.admin.Exists()}})
}

// LeaveAdmin releases the admin role if connID holds it; stale releases from
// other connections are no-ops.
func (s *Session) LeaveAdmin(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin.Release(connID) {
		logger.Infof("admin left: %s", connID)
		s.pub.Broadcast(Event{Type: EvtAdminStatus, Payload: AdminStatusPayload{Exists: false}})
	}
}

// ---------- snapshots ----------

// SendStatus answers the caller with a consistent point-in-time game status.
func (s *Session) SendStatus(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pub.SendTo(connID, Event{Type: EvtGameStatus, Payload: s.statusLocked()})
}

// SendPlayers answers the caller with the full roster.
func (s *Session) SendPlayers(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pub.SendTo(connID, Event{Type: EvtPlayersUpdated, Payload: s.roster.List()})
}

// Snapshot is the read used by the REST layer.
func (s *Session) Snapshot() StatusPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Players is the roster read used by the REST layer.
func (s *Session) Players() []PlayerPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.List()
}

// ---------- roster ----------

// Join registers a nickname before the client has generated cards. Mid-round
// joins are rejected and the connection is dropped.
func (s *Session) Join(connID, nickname string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		s.pub.SendTo(connID, Event{Type: EvtGameError, Payload: ErrorPayload{Message: "Game has already started. You cannot join."}})
		s.pub.Kick(connID)
		return
	}
	s.roster.Upsert(connID, nickname, nil)
	logger.Infof("player joined: %s (%s)", nickname, connID)
	s.broadcastPlayersLocked()
}

// UpsertPlayer records a player's cards, replacing any previous set for the
// same connection (the client regenerated its cards).
func (s *Session) UpsertPlayer(connID, nickname string, cards []Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster.Upsert(connID, nickname, cards)
	s.broadcastPlayersLocked()
}

// Disconnect handles a dropped connection like any other serialized event:
// free the admin slot if held, remove the roster entry, re-broadcast.
func (s *Session) Disconnect(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.admin.Release(connID) {
		logger.Infof("admin disconnected: %s", connID)
		s.pub.Broadcast(Event{Type: EvtAdminStatus, Payload: AdminStatusPayload{Exists: false}})
	}
	if _, ok := s.roster.Get(connID); ok {
		s.roster.Remove(connID)
		s.broadcastPlayersLocked()
	}
}

// ---------- lifecycle ----------

// Start begins a round. Only valid from idle; anything else is a no-op.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return
	}
	s.state = StateRunning
	s.winners = nil
	s.pool.Reset()
	s.startedAt = time.Now()
	s.startDrawLoopLocked()
	logger.Infof("game started, %d players", s.roster.Count())
	s.pub.Broadcast(Event{Type: EvtGameStarted})
}

// Pause suspends the draw loop without touching the pool or ledger.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	s.stopDrawLoopLocked()
	s.state = StatePaused
	logger.Infof("game paused at %d numbers called", len(s.pool.called))
	s.pub.Broadcast(Event{Type: EvtGameStatus, Payload: s.statusLocked()})
}

// Resume restarts the draw loop from where the pool left off.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaused {
		return
	}
	s.state = StateRunning
	s.startDrawLoopLocked()
	logger.Infof("game resumed")
	s.pub.Broadcast(Event{Type: EvtGameStatus, Payload: s.statusLocked()})
}

// End stops the round explicitly. Valid while running or paused.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning && s.state != StatePaused {
		return
	}
	s.endLocked()
}

// Reset returns the session to idle from any state, clearing the roster,
// ledger, pool and winners. The admin slot is left alone; the admin page
// stays connected across resets.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopDrawLoopLocked()
	s.state = StateIdle
	s.roster.Clear()
	s.pool.Clear()
	s.winners = nil
	logger.Infof("game state has been reset")
	s.pub.Broadcast(Event{Type: EvtGameStatus, Payload: s.statusLocked()})
	s.broadcastPlayersLocked()
}

// ---------- win claims ----------

// CheckBlackout evaluates a win claim. Unknown connections and losing claims
// are ignored; a repeat claim from an existing winner is absorbed. When the
// accepted winner meets the cap the round ends.
func (s *Session) CheckBlackout(connID string, card Card, called []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning && s.state != StatePaused {
		return
	}
	p, ok := s.roster.Get(connID)
	if !ok {
		return
	}
	if !IsBlackout(card, called) {
		return
	}
	for _, w := range s.winners {
		if w.connID == connID {
			return
		}
	}

	s.winners = append(s.winners, winner{connID: connID, nickname: p.Nickname, cards: p.Cards})
	logger.Infof("winner #%d: %s", len(s.winners), p.Nickname)
	s.pub.Broadcast(Event{Type: EvtWinner, Payload: WinnerPayload{Nickname: p.Nickname, Cards: p.Cards}})

	if s.capReachedLocked() {
		s.endLocked()
	}
}

// ---------- internals ----------

func (s *Session) statusLocked() StatusPayload {
	return StatusPayload{
		Started:       s.state == StateRunning || s.state == StatePaused,
		State:         string(s.state),
		CalledNumbers: s.pool.Called(),
		Winners:       s.winnerNamesLocked(),
	}
}

func (s *Session) winnerNamesLocked() []string {
	return lo.Map(s.winners, func(w winner, _ int) string { return w.nickname })
}

func (s *Session) broadcastPlayersLocked() {
	s.pub.Broadcast(Event{Type: EvtPlayersUpdated, Payload: s.roster.List()})
}

// capReachedLocked guards against the degenerate empty-roster cap of zero so
// an unattended round still draws all 75 numbers.
func (s *Session) capReachedLocked() bool {
	c := WinnerCap(s.roster.Count())
	return c > 0 && len(s.winners) >= c
}

func (s *Session) endLocked() {
	s.stopDrawLoopLocked()
	s.state = StateEnded
	logger.Infof("game ended: %d called, %d winners", len(s.pool.called), len(s.winners))

	s.pub.Broadcast(Event{Type: EvtGameStatus, Payload: s.statusLocked()})
	s.pub.Broadcast(Event{Type: EvtGameEnded})

	if s.onRoundEnded != nil {
		summary := RoundSummary{
			PlayerCount: s.roster.Count(),
			Numbers:     s.pool.Called(),
			Winners:     s.winnerNamesLocked(),
			StartedAt:   s.startedAt,
			EndedAt:     time.Now(),
		}
		go s.onRoundEnded(summary)
	}
}

func (s *Session) startDrawLoopLocked() {
	stop := make(chan struct{})
	s.drawStop = stop
	go s.drawLoop(stop)
}

func (s *Session) stopDrawLoopLocked() {
	if s.drawStop != nil {
		close(s.drawStop)
		s.drawStop = nil
	}
}

func (s *Session) drawLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick draws one number. It re-checks state under the lock because a tick may
// already be in flight when a pause, end or reset lands.
func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return
	}
	if s.capReachedLocked() {
		s.endLocked()
		return
	}
	n, ok := s.pool.Draw()
	if !ok {
		s.endLocked()
		return
	}
	s.pub.Broadcast(Event{Type: EvtNumberCalled, Payload: NumberCalledPayload{Number: n}})
}
