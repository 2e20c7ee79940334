package game

import "github.com/samber/lo"

// Card is a 5x5 grid supplied by the client. A cell value of 0 marks the free
// space and is always considered called.
type Card [][]int

// Player ties a live connection to its display name and cards.
type Player struct {
	ConnID   string
	Nickname string
	Cards    []Card
}

// Roster is the insertion-ordered player list, keyed by connection id. It is
// owned and mutated exclusively by the session; it does no locking of its own.
type Roster struct {
	players []*Player
}

func (r *Roster) Get(connID string) (*Player, bool) {
	for _, p := range r.players {
		if p.ConnID == connID {
			return p, true
		}
	}
	return nil, false
}

// Upsert replaces the cards of an existing entry (a client regenerating its
// cards) or inserts a new one at the end.
func (r *Roster) Upsert(connID, nickname string, cards []Card) {
	if p, ok := r.Get(connID); ok {
		p.Nickname = nickname
		p.Cards = cards
		return
	}
	r.players = append(r.players, &Player{ConnID: connID, Nickname: nickname, Cards: cards})
}

// Remove drops the entry for connID. Idempotent.
func (r *Roster) Remove(connID string) {
	r.players = lo.Reject(r.players, func(p *Player, _ int) bool {
		return p.ConnID == connID
	})
}

func (r *Roster) Count() int {
	return len(r.players)
}

// List returns the broadcast view of the roster in insertion order.
func (r *Roster) List() []PlayerPayload {
	return lo.Map(r.players, func(p *Player, _ int) PlayerPayload {
		return PlayerPayload{Nickname: p.Nickname, Cards: p.Cards}
	})
}

// Clear empties the roster. Only reset does this; player identities do not
// survive a reset.
func (r *Roster) Clear() {
	r.players = nil
}
