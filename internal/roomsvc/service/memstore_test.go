package service

import (
	"context"
	"sync"

	"github.com/bingohall/room-services/internal/bingo"
	"github.com/bingohall/room-services/internal/roomsvc/models"
)

// In-memory store fakes for service tests, concurrency-safe via a single
// mutex per store.

type memGameStore struct {
	mu    sync.Mutex
	games map[string]*models.Game
}

func newMemGameStore() *memGameStore {
	return &memGameStore{games: make(map[string]*models.Game)}
}

func (m *memGameStore) CreateGame(ctx context.Context, g *models.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	m.games[g.ID] = &cp
	return nil
}

func (m *memGameStore) GetGame(ctx context.Context, id string) (*models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	cp.CalledNumbers = append([]int(nil), g.CalledNumbers...)
	return &cp, nil
}

func (m *memGameStore) UpdateStatus(ctx context.Context, id string, status bingo.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		g.Status = status
	}
	return nil
}

func (m *memGameStore) UpdateWinPattern(ctx context.Context, id string, pattern bingo.Pattern) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		g.WinPattern = pattern
	}
	return nil
}

func (m *memGameStore) UpdateCalledNumbers(ctx context.Context, id string, numbers []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		g.CalledNumbers = append([]int(nil), numbers...)
	}
	return nil
}

func (m *memGameStore) UpdateStagedNumber(ctx context.Context, id string, number *int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.games[id]; ok {
		g.StagedNumber = number
	}
	return nil
}

func (m *memGameStore) AppendCalledNumber(ctx context.Context, id string, number int) ([]int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, false, nil
	}
	for _, n := range g.CalledNumbers {
		if n == number {
			return append([]int(nil), g.CalledNumbers...), false, nil
		}
	}
	g.CalledNumbers = append(g.CalledNumbers, number)
	return append([]int(nil), g.CalledNumbers...), true, nil
}

type memPlayerStore struct {
	mu      sync.Mutex
	players map[string]*models.Player
}

func newMemPlayerStore() *memPlayerStore {
	return &memPlayerStore{players: make(map[string]*models.Player)}
}

func (m *memPlayerStore) CreatePlayer(ctx context.Context, p *models.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.players[p.ID] = &cp
	return nil
}

func (m *memPlayerStore) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memPlayerStore) ListPlayers(ctx context.Context, gameID string) ([]*models.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Player
	for _, p := range m.players {
		if p.GameID == gameID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memPlayerStore) DeletePlayer(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, id)
	return nil
}

type memCardStore struct {
	mu    sync.Mutex
	cards map[string]*models.Card
}

func newMemCardStore() *memCardStore {
	return &memCardStore{cards: make(map[string]*models.Card)}
}

func (m *memCardStore) CreateCard(ctx context.Context, c *models.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.Numbers = append([]int(nil), c.Numbers...)
	cp.Marked = append([]int(nil), c.Marked...)
	m.cards[c.ID] = &cp
	return nil
}

func (m *memCardStore) GetCard(ctx context.Context, id string) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Numbers = append([]int(nil), c.Numbers...)
	cp.Marked = append([]int(nil), c.Marked...)
	return &cp, nil
}

func (m *memCardStore) ListCards(ctx context.Context, playerID string) ([]*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Card
	for _, c := range m.cards {
		if c.PlayerID == playerID {
			cp := *c
			cp.Numbers = append([]int(nil), c.Numbers...)
			cp.Marked = append([]int(nil), c.Marked...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memCardStore) UpdateCardMarked(ctx context.Context, id string, marked []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.cards[id]; ok {
		c.Marked = append([]int(nil), marked...)
	}
	return nil
}

func (m *memCardStore) DeleteCard(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cards, id)
	return nil
}

func (m *memCardStore) ClearMarksForGame(ctx context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cards {
		if c.GameID == gameID {
			c.Marked = []int{}
		}
	}
	return nil
}

type memWinnerStore struct {
	mu      sync.Mutex
	nextID  int64
	winners []*models.Winner
	missed  []*models.MissedWinner
}

func newMemWinnerStore() *memWinnerStore {
	return &memWinnerStore{}
}

func (m *memWinnerStore) CreateWinner(ctx context.Context, w *models.Winner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *w
	cp.ID = m.nextID
	m.winners = append(m.winners, &cp)
	return nil
}

func (m *memWinnerStore) ListWinners(ctx context.Context, gameID string) ([]*models.Winner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Winner
	for _, w := range m.winners {
		if w.GameID == gameID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memWinnerStore) DeleteWinners(ctx context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*models.Winner
	for _, w := range m.winners {
		if w.GameID != gameID {
			kept = append(kept, w)
		}
	}
	m.winners = kept
	return nil
}

func (m *memWinnerStore) CreateMissedWinner(ctx context.Context, w *models.MissedWinner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *w
	cp.ID = m.nextID
	m.missed = append(m.missed, &cp)
	return nil
}

func (m *memWinnerStore) ListMissedWinners(ctx context.Context, gameID string) ([]*models.MissedWinner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.MissedWinner
	for _, w := range m.missed {
		if w.GameID == gameID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memWinnerStore) DeleteMissedWinners(ctx context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*models.MissedWinner
	for _, w := range m.missed {
		if w.GameID != gameID {
			kept = append(kept, w)
		}
	}
	m.missed = kept
	return nil
}

type memMessageStore struct {
	mu       sync.Mutex
	messages []*models.Message
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{}
}

func (m *memMessageStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *msg
	m.messages = append(m.messages, &cp)
	return nil
}

func (m *memMessageStore) ListMessages(ctx context.Context, gameID string) ([]*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Message
	for _, msg := range m.messages {
		if msg.GameID == gameID {
			cp := *msg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memMessageStore) DeleteMessages(ctx context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*models.Message
	for _, msg := range m.messages {
		if msg.GameID != gameID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingPublisher) PublishEvent(gameID, eventType string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
}

func (r *recordingPublisher) has(eventType string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e == eventType {
			return true
		}
	}
	return false
}
