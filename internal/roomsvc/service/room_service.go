package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bingohall/room-services/internal/bingo"
	"github.com/bingohall/room-services/internal/roomsvc/models"
)

const roomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const roomCodeLen = 6

const maxCardsPerPlayer = 10

// RoomService implements every room operation: lifecycle transitions, number
// calling, claims, chat and roster management. All writes go through the
// store contracts; win decisions go through the bingo package.
type RoomService struct {
	games    GameStore
	players  PlayerStore
	cards    CardStore
	winners  WinnerStore
	messages MessageStore
	events   EventPublisher
}

func NewRoomService(games GameStore, players PlayerStore, cards CardStore,
	winners WinnerStore, messages MessageStore, events EventPublisher) *RoomService {
	return &RoomService{
		games:    games,
		players:  players,
		cards:    cards,
		winners:  winners,
		messages: messages,
		events:   events,
	}
}

// Snapshot is the full room state a polling client renders from.
type Snapshot struct {
	Game          *models.Game           `json:"game"`
	Players       []*models.Player       `json:"players"`
	Winners       []*models.Winner       `json:"winners"`
	MissedWinners []*models.MissedWinner `json:"missed_winners"`
	Messages      []*models.Message      `json:"messages"`
}

// ClaimResult reports the outcome of a bingo claim. A rejected claim is a
// normal outcome, not an error.
type ClaimResult struct {
	Accepted bool          `json:"accepted"`
	Pattern  bingo.Pattern `json:"pattern"`
	Reason   string        `json:"reason,omitempty"`
}

func generateRoomCode() string {
	b := make([]byte, roomCodeLen)
	for i := range b {
		b[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
	}
	return string(b)
}

// CreateRoom creates a game with its host registered as the first player and
// the host's cards generated. The host id is derived from the room code so a
// room has exactly one host identity for its whole life.
func (s *RoomService) CreateRoom(ctx context.Context, hostName string, playerLimit, hostCardCount int,
	pattern bingo.Pattern) (*models.Game, *models.Player, []*models.Card, error) {
	if hostName == "" {
		return nil, nil, nil, fmt.Errorf("%w: host name is required", ErrInvalidInput)
	}
	if playerLimit < 1 {
		return nil, nil, nil, fmt.Errorf("%w: player limit must be positive", ErrInvalidInput)
	}
	if pattern == "" {
		pattern = bingo.PatternLine
	}
	if !bingo.ValidPattern(pattern) {
		return nil, nil, nil, fmt.Errorf("%w: unknown win pattern %q", ErrInvalidInput, pattern)
	}
	if hostCardCount < 1 {
		hostCardCount = 1
	}
	if hostCardCount > maxCardsPerPlayer {
		return nil, nil, nil, fmt.Errorf("%w: at most %d cards per player", ErrInvalidInput, maxCardsPerPlayer)
	}

	code := generateRoomCode()
	now := time.Now()

	game := &models.Game{
		ID:            code,
		HostID:        "host-" + code,
		HostName:      hostName,
		Status:        bingo.StatusWaiting,
		PlayerLimit:   playerLimit,
		WinPattern:    pattern,
		CalledNumbers: []int{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.games.CreateGame(ctx, game); err != nil {
		return nil, nil, nil, err
	}

	host := &models.Player{
		ID:        game.HostID,
		GameID:    code,
		Name:      hostName,
		CardCount: hostCardCount,
		JoinedAt:  now,
	}
	if err := s.players.CreatePlayer(ctx, host); err != nil {
		return nil, nil, nil, err
	}

	cards, err := s.dealCards(ctx, game.ID, host.ID, hostCardCount)
	if err != nil {
		return nil, nil, nil, err
	}

	s.publish(game.ID, "room-created", game)
	log.Infof("room %s created by %s (pattern %s, limit %d)", code, hostName, pattern, playerLimit)
	return game, host, cards, nil
}

func (s *RoomService) dealCards(ctx context.Context, gameID, playerID string, count int) ([]*models.Card, error) {
	cards := make([]*models.Card, 0, count)
	for i := 0; i < count; i++ {
		card := &models.Card{
			ID:       uuid.New().String(),
			PlayerID: playerID,
			GameID:   gameID,
			Numbers:  bingo.GenerateCard(),
			Marked:   []int{},
		}
		if err := s.cards.CreateCard(ctx, card); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (s *RoomService) getGame(ctx context.Context, gameID string) (*models.Game, error) {
	game, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}
	return game, nil
}

// Snapshot returns the room state for a polling client.
func (s *RoomService) Snapshot(ctx context.Context, gameID string) (*Snapshot, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	players, err := s.players.ListPlayers(ctx, gameID)
	if err != nil {
		return nil, err
	}
	winners, err := s.winners.ListWinners(ctx, gameID)
	if err != nil {
		return nil, err
	}
	missed, err := s.winners.ListMissedWinners(ctx, gameID)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.ListMessages(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Game:          game,
		Players:       players,
		Winners:       winners,
		MissedWinners: missed,
		Messages:      messages,
	}, nil
}

// JoinAsNewPlayer registers a fresh player and deals their cards. The room
// capacity counts the host.
func (s *RoomService) JoinAsNewPlayer(ctx context.Context, gameID, name string, cardCount int) (*models.Player, []*models.Card, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if cardCount < 1 {
		cardCount = 1
	}
	if cardCount > maxCardsPerPlayer {
		return nil, nil, fmt.Errorf("%w: at most %d cards per player", ErrInvalidInput, maxCardsPerPlayer)
	}

	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	players, err := s.players.ListPlayers(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if len(players) >= game.PlayerLimit {
		return nil, nil, fmt.Errorf("%w: game %s is full", ErrConflict, gameID)
	}

	player := &models.Player{
		ID:        uuid.New().String(),
		GameID:    gameID,
		Name:      name,
		CardCount: cardCount,
		JoinedAt:  time.Now(),
	}
	if err := s.players.CreatePlayer(ctx, player); err != nil {
		return nil, nil, err
	}

	cards, err := s.dealCards(ctx, gameID, player.ID, cardCount)
	if err != nil {
		return nil, nil, err
	}

	s.publish(gameID, "player-joined", player)
	return player, cards, nil
}

// ReconnectAsPlayer resumes an existing session: the capability token is the
// player id handed out on join, nothing else is kept client side.
func (s *RoomService) ReconnectAsPlayer(ctx context.Context, gameID, playerID string) (*models.Player, []*models.Card, error) {
	if _, err := s.getGame(ctx, gameID); err != nil {
		return nil, nil, err
	}
	player, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}
	if player == nil || player.GameID != gameID {
		return nil, nil, fmt.Errorf("%w: player %s in game %s", ErrNotFound, playerID, gameID)
	}
	cards, err := s.cards.ListCards(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}
	return player, cards, nil
}

// RemovePlayer deletes a player and their cards. The host may remove anyone;
// a player may remove only themselves (leaving the room).
func (s *RoomService) RemovePlayer(ctx context.Context, gameID, playerID, actorID string) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if actorID != game.HostID && actorID != playerID {
		return fmt.Errorf("%w: only the host can remove other players", ErrForbidden)
	}
	if playerID == game.HostID {
		return fmt.Errorf("%w: the host cannot leave their own room", ErrConflict)
	}

	player, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if player == nil || player.GameID != gameID {
		return fmt.Errorf("%w: player %s in game %s", ErrNotFound, playerID, gameID)
	}

	cards, err := s.cards.ListCards(ctx, playerID)
	if err != nil {
		return err
	}
	for _, card := range cards {
		if err := s.cards.DeleteCard(ctx, card.ID); err != nil {
			return err
		}
	}
	if err := s.players.DeletePlayer(ctx, playerID); err != nil {
		return err
	}

	s.publish(gameID, "player-left", player)
	return nil
}

func actorOf(game *models.Game, actorID string, developer bool) bingo.Actor {
	if actorID == game.HostID {
		return bingo.ActorHost
	}
	if developer {
		return bingo.ActorDeveloper
	}
	return bingo.ActorPlayer
}

// Start moves the game from waiting to playing.
func (s *RoomService) Start(ctx context.Context, gameID, actorID string, developer bool) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !bingo.CanStart(game.Status, actorOf(game, actorID, developer)) {
		if game.Status != bingo.StatusWaiting {
			return fmt.Errorf("%w: game %s is %s", ErrConflict, gameID, game.Status)
		}
		return fmt.Errorf("%w: only the host can start the game", ErrForbidden)
	}
	if err := s.games.UpdateStatus(ctx, gameID, bingo.StatusPlaying); err != nil {
		return err
	}
	s.systemMessage(ctx, gameID, "Game started")
	s.publish(gameID, "game-started", map[string]string{"game_id": gameID})
	return nil
}

// Pause moves the game from playing to paused.
func (s *RoomService) Pause(ctx context.Context, gameID, actorID string, developer bool) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !bingo.CanPause(game.Status, actorOf(game, actorID, developer)) {
		if game.Status != bingo.StatusPlaying {
			return fmt.Errorf("%w: game %s is %s", ErrConflict, gameID, game.Status)
		}
		return fmt.Errorf("%w: only the host can pause the game", ErrForbidden)
	}
	if err := s.games.UpdateStatus(ctx, gameID, bingo.StatusPaused); err != nil {
		return err
	}
	s.publish(gameID, "game-paused", map[string]string{"game_id": gameID})
	return nil
}

// Resume moves the game from paused back to playing.
func (s *RoomService) Resume(ctx context.Context, gameID, actorID string, developer bool) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !bingo.CanResume(game.Status, actorOf(game, actorID, developer)) {
		if game.Status != bingo.StatusPaused {
			return fmt.Errorf("%w: game %s is %s", ErrConflict, gameID, game.Status)
		}
		return fmt.Errorf("%w: only the host can resume the game", ErrForbidden)
	}
	if err := s.games.UpdateStatus(ctx, gameID, bingo.StatusPlaying); err != nil {
		return err
	}
	s.publish(gameID, "game-resumed", map[string]string{"game_id": gameID})
	return nil
}

// Reset returns the room to waiting: called history, staged number, winner
// lists, chat and every card's marks are cleared. Room id, host and roster
// survive, so the same crowd can play again.
func (s *RoomService) Reset(ctx context.Context, gameID, actorID string) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if !bingo.CanReset(actorOf(game, actorID, false)) {
		return fmt.Errorf("%w: only the host can reset the game", ErrForbidden)
	}

	if err := s.games.UpdateStatus(ctx, gameID, bingo.StatusWaiting); err != nil {
		return err
	}
	if err := s.games.UpdateCalledNumbers(ctx, gameID, []int{}); err != nil {
		return err
	}
	if err := s.games.UpdateStagedNumber(ctx, gameID, nil); err != nil {
		return err
	}
	if err := s.winners.DeleteWinners(ctx, gameID); err != nil {
		return err
	}
	if err := s.winners.DeleteMissedWinners(ctx, gameID); err != nil {
		return err
	}
	if err := s.messages.DeleteMessages(ctx, gameID); err != nil {
		return err
	}
	if err := s.cards.ClearMarksForGame(ctx, gameID); err != nil {
		return err
	}

	s.publish(gameID, "game-reset", map[string]string{"game_id": gameID})
	log.Infof("room %s reset by host", gameID)
	return nil
}

// UpdateWinPattern changes the room's win pattern. Host only, and only while
// the room is still waiting; switching rules mid-game would invalidate marks.
func (s *RoomService) UpdateWinPattern(ctx context.Context, gameID, actorID string, pattern bingo.Pattern) error {
	if !bingo.ValidPattern(pattern) {
		return fmt.Errorf("%w: unknown win pattern %q", ErrInvalidInput, pattern)
	}
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if actorID != game.HostID {
		return fmt.Errorf("%w: only the host can change the win pattern", ErrForbidden)
	}
	if game.Status != bingo.StatusWaiting {
		return fmt.Errorf("%w: pattern can only change before the game starts", ErrConflict)
	}
	return s.games.UpdateWinPattern(ctx, gameID, pattern)
}

// CallResult is the outcome of a call-number action.
type CallResult struct {
	Number        int   `json:"number"`         // 0 when nothing was called
	CalledNumbers []int `json:"called_numbers"`
	Exhausted     bool  `json:"exhausted"` // all 75 numbers have been called
}

// CallNumber commits the next number to the authoritative history. With an
// override the host calls that exact number; otherwise one is drawn uniformly
// from the remaining pool. Re-calling a called number is a no-op. When the
// pool runs dry the game finishes and the missed-winner scan runs.
func (s *RoomService) CallNumber(ctx context.Context, gameID, actorID string, developer bool, override int) (*CallResult, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if actor := actorOf(game, actorID, developer); !bingo.CanCall(game.Status, actor) {
		if game.Status != bingo.StatusPlaying {
			return nil, fmt.Errorf("%w: game %s is %s", ErrConflict, gameID, game.Status)
		}
		return nil, fmt.Errorf("%w: only the host can call numbers", ErrForbidden)
	}

	num, ok := bingo.DrawNumber(game.CalledNumbers, override)
	if !ok {
		if len(game.CalledNumbers) >= bingo.MaxNumber {
			// pool exhausted: finish the game and scan for missed winners
			if err := s.finishExhausted(ctx, game); err != nil {
				return nil, err
			}
			return &CallResult{CalledNumbers: game.CalledNumbers, Exhausted: true}, nil
		}
		// duplicate override, idempotent no-op
		return &CallResult{CalledNumbers: game.CalledNumbers}, nil
	}

	history, appended, err := s.games.AppendCalledNumber(ctx, gameID, num)
	if err != nil {
		return nil, err
	}
	if !appended {
		// lost the race against a concurrent call of the same number
		return &CallResult{CalledNumbers: history}, nil
	}

	// staged preview is consumed by the commit
	if game.StagedNumber != nil && *game.StagedNumber == num {
		if err := s.games.UpdateStagedNumber(ctx, gameID, nil); err != nil {
			return nil, err
		}
	}

	s.publish(gameID, "bingo-call", &CallResult{Number: num, CalledNumbers: history})

	result := &CallResult{Number: num, CalledNumbers: history}
	if len(history) >= bingo.MaxNumber {
		game.CalledNumbers = history
		if err := s.finishExhausted(ctx, game); err != nil {
			return nil, err
		}
		result.Exhausted = true
	}
	return result, nil
}

// finishExhausted runs the missed-winner scan over every card in the room and
// marks the game finished. A card counts as missed when it satisfies the win
// pattern with its current marks but its owner never appears in the winner list.
func (s *RoomService) finishExhausted(ctx context.Context, game *models.Game) error {
	players, err := s.players.ListPlayers(ctx, game.ID)
	if err != nil {
		return err
	}
	winners, err := s.winners.ListWinners(ctx, game.ID)
	if err != nil {
		return err
	}
	won := make(map[string]bool, len(winners))
	for _, w := range winners {
		won[w.PlayerID] = true
	}

	var missed []*models.MissedWinner
	for _, p := range players {
		if won[p.ID] {
			continue
		}
		cards, err := s.cards.ListCards(ctx, p.ID)
		if err != nil {
			return err
		}
		for _, card := range cards {
			if bingo.IsWinningClaim(card.Marked, game.WinPattern, game.CalledNumbers, card.Numbers) {
				mw := &models.MissedWinner{
					GameID:   game.ID,
					PlayerID: p.ID,
					Name:     p.Name,
					Pattern:  game.WinPattern,
					Reason:   "completed the pattern but never claimed",
				}
				if err := s.winners.CreateMissedWinner(ctx, mw); err != nil {
					return err
				}
				missed = append(missed, mw)
				break
			}
		}
	}

	if err := s.games.UpdateStatus(ctx, game.ID, bingo.StatusFinished); err != nil {
		return err
	}
	s.systemMessage(ctx, game.ID, "All numbers called, game over")
	if len(missed) > 0 {
		s.publish(game.ID, "missed-winners", missed)
	}
	s.publish(game.ID, "game-finished", map[string]string{"game_id": game.ID})
	log.Infof("room %s exhausted the pool, %d missed winner(s)", game.ID, len(missed))
	return nil
}

// Claim validates a bingo claim against the stored card and the authoritative
// called-number history. A win is appended to the winner list; the game keeps
// going so later claims can still win.
func (s *RoomService) Claim(ctx context.Context, gameID, playerID, cardID string) (*ClaimResult, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Status != bingo.StatusPlaying {
		return nil, fmt.Errorf("%w: game %s is %s", ErrConflict, gameID, game.Status)
	}

	player, err := s.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player == nil || player.GameID != gameID {
		return nil, fmt.Errorf("%w: player %s in game %s", ErrNotFound, playerID, gameID)
	}

	card, err := s.cards.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil || card.GameID != gameID {
		return nil, fmt.Errorf("%w: card %s in game %s", ErrNotFound, cardID, gameID)
	}
	if card.PlayerID != playerID {
		return nil, fmt.Errorf("%w: card %s does not belong to player %s", ErrForbidden, cardID, playerID)
	}

	if !bingo.IsWinningClaim(card.Marked, game.WinPattern, game.CalledNumbers, card.Numbers) {
		return &ClaimResult{
			Accepted: false,
			Pattern:  game.WinPattern,
			Reason:   fmt.Sprintf("the %s pattern is not satisfied by called numbers", game.WinPattern),
		}, nil
	}

	winner := &models.Winner{
		GameID:   gameID,
		PlayerID: playerID,
		Name:     player.Name,
		Pattern:  game.WinPattern,
		WonAt:    time.Now(),
	}
	if err := s.winners.CreateWinner(ctx, winner); err != nil {
		return nil, err
	}

	s.systemMessage(ctx, gameID, fmt.Sprintf("%s won with the %s pattern!", player.Name, game.WinPattern))
	s.publish(gameID, "bingo-winner", winner)
	log.Infof("room %s: %s won with pattern %s", gameID, player.Name, game.WinPattern)

	return &ClaimResult{Accepted: true, Pattern: game.WinPattern}, nil
}

// MarkCard replaces a card's marked set. Toggling is client-side; the service
// only checks the indices are on the card.
func (s *RoomService) MarkCard(ctx context.Context, gameID, cardID string, marked []int) error {
	if cardID == "" || marked == nil {
		return fmt.Errorf("%w: card id and marked list are required", ErrInvalidInput)
	}
	for _, i := range marked {
		if i < 0 || i >= bingo.CardSize {
			return fmt.Errorf("%w: marked index %d out of range", ErrInvalidInput, i)
		}
	}

	card, err := s.cards.GetCard(ctx, cardID)
	if err != nil {
		return err
	}
	if card == nil || card.GameID != gameID {
		return fmt.Errorf("%w: card %s in game %s", ErrNotFound, cardID, gameID)
	}
	return s.cards.UpdateCardMarked(ctx, cardID, marked)
}

// StageNumber previews a candidate next call without touching the history.
// Developer role only; only a call commit mutates the authoritative record.
func (s *RoomService) StageNumber(ctx context.Context, gameID, actorID string, developer bool, number int) error {
	if number < 1 || number > bingo.MaxNumber {
		return fmt.Errorf("%w: number %d out of range", ErrInvalidInput, number)
	}
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if actorOf(game, actorID, developer) == bingo.ActorPlayer {
		return fmt.Errorf("%w: staging requires the developer role", ErrForbidden)
	}
	return s.games.UpdateStagedNumber(ctx, gameID, &number)
}

// PostMessage appends a chat entry.
func (s *RoomService) PostMessage(ctx context.Context, gameID, sender, text string) (*models.Message, error) {
	if sender == "" || text == "" {
		return nil, fmt.Errorf("%w: sender and text are required", ErrInvalidInput)
	}
	if _, err := s.getGame(ctx, gameID); err != nil {
		return nil, err
	}
	msg := &models.Message{
		ID:        uuid.New().String(),
		GameID:    gameID,
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	s.publish(gameID, "chat-message", msg)
	return msg, nil
}

// systemMessage best-effort appends a system chat line.
func (s *RoomService) systemMessage(ctx context.Context, gameID, text string) {
	msg := &models.Message{
		ID:        uuid.New().String(),
		GameID:    gameID,
		Sender:    "system",
		Text:      text,
		IsSystem:  true,
		CreatedAt: time.Now(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		log.Errorf("unable to write system message for game %s: %v", gameID, err)
		return
	}
	s.publish(gameID, "chat-message", msg)
}

func (s *RoomService) publish(gameID, eventType string, data interface{}) {
	if s.events == nil {
		return
	}
	s.events.PublishEvent(gameID, eventType, data)
}
