package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bingohall/room-services/internal/bingo"
	"github.com/bingohall/room-services/internal/roomsvc/models"
)

type fixture struct {
	svc    *RoomService
	games  *memGameStore
	cards  *memCardStore
	pub    *recordingPublisher
	game   *models.Game
	host   *models.Player
	hCards []*models.Card
}

func newFixture(t *testing.T, pattern bingo.Pattern) *fixture {
	t.Helper()
	games := newMemGameStore()
	cards := newMemCardStore()
	pub := &recordingPublisher{}
	svc := NewRoomService(games, newMemPlayerStore(), cards, newMemWinnerStore(), newMemMessageStore(), pub)

	game, host, hostCards, err := svc.CreateRoom(context.Background(), "Ada", 8, 1, pattern)
	require.NoError(t, err)

	return &fixture{svc: svc, games: games, cards: cards, pub: pub, game: game, host: host, hCards: hostCards}
}

func TestCreateRoom(t *testing.T) {
	f := newFixture(t, bingo.PatternLine)

	assert.Len(t, f.game.ID, 6)
	assert.Equal(t, "host-"+f.game.ID, f.game.HostID)
	assert.Equal(t, bingo.StatusWaiting, f.game.Status)
	assert.Equal(t, f.game.HostID, f.host.ID)
	require.Len(t, f.hCards, 1)
	assert.Len(t, f.hCards[0].Numbers, 25)
	assert.True(t, f.pub.has("room-created"))
}

func TestCreateRoomValidation(t *testing.T) {
	svc := NewRoomService(newMemGameStore(), newMemPlayerStore(), newMemCardStore(),
		newMemWinnerStore(), newMemMessageStore(), nil)
	ctx := context.Background()

	_, _, _, err := svc.CreateRoom(ctx, "", 8, 1, bingo.PatternLine)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, _, err = svc.CreateRoom(ctx, "Ada", 0, 1, bingo.PatternLine)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, _, err = svc.CreateRoom(ctx, "Ada", 8, 1, bingo.Pattern("blackout"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJoinAndCapacity(t *testing.T) {
	ctx := context.Background()
	games := newMemGameStore()
	svc := NewRoomService(games, newMemPlayerStore(), newMemCardStore(),
		newMemWinnerStore(), newMemMessageStore(), nil)

	game, _, _, err := svc.CreateRoom(ctx, "Ada", 2, 1, bingo.PatternLine)
	require.NoError(t, err)

	player, cards, err := svc.JoinAsNewPlayer(ctx, game.ID, "Grace", 2)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, game.ID, player.GameID)

	// host + Grace fill the limit of 2
	_, _, err = svc.JoinAsNewPlayer(ctx, game.ID, "Alan", 1)
	assert.ErrorIs(t, err, ErrConflict)

	_, _, err = svc.JoinAsNewPlayer(ctx, "ZZZZZZ", "Alan", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReconnect(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)

	player, _, err := f.svc.JoinAsNewPlayer(ctx, f.game.ID, "Grace", 1)
	require.NoError(t, err)

	got, cards, err := f.svc.ReconnectAsPlayer(ctx, f.game.ID, player.ID)
	require.NoError(t, err)
	assert.Equal(t, player.ID, got.ID)
	assert.Len(t, cards, 1)

	_, _, err = f.svc.ReconnectAsPlayer(ctx, f.game.ID, "missing-player")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)

	err := f.svc.Start(ctx, f.game.ID, "random-player", false)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.svc.Start(ctx, f.game.ID, f.game.HostID, false))
	g, _ := f.games.GetGame(ctx, f.game.ID)
	assert.Equal(t, bingo.StatusPlaying, g.Status)

	// already playing
	err = f.svc.Start(ctx, f.game.ID, f.game.HostID, false)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeveloperMayStart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)

	require.NoError(t, f.svc.Start(ctx, f.game.ID, "dev-user", true))
	g, _ := f.games.GetGame(ctx, f.game.ID)
	assert.Equal(t, bingo.StatusPlaying, g.Status)
}

func TestPauseResume(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)
	host := f.game.HostID

	require.NoError(t, f.svc.Start(ctx, f.game.ID, host, false))

	assert.ErrorIs(t, f.svc.Pause(ctx, f.game.ID, "someone", false), ErrForbidden)
	require.NoError(t, f.svc.Pause(ctx, f.game.ID, host, false))

	g, _ := f.games.GetGame(ctx, f.game.ID)
	assert.Equal(t, bingo.StatusPaused, g.Status)

	// calls are rejected while paused
	_, err := f.svc.CallNumber(ctx, f.game.ID, host, false, 0)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, f.svc.Resume(ctx, f.game.ID, host, false))
	g, _ = f.games.GetGame(ctx, f.game.ID)
	assert.Equal(t, bingo.StatusPlaying, g.Status)
}

func TestCallNumber(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)
	host := f.game.HostID

	// not started yet
	_, err := f.svc.CallNumber(ctx, f.game.ID, host, false, 0)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, f.svc.Start(ctx, f.game.ID, host, false))

	res, err := f.svc.CallNumber(ctx, f.game.ID, host, false, 42)
	require.NoError(t, err)
	assert.Equal(t, 42, res.Number)
	assert.Equal(t, []int{42}, res.CalledNumbers)

	// calling the same number again is a no-op
	res, err = f.svc.CallNumber(ctx, f.game.ID, host, false, 42)
	require.NoError(t, err)
	assert.Zero(t, res.Number)
	assert.Equal(t, []int{42}, res.CalledNumbers)

	// random draw avoids the history
	res, err = f.svc.CallNumber(ctx, f.game.ID, host, false, 0)
	require.NoError(t, err)
	assert.NotZero(t, res.Number)
	assert.NotEqual(t, 42, res.Number)
	assert.Len(t, res.CalledNumbers, 2)
}

func TestCallNumberForbiddenForNonHost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)
	require.NoError(t, f.svc.Start(ctx, f.game.ID, f.game.HostID, false))

	player, _, err := f.svc.JoinAsNewPlayer(ctx, f.game.ID, "Grace", 1)
	require.NoError(t, err)

	_, err = f.svc.CallNumber(ctx, f.game.ID, player.ID, false, 7)
	assert.ErrorIs(t, err, ErrForbidden)

	g, _ := f.games.GetGame(ctx, f.game.ID)
	assert.Empty(t, g.CalledNumbers, "history must be untouched by a rejected call")
}

func TestClaimLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternCorners)
	host := f.game.HostID
	card := f.hCards[0]

	require.NoError(t, f.svc.Start(ctx, f.game.ID, host, false))

	// call the four corner numbers
	for _, idx := range []int{0, 4, 20, 24} {
		_, err := f.svc.CallNumber(ctx, f.game.ID, host, false, card.Numbers[idx])
		require.NoError(t, err)
	}

	// claim before marking is rejected but not an error
	res, err := f.svc.Claim(ctx, f.game.ID, host, card.ID)
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.NotEmpty(t, res.Reason)

	require.NoError(t, f.svc.MarkCard(ctx, f.game.ID, card.ID, []int{0, 4, 20, 24}))

	res, err = f.svc.Claim(ctx, f.game.ID, host, card.ID)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, bingo.PatternCorners, res.Pattern)

	// winning does not finish the game
	g, _ := f.games.GetGame(ctx, f.game.ID)
	assert.Equal(t, bingo.StatusPlaying, g.Status)

	snap, err := f.svc.Snapshot(ctx, f.game.ID)
	require.NoError(t, err)
	require.Len(t, snap.Winners, 1)
	assert.Equal(t, "Ada", snap.Winners[0].Name)
	assert.True(t, f.pub.has("bingo-winner"))
}

func TestClaimChecksCardOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternCorners)
	require.NoError(t, f.svc.Start(ctx, f.game.ID, f.game.HostID, false))

	player, _, err := f.svc.JoinAsNewPlayer(ctx, f.game.ID, "Grace", 1)
	require.NoError(t, err)

	_, err = f.svc.Claim(ctx, f.game.ID, player.ID, f.hCards[0].ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkCardValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)
	card := f.hCards[0]

	assert.ErrorIs(t, f.svc.MarkCard(ctx, f.game.ID, "", []int{1}), ErrInvalidInput)
	assert.ErrorIs(t, f.svc.MarkCard(ctx, f.game.ID, card.ID, nil), ErrInvalidInput)
	assert.ErrorIs(t, f.svc.MarkCard(ctx, f.game.ID, card.ID, []int{25}), ErrInvalidInput)
	assert.ErrorIs(t, f.svc.MarkCard(ctx, f.game.ID, "missing", []int{1}), ErrNotFound)

	require.NoError(t, f.svc.MarkCard(ctx, f.game.ID, card.ID, []int{1, 2, 12}))
	got, _ := f.cards.GetCard(ctx, card.ID)
	assert.Equal(t, []int{1, 2, 12}, got.Marked)
}

func TestResetClearsEverythingButRoster(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternCorners)
	host := f.game.HostID
	card := f.hCards[0]

	require.NoError(t, f.svc.Start(ctx, f.game.ID, host, false))
	for _, idx := range []int{0, 4, 20, 24} {
		_, err := f.svc.CallNumber(ctx, f.game.ID, host, false, card.Numbers[idx])
		require.NoError(t, err)
	}
	require.NoError(t, f.svc.MarkCard(ctx, f.game.ID, card.ID, []int{0, 4, 20, 24}))
	_, err := f.svc.Claim(ctx, f.game.ID, host, card.ID)
	require.NoError(t, err)
	_, err = f.svc.PostMessage(ctx, f.game.ID, "Ada", "good game")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Reset(ctx, f.game.ID, "not-the-host"), ErrForbidden)
	require.NoError(t, f.svc.Reset(ctx, f.game.ID, host))

	snap, err := f.svc.Snapshot(ctx, f.game.ID)
	require.NoError(t, err)
	assert.Equal(t, bingo.StatusWaiting, snap.Game.Status)
	assert.Empty(t, snap.Game.CalledNumbers)
	assert.Nil(t, snap.Game.StagedNumber)
	assert.Empty(t, snap.Winners)
	assert.Empty(t, snap.MissedWinners)
	assert.Empty(t, snap.Messages)
	assert.Equal(t, host, snap.Game.HostID)
	assert.Len(t, snap.Players, 1, "roster survives reset")

	got, _ := f.cards.GetCard(ctx, card.ID)
	assert.Empty(t, got.Marked)
}

func TestExhaustionFinishesAndScansMissedWinners(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternCorners)
	host := f.game.HostID
	card := f.hCards[0]

	require.NoError(t, f.svc.Start(ctx, f.game.ID, host, false))

	// the host marks the corners but never claims
	require.NoError(t, f.svc.MarkCard(ctx, f.game.ID, card.ID, []int{0, 4, 20, 24}))

	var last *CallResult
	for n := 1; n <= bingo.MaxNumber; n++ {
		res, err := f.svc.CallNumber(ctx, f.game.ID, host, false, n)
		require.NoError(t, err)
		last = res
	}
	require.True(t, last.Exhausted)

	snap, err := f.svc.Snapshot(ctx, f.game.ID)
	require.NoError(t, err)
	assert.Equal(t, bingo.StatusFinished, snap.Game.Status)
	require.Len(t, snap.MissedWinners, 1)
	assert.Equal(t, "Ada", snap.MissedWinners[0].Name)
	assert.True(t, f.pub.has("game-finished"))

	// reset on a finished game goes back to waiting
	require.NoError(t, f.svc.Reset(ctx, f.game.ID, host))
	snap, err = f.svc.Snapshot(ctx, f.game.ID)
	require.NoError(t, err)
	assert.Equal(t, bingo.StatusWaiting, snap.Game.Status)
	assert.Empty(t, snap.Game.CalledNumbers)
}

func TestStageNumber(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)
	host := f.game.HostID

	assert.ErrorIs(t, f.svc.StageNumber(ctx, f.game.ID, "someone", false, 10), ErrForbidden)
	assert.ErrorIs(t, f.svc.StageNumber(ctx, f.game.ID, host, false, 99), ErrInvalidInput)

	require.NoError(t, f.svc.StageNumber(ctx, f.game.ID, host, false, 10))
	g, _ := f.games.GetGame(ctx, f.game.ID)
	require.NotNil(t, g.StagedNumber)
	assert.Equal(t, 10, *g.StagedNumber)

	// committing the staged number clears the preview
	require.NoError(t, f.svc.Start(ctx, f.game.ID, host, false))
	_, err := f.svc.CallNumber(ctx, f.game.ID, host, false, 10)
	require.NoError(t, err)
	g, _ = f.games.GetGame(ctx, f.game.ID)
	assert.Nil(t, g.StagedNumber)
}

func TestUpdateWinPattern(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)
	host := f.game.HostID

	assert.ErrorIs(t, f.svc.UpdateWinPattern(ctx, f.game.ID, "someone", bingo.PatternFull), ErrForbidden)
	assert.ErrorIs(t, f.svc.UpdateWinPattern(ctx, f.game.ID, host, bingo.Pattern("nope")), ErrInvalidInput)

	require.NoError(t, f.svc.UpdateWinPattern(ctx, f.game.ID, host, bingo.PatternFull))
	g, _ := f.games.GetGame(ctx, f.game.ID)
	assert.Equal(t, bingo.PatternFull, g.WinPattern)

	require.NoError(t, f.svc.Start(ctx, f.game.ID, host, false))
	assert.ErrorIs(t, f.svc.UpdateWinPattern(ctx, f.game.ID, host, bingo.PatternLine), ErrConflict)
}

func TestRemovePlayer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)
	host := f.game.HostID

	player, cards, err := f.svc.JoinAsNewPlayer(ctx, f.game.ID, "Grace", 2)
	require.NoError(t, err)

	// another player may not remove them
	other, _, err := f.svc.JoinAsNewPlayer(ctx, f.game.ID, "Alan", 1)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.RemovePlayer(ctx, f.game.ID, player.ID, other.ID), ErrForbidden)

	// the host may not be removed
	assert.ErrorIs(t, f.svc.RemovePlayer(ctx, f.game.ID, host, host), ErrConflict)

	require.NoError(t, f.svc.RemovePlayer(ctx, f.game.ID, player.ID, host))
	for _, c := range cards {
		got, _ := f.cards.GetCard(ctx, c.ID)
		assert.Nil(t, got)
	}
	_, _, err = f.svc.ReconnectAsPlayer(ctx, f.game.ID, player.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, bingo.PatternLine)

	_, err := f.svc.PostMessage(ctx, f.game.ID, "", "hi")
	assert.ErrorIs(t, err, ErrInvalidInput)

	msg, err := f.svc.PostMessage(ctx, f.game.ID, "Ada", "hello room")
	require.NoError(t, err)
	assert.False(t, msg.IsSystem)

	snap, err := f.svc.Snapshot(ctx, f.game.ID)
	require.NoError(t, err)
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, "hello room", snap.Messages[0].Text)
}

func TestSnapshotNotFound(t *testing.T) {
	f := newFixture(t, bingo.PatternLine)
	_, err := f.svc.Snapshot(context.Background(), "NOPE42")
	assert.ErrorIs(t, err, ErrNotFound)
}
