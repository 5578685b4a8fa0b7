package bingo

// Status is the lifecycle state of a game room.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// Actor is the role performing a state-changing action. The host is the
// identity recorded on the game; a developer is an elevated non-host role
// proven by a verified token, allowed to start/pause/resume and call.
type Actor int

const (
	ActorPlayer Actor = iota
	ActorHost
	ActorDeveloper
)

// CanStart reports whether actor may move the game from waiting to playing.
func CanStart(current Status, actor Actor) bool {
	return current == StatusWaiting && (actor == ActorHost || actor == ActorDeveloper)
}

// CanPause reports whether actor may move the game from playing to paused.
func CanPause(current Status, actor Actor) bool {
	return current == StatusPlaying && (actor == ActorHost || actor == ActorDeveloper)
}

// CanResume reports whether actor may move the game from paused back to playing.
func CanResume(current Status, actor Actor) bool {
	return current == StatusPaused && (actor == ActorHost || actor == ActorDeveloper)
}

// CanReset reports whether actor may reset the room to waiting. Reset is
// host-only and allowed from any state; it clears the called history, staged
// number, winner lists, chat and card marks but keeps the room id, the host
// and the player roster.
func CanReset(actor Actor) bool {
	return actor == ActorHost
}

// CanCall reports whether actor may commit a number while the game is in
// current state. Calling is not a status transition; it only appends to the
// called-number history and is valid only while playing.
func CanCall(current Status, actor Actor) bool {
	return current == StatusPlaying && (actor == ActorHost || actor == ActorDeveloper)
}
