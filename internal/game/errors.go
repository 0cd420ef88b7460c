package game

// Error is a guard violation or resource failure with a stable machine-readable
// code. Codes are small negative integers; callers map them to user-facing
// messages.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrGameNotFound     = &Error{Code: -1, Message: "game not found"}
	ErrWrongState       = &Error{Code: -2, Message: "action not allowed in current state"}
	ErrNotOwner         = &Error{Code: -3, Message: "only the game owner may do this"}
	ErrAlreadyJoined    = &Error{Code: -4, Message: "player name already taken"}
	ErrUnknownPlayer    = &Error{Code: -5, Message: "player is not part of this game"}
	ErrIsYourTurn       = &Error{Code: -6, Message: "the turn player may not submit"}
	ErrAlreadyActed     = &Error{Code: -7, Message: "action already submitted"}
	ErrUnknownCaption   = &Error{Code: -8, Message: "caption is not in play"}
	ErrOwnCaption       = &Error{Code: -9, Message: "cannot guess your own caption"}
	ErrNoWords          = &Error{Code: -10, Message: "no words available for language"}
	ErrWordsExhausted   = &Error{Code: -11, Message: "could not assign a distinct word"}
	ErrLockTimeout      = &Error{Code: -12, Message: "game is busy, retry"}
	ErrNotEnoughPlayers = &Error{Code: -13, Message: "at least two players required"}
	ErrUnauthorized     = &Error{Code: -100, Message: "unauthorized"}
)
