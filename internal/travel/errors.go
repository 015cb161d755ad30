package travel

import "errors"

// RejectCode identifies which validation check refused a transition.
type RejectCode string

const (
	RejectInArea       RejectCode = "in_area"
	RejectHandicap     RejectCode = "handicap"
	RejectSneakLobby   RejectCode = "sneak_lobby"
	RejectSneakPrivate RejectCode = "sneak_private"
	RejectLocked       RejectCode = "locked"
	RejectModLocked    RejectCode = "mod_locked"
	RejectUnreachable  RejectCode = "unreachable"
	RejectNoCharacters RejectCode = "no_characters"
)

// RejectError is a validation refusal. Its message is shown to the
// player verbatim; the code is stable for programmatic handling.
type RejectError struct {
	Code    RejectCode
	Message string
}

func (e *RejectError) Error() string { return e.Message }

func reject(code RejectCode, msg string) *RejectError {
	return &RejectError{Code: code, Message: msg}
}

// AsReject unwraps err into a RejectError, if it is one.
func AsReject(err error) (*RejectError, bool) {
	var re *RejectError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
