package backend

import "errors"

// Sentinel errors shared by every Backend implementation.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMissionCompleted  = errors.New("mission already completed")
	ErrMissionActive     = errors.New("player already has an active mission")
	ErrMissionNotActive  = errors.New("mission not currently active")
	ErrInvalidName       = errors.New("invalid player name")
)

// Error codes carried over the wire next to the human-readable detail.
const (
	CodeNotFound          = "not_found"
	CodeInsufficientFunds = "insufficient_funds"
	CodeMissionCompleted  = "mission_completed"
	CodeMissionActive     = "mission_active"
	CodeMissionNotActive  = "mission_not_active"
	CodeInvalidName       = "invalid_name"
	CodeInternal          = "internal"
)

var codeErrors = map[string]error{
	CodeNotFound:          ErrNotFound,
	CodeInsufficientFunds: ErrInsufficientFunds,
	CodeMissionCompleted:  ErrMissionCompleted,
	CodeMissionActive:     ErrMissionActive,
	CodeMissionNotActive:  ErrMissionNotActive,
	CodeInvalidName:       ErrInvalidName,
}

// ErrorCode returns the wire code for err, or CodeInternal when err matches
// no sentinel.
func ErrorCode(err error) string {
	for code, sentinel := range codeErrors {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return CodeInternal
}

// ErrorForCode maps a wire code back to its sentinel. Unknown codes yield nil.
func ErrorForCode(code string) error {
	return codeErrors[code]
}

// IsRuleViolation reports whether err is a gameplay rule rejection rather than
// a missing record or an infrastructure failure.
func IsRuleViolation(err error) bool {
	switch ErrorCode(err) {
	case CodeInsufficientFunds, CodeMissionCompleted, CodeMissionActive, CodeMissionNotActive, CodeInvalidName:
		return true
	default:
		return false
	}
}
