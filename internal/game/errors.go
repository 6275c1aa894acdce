package game

import "errors"

// Engine rejections. Every failed action leaves the game untouched; callers
// match with errors.Is.
var (
	ErrWrongPhase           = errors.New("action not legal in current phase")
	ErrWrongTurn            = errors.New("not your turn")
	ErrIllegalClue          = errors.New("illegal clue")
	ErrCardNotFound         = errors.New("card not found")
	ErrAlreadyRevealed      = errors.New("card already revealed")
	ErrInsufficientWordPool = errors.New("word pool smaller than board size")
)
