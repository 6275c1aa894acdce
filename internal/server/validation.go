package server

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxClueLength = 40
	maxWordLength = 40
	maxClueNumber = 25
)

// Shape constraints live here; board-collision rules belong to the engine.
func validateClueWord(word string) (string, error) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return "", errors.New("clue word is required")
	}
	if len(trimmed) > maxClueLength {
		return "", fmt.Errorf("clue must be %d characters or fewer", maxClueLength)
	}
	if strings.ContainsAny(trimmed, " \t-") {
		return "", errors.New("clue must be a single word")
	}
	return trimmed, nil
}

func validateClueNumber(number int) error {
	if number < 0 || number > maxClueNumber {
		return fmt.Errorf("clue number must be between 0 and %d", maxClueNumber)
	}
	return nil
}

func validateGuessWord(word string) (string, error) {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return "", errors.New("guess word is required")
	}
	if len(trimmed) > maxWordLength {
		return "", fmt.Errorf("guess must be %d characters or fewer", maxWordLength)
	}
	// Board words are stored uppercase.
	return strings.ToUpper(trimmed), nil
}

func validBoardSize(size int) bool {
	switch size {
	case 25, 36, 49, 64:
		return true
	}
	return false
}
