package game

import (
	"fmt"
	"math/rand"
)

// cardCounts returns the per-type distribution for a board size. RED always
// gets one more card than BLUE because RED moves first.
func cardCounts(size int) (red, blue, assassin, neutral int) {
	switch size {
	case 25:
		red, blue, assassin = 9, 8, 1
	case 36:
		red, blue, assassin = 12, 11, 2
	case 49:
		red, blue, assassin = 17, 16, 2
	case 64:
		red, blue, assassin = 20, 19, 3
	default:
		red = size/3 + 1
		blue = red - 1
		assassin = size / 25
		if assassin < 1 {
			assassin = 1
		}
	}
	neutral = size - red - blue - assassin
	return red, blue, assassin, neutral
}

// NewBoard samples size distinct words from the pool and assigns card types
// by uniform shuffle.
func NewBoard(pool []string, size int) ([]Card, error) {
	if len(pool) < size {
		return nil, fmt.Errorf("%w: need %d words, pool has %d", ErrInsufficientWordPool, size, len(pool))
	}

	words := make([]string, len(pool))
	copy(words, pool)
	rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	words = words[:size]

	red, blue, assassin, neutral := cardCounts(size)
	types := make([]CardType, 0, size)
	for i := 0; i < red; i++ {
		types = append(types, CardRed)
	}
	for i := 0; i < blue; i++ {
		types = append(types, CardBlue)
	}
	for i := 0; i < neutral; i++ {
		types = append(types, CardNeutral)
	}
	for i := 0; i < assassin; i++ {
		types = append(types, CardAssassin)
	}
	rand.Shuffle(len(types), func(i, j int) {
		types[i], types[j] = types[j], types[i]
	})

	cards := make([]Card, size)
	for i := range cards {
		cards[i] = Card{Word: words[i], Type: types[i]}
	}
	return cards, nil
}
