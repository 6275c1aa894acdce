package game

import (
	"errors"
	"fmt"
	"testing"
)

func TestCardCounts(t *testing.T) {
	cases := []struct {
		size                         int
		red, blue, assassin, neutral int
	}{
		{25, 9, 8, 1, 7},
		{36, 12, 11, 2, 11},
		{49, 17, 16, 2, 14},
		{64, 20, 19, 3, 22},
		{30, 11, 10, 1, 8},
		{9, 4, 3, 1, 1},
	}
	for _, tc := range cases {
		red, blue, assassin, neutral := cardCounts(tc.size)
		if red != tc.red || blue != tc.blue || assassin != tc.assassin || neutral != tc.neutral {
			t.Errorf("size %d: got %d/%d/%d/%d, want %d/%d/%d/%d",
				tc.size, red, blue, assassin, neutral,
				tc.red, tc.blue, tc.assassin, tc.neutral)
		}
		if red+blue+assassin+neutral != tc.size {
			t.Errorf("size %d: counts do not cover the board", tc.size)
		}
	}
}

func TestNewBoardDistribution(t *testing.T) {
	pool := testPool(80)
	for _, size := range []int{25, 36, 49, 64} {
		cards, err := NewBoard(pool, size)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if len(cards) != size {
			t.Fatalf("size %d: got %d cards", size, len(cards))
		}
		wantRed, wantBlue, wantAssassin, wantNeutral := cardCounts(size)
		counts := map[CardType]int{}
		seen := map[string]bool{}
		for _, c := range cards {
			counts[c.Type]++
			if c.Revealed {
				t.Fatalf("size %d: card %q starts revealed", size, c.Word)
			}
			if seen[c.Word] {
				t.Fatalf("size %d: duplicate word %q", size, c.Word)
			}
			seen[c.Word] = true
		}
		if counts[CardRed] != wantRed || counts[CardBlue] != wantBlue ||
			counts[CardAssassin] != wantAssassin || counts[CardNeutral] != wantNeutral {
			t.Fatalf("size %d: distribution %v", size, counts)
		}
	}
}

func TestNewBoardInsufficientPool(t *testing.T) {
	_, err := NewBoard(testPool(10), 25)
	if !errors.Is(err, ErrInsufficientWordPool) {
		t.Fatalf("expected ErrInsufficientWordPool, got %v", err)
	}
}

func testPool(n int) []string {
	pool := make([]string, n)
	for i := range pool {
		pool[i] = fmt.Sprintf("WORD%03d", i)
	}
	return pool
}
