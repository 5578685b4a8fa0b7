package bingo

import "math/rand"

// MaxNumber is the size of the calling pool, numbers 1..75.
const MaxNumber = 75

const columnRange = 15

// GenerateCard produces the 25 numbers of a fresh card, column-major
// (index = column*5 + row). Column c draws 5 distinct numbers uniformly
// from [c*15+1, c*15+15], so B holds 1-15, I 16-30, N 31-45, G 46-60
// and O 61-75. Generation never fails.
func GenerateCard() []int {
	card := make([]int, 0, CardSize)
	for c := 0; c < 5; c++ {
		low := c*columnRange + 1
		perm := rand.Perm(columnRange)
		for _, p := range perm[:5] {
			card = append(card, low+p)
		}
	}
	return card
}

// DrawNumber picks the next number to call: the override when it is a valid
// uncalled number in 1..75, otherwise a uniform pick from the pool minus the
// history. ok is false when every number has been called or the override was
// already called (a duplicate call is a no-op, never a double append).
func DrawNumber(called []int, override int) (num int, ok bool) {
	calledSet := make(map[int]bool, len(called))
	for _, n := range called {
		calledSet[n] = true
	}

	if override != 0 {
		if override < 1 || override > MaxNumber || calledSet[override] {
			return 0, false
		}
		return override, true
	}

	available := make([]int, 0, MaxNumber-len(called))
	for n := 1; n <= MaxNumber; n++ {
		if !calledSet[n] {
			available = append(available, n)
		}
	}
	if len(available) == 0 {
		return 0, false
	}
	return available[rand.Intn(len(available))], true
}
