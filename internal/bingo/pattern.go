package bingo

// Pattern is a named win rule selected by the host when the room is created.
type Pattern string

const (
	PatternLine     Pattern = "line"
	PatternDiagonal Pattern = "diagonal"
	PatternCross    Pattern = "cross"
	PatternBox      Pattern = "box"
	PatternCorners  Pattern = "corners"
	PatternRows     Pattern = "rows"
	PatternColumns  Pattern = "columns"
	PatternFull     Pattern = "full"
)

// FreeIndex is the center cell of the 5x5 card, always treated as marked.
const FreeIndex = 12

// CardSize is the number of cells on a card.
const CardSize = 25

var diagonalDown = []int{0, 6, 12, 18, 24}
var diagonalUp = []int{4, 8, 12, 16, 20}

// border cells of the 5x5 grid, column-major
var boxIndices = []int{0, 1, 2, 3, 4, 5, 9, 10, 14, 15, 19, 20, 21, 22, 23, 24}

var cornerIndices = []int{0, 4, 20, 24}

// ValidPattern reports whether p is one of the known win patterns.
func ValidPattern(p Pattern) bool {
	switch p {
	case PatternLine, PatternDiagonal, PatternCross, PatternBox,
		PatternCorners, PatternRows, PatternColumns, PatternFull:
		return true
	}
	return false
}

func rowIndices(r int) []int {
	return []int{r, r + 5, r + 10, r + 15, r + 20}
}

func colIndices(c int) []int {
	return []int{c * 5, c*5 + 1, c*5 + 2, c*5 + 3, c*5 + 4}
}

// IsWinningClaim decides whether a claimed card is a legitimate win.
//
// A cell at flat index i is satisfied when i is the free center, or when the
// player marked i AND the number printed at i was actually called by the host.
// Marks alone are never trusted: a mark on a never-called number satisfies
// nothing, which closes the obvious cheating vector.
//
// The function is pure; identical inputs always give identical results.
// An unknown pattern or a card that is not exactly 25 numbers yields false.
func IsWinningClaim(marked []int, pattern Pattern, called []int, cardNumbers []int) bool {
	if len(cardNumbers) != CardSize {
		return false
	}

	markedSet := make(map[int]bool, len(marked))
	for _, i := range marked {
		markedSet[i] = true
	}
	calledSet := make(map[int]bool, len(called))
	for _, n := range called {
		calledSet[n] = true
	}

	satisfied := func(i int) bool {
		if i == FreeIndex {
			return true
		}
		return markedSet[i] && calledSet[cardNumbers[i]]
	}

	all := func(indices []int) bool {
		for _, i := range indices {
			if !satisfied(i) {
				return false
			}
		}
		return true
	}

	switch pattern {
	case PatternLine:
		// any single row, column or diagonal
		for r := 0; r < 5; r++ {
			if all(rowIndices(r)) {
				return true
			}
		}
		for c := 0; c < 5; c++ {
			if all(colIndices(c)) {
				return true
			}
		}
		return all(diagonalDown) || all(diagonalUp)
	case PatternDiagonal:
		return all(diagonalDown) || all(diagonalUp)
	case PatternCross:
		return all(diagonalDown) && all(diagonalUp)
	case PatternBox:
		return all(boxIndices)
	case PatternCorners:
		return all(cornerIndices)
	case PatternRows:
		for r := 0; r < 5; r++ {
			if !all(rowIndices(r)) {
				return false
			}
		}
		return true
	case PatternColumns:
		for c := 0; c < 5; c++ {
			if !all(colIndices(c)) {
				return false
			}
		}
		return true
	case PatternFull:
		for i := 0; i < CardSize; i++ {
			if !satisfied(i) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
