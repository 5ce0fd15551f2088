package board

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullBoard builds a valid board with predictable titles and clue text.
func fullBoard() []Category {
	cats := make([]Category, NumCategories)
	for x := range cats {
		cats[x].Title = fmt.Sprintf("Category %d", x)
		for y := 0; y < NumClues; y++ {
			cats[x].Clues = append(cats[x].Clues, NewClue(fmt.Sprintf("Q%d-%d", x, y), fmt.Sprintf("A%d-%d", x, y)))
		}
	}
	return cats
}

func TestClueAdvance(t *testing.T) {
	// Given
	clue := NewClue("What is 2+2?", "4")
	require.Equal(t, Placeholder, clue.Display())

	// When / Then
	content, changed := clue.Advance()
	assert.True(t, changed)
	assert.Equal(t, "What is 2+2?", content)
	assert.Equal(t, Question, clue.State)

	content, changed = clue.Advance()
	assert.True(t, changed)
	assert.Equal(t, "4", content)
	assert.Equal(t, Answer, clue.State)

	// answer is terminal
	_, changed = clue.Advance()
	assert.False(t, changed)
	assert.Equal(t, Answer, clue.State)
	assert.Equal(t, "4", clue.Display())
}

func TestRevealStateString(t *testing.T) {
	assert.Equal(t, "hidden", RevealState("").String())
	assert.Equal(t, "hidden", Hidden.String())
	assert.Equal(t, "question", Question.String())
	assert.Equal(t, "answer", Answer.String())
}

func TestCoordRoundTrip(t *testing.T) {
	for _, c := range AllCoords() {
		parsed, err := ParseCoord(c.ID())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	assert.Len(t, AllCoords(), NumCategories*NumClues)
}

func TestParseCoordErrors(t *testing.T) {
	tests := []struct {
		id   string
		want error
	}{
		{"", ErrUnknownCell},
		{"2", ErrUnknownCell},
		{"a-b", ErrUnknownCell},
		{"1-2-3", ErrUnknownCell},
		{"6-0", ErrOutOfRange},
		{"0-5", ErrOutOfRange},
		{"-1-0", ErrUnknownCell},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, err := ParseCoord(tt.id)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(fullBoard()))

	short := fullBoard()[:5]
	assert.ErrorIs(t, Validate(short), ErrInvalidBoard)

	missingClue := fullBoard()
	missingClue[3].Clues = missingClue[3].Clues[:4]
	assert.ErrorIs(t, Validate(missingClue), ErrInvalidBoard)

	revealed := fullBoard()
	revealed[0].Clues[0].State = Question
	assert.ErrorIs(t, Validate(revealed), ErrInvalidBoard)
}
