package exam

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padips/padips-cli/internal/models"
)

func numberedQuestions(n int) []models.Question {
	qs := make([]models.Question, n)
	for i := range qs {
		qs[i] = models.Question{
			ID:            fmt.Sprintf("q%d", i),
			Prompt:        models.LocalizedText{English: fmt.Sprintf("question %d", i)},
			Options:       []models.LocalizedText{{English: "a"}, {English: "b"}, {English: "c"}, {English: "d"}},
			CorrectAnswer: i % 4,
		}
	}
	return qs
}

func TestShuffleQuestions_IsPermutation(t *testing.T) {
	original := numberedQuestions(25)

	for i := 0; i < 20; i++ {
		shuffled := ShuffleQuestions(original)
		require.Len(t, shuffled, len(original))

		seen := make(map[string]int)
		for _, q := range shuffled {
			seen[q.ID]++
		}
		for _, q := range original {
			assert.Equal(t, 1, seen[q.ID], "question %s must appear exactly once", q.ID)
		}
	}
}

func TestShuffleQuestions_InputUntouched(t *testing.T) {
	original := numberedQuestions(10)
	ids := make([]string, len(original))
	for i, q := range original {
		ids[i] = q.ID
	}

	_ = ShuffleQuestions(original)

	for i, q := range original {
		assert.Equal(t, ids[i], q.ID)
	}
}

func TestShuffleQuestions_Empty(t *testing.T) {
	assert.Empty(t, ShuffleQuestions(nil))
}
