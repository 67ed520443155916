package exam

import (
	"math/rand"

	"github.com/padips/padips-cli/internal/models"
)

// ShuffleQuestions returns a uniformly shuffled copy of qs. The input slice
// is left untouched.
func ShuffleQuestions(qs []models.Question) []models.Question {
	shuffled := make([]models.Question, len(qs))
	copy(shuffled, qs)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
