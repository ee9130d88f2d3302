package ai

import (
	"strings"

	"github.com/ryanuber/go-glob"
	"github.com/staffalloc/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ScoredDocument is a retrieval candidate with its overlap score.
type ScoredDocument struct {
	Document models.RagDocument
	Score    int
}

// Score counts how many query tokens occur in the document tokens.
// Query tokens containing a wildcard match per glob semantics. Title
// matches weigh double since entity names are the most common anchor
// of a staffing question.
func Score(queryTokens []string, doc models.RagDocument) int {
	titleTokens := Tokenize(doc.Title)
	contentTokens := Tokenize(doc.Content)

	score := 0
	for _, token := range queryTokens {
		if matchesAny(token, titleTokens) {
			score += 2
			continue
		}

		if matchesAny(token, contentTokens) {
			score++
		}
	}

	return score
}

func matchesAny(token string, candidates []string) bool {
	if strings.ContainsAny(token, "*?") {
		return slices.ContainsFunc(candidates, func(candidate string) bool {
			return glob.Glob(token, candidate)
		})
	}

	return slices.Contains(candidates, token)
}

// Retrieve returns the k highest scoring documents for a question.
// Documents without any overlap are not returned. The entity filter
// limits retrieval to one source entity, an empty filter searches all.
func Retrieve(db *gorm.DB, question, entityFilter string, k int) ([]ScoredDocument, error) {
	q := db.Model(&models.RagDocument{})
	if entityFilter != "" {
		q = q.Where("source_entity = ?", entityFilter)
	}

	var documents []models.RagDocument
	err := q.Find(&documents).Error
	if err != nil {
		return nil, err
	}

	queryTokens := Tokenize(question)

	scored := make([]ScoredDocument, 0, len(documents))
	for _, doc := range documents {
		score := Score(queryTokens, doc)
		if score == 0 {
			continue
		}

		scored = append(scored, ScoredDocument{Document: doc, Score: score})
	}

	slices.SortStableFunc(scored, func(a, b ScoredDocument) int {
		return b.Score - a.Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}

	return scored, nil
}
