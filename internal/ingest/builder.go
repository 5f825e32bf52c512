package ingest

import (
	"errors"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/quizraft/quizraft-backend/internal/model"
)

// ErrNoQuestions means ingestion completed but no usable question survived.
var ErrNoQuestions = errors.New("no usable questions in upload")

// File is one uploaded quiz definition file.
type File struct {
	Name string
	Data []byte
}

// Builder merges uploaded files into a question set according to the quiz
// settings.
type Builder struct {
	parser  *Parser
	decoder *Decoder
	log     zerolog.Logger
}

// NewBuilder creates a Builder with its parsing pipeline.
func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{
		parser:  NewParser(log),
		decoder: NewDecoder(log),
		log:     log.With().Str("component", "builder").Logger(),
	}
}

// Build parses and decodes every file, drops rows without a usable answer
// list, concatenates the survivors in file order, replicates the whole
// sequence by the configured multiplier and finally applies one global
// shuffle if requested.
//
// The first file that fails to parse aborts the whole build; per-row damage
// is only logged. A build surviving with zero questions is ErrNoQuestions.
func (b *Builder) Build(files []File, cfg model.QuizConfig) (model.QuestionSet, error) {
	var combined model.QuestionSet

	for _, f := range files {
		records, err := b.parser.Parse(f.Name, f.Data)
		if err != nil {
			return nil, err
		}

		dropped := 0
		for _, rec := range records {
			answers := b.decoder.Decode(rec.RawAnswer)
			if len(answers) == 0 || !hasCorrectOption(answers) {
				dropped++
				continue
			}
			combined = append(combined, model.Question{Text: rec.Question, Answers: answers})
		}
		if dropped > 0 {
			b.log.Warn().
				Str("file", f.Name).
				Int("dropped", dropped).
				Msg("Filtered out rows with unusable answers")
		}
	}

	if len(combined) == 0 {
		return nil, ErrNoQuestions
	}

	if cfg.QuestionCountMultiplier > 1 {
		base := combined
		combined = make(model.QuestionSet, 0, len(base)*cfg.QuestionCountMultiplier)
		for i := 0; i < cfg.QuestionCountMultiplier; i++ {
			combined = append(combined, base...)
		}
	}

	if cfg.RandomiseOrder {
		rand.Shuffle(len(combined), func(i, j int) {
			combined[i], combined[j] = combined[j], combined[i]
		})
	}

	return combined, nil
}

// hasCorrectOption reports whether at least one option is marked correct. A
// question with no correct option could never be answered, so it is not
// admitted into a set.
func hasCorrectOption(answers []model.AnswerOption) bool {
	for _, a := range answers {
		if a.IsCorrect {
			return true
		}
	}
	return false
}
