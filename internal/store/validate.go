package store

import (
	"github.com/go-playground/validator/v10"

	"github.com/ndtprep/examtrainer/internal/entities"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateQuestion checks the structural tags on a question plus the one
// invariant tags cannot express: CorrectAnswer must equal the id of exactly
// one option. Both backends call this before any write.
func ValidateQuestion(q *entities.Question) error {
	if err := validate.Struct(q); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &ValidationError{
				Entity: "question",
				Field:  errs[0].Field(),
				Reason: "failed " + errs[0].Tag() + " check",
			}
		}
		return &ValidationError{Entity: "question", Field: "struct", Reason: err.Error()}
	}

	matches := 0
	for _, opt := range q.Options {
		if opt.ID == q.CorrectAnswer {
			matches++
		}
	}
	if matches != 1 {
		return &ValidationError{
			Entity: "question",
			Field:  "correct_answer",
			Reason: "must match exactly one option id",
		}
	}
	return nil
}

// ValidateCategory checks the required fields of a category before upsert.
func ValidateCategory(c *entities.Category) error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &ValidationError{
				Entity: "category",
				Field:  errs[0].Field(),
				Reason: "failed " + errs[0].Tag() + " check",
			}
		}
		return &ValidationError{Entity: "category", Field: "struct", Reason: err.Error()}
	}
	return nil
}
