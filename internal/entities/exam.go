package entities

import (
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Category is a top-level subject grouping for questions. Categories are
// created by the seeder or an import and are never deleted in normal
// operation; only the question count is adjusted afterwards.
type Category struct {
	ID                     string        `gorm:"primaryKey;size:64" json:"id" validate:"required"`
	Name                   string        `gorm:"index;size:200" json:"name" validate:"required"`
	Description            string        `gorm:"type:text" json:"description"`
	Icon                   string        `gorm:"size:100" json:"icon"`
	Color                  string        `gorm:"size:10" json:"color"`
	TotalQuestions         int           `gorm:"default:0" json:"total_questions"`
	RequiredPassPercentage float64       `gorm:"default:70" json:"required_pass_percentage"`
	Subcategories          []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
}

type Subcategory struct {
	ID          string `gorm:"primaryKey;size:64" json:"id" validate:"required"`
	CategoryID  string `gorm:"index;size:64" json:"category_id" validate:"required"`
	Name        string `gorm:"size:200" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
}

// Question is one exam question with its ordered answer options. The answer
// statistics fields (TimesAnswered, TimesCorrect, AverageTime, LastSeen) are
// the only fields mutated after creation, as a side effect of answering.
type Question struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id" validate:"required"`
	CategoryID    string     `gorm:"index;size:64" json:"category_id" validate:"required"`
	SubcategoryID *string    `gorm:"size:64" json:"subcategory_id,omitempty"`
	Question      string     `gorm:"type:text" json:"question" validate:"required"`
	Options       []Option   `gorm:"foreignKey:QuestionID" json:"options" validate:"min=2,dive"`
	CorrectAnswer string     `gorm:"size:64" json:"correct_answer" validate:"required"`
	Explanation   string     `gorm:"type:text" json:"explanation"`
	Difficulty    Difficulty `gorm:"size:10" json:"difficulty" validate:"required,oneof=easy medium hard"`
	ImageURL      *string    `gorm:"size:2048" json:"image_url,omitempty"`
	FormulaLatex  *string    `gorm:"type:text" json:"formula_latex,omitempty"`
	References    StringList `gorm:"type:text" json:"references"`
	Tags          StringList `gorm:"type:text" json:"tags"`

	// Per-user view state, resolved against the bookmarks table on read.
	IsBookmarked bool `gorm:"-" json:"is_bookmarked"`

	TimesAnswered int        `gorm:"default:0" json:"times_answered"`
	TimesCorrect  int        `gorm:"default:0" json:"times_correct"`
	AverageTime   float64    `gorm:"default:0" json:"average_time"`
	LastSeen      *time.Time `json:"last_seen,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Option belongs to exactly one question. Display order is persisted in
// OptionOrder; option ids ("a", "b", ...) are only unique per question,
// hence the composite primary key.
type Option struct {
	ID          string  `gorm:"primaryKey;size:64" json:"id" validate:"required"`
	QuestionID  string  `gorm:"primaryKey;index;size:64" json:"question_id"`
	Text        string  `gorm:"type:text" json:"text" validate:"required"`
	ImageURL    *string `gorm:"size:2048" json:"image_url,omitempty"`
	OptionOrder int     `gorm:"not null" json:"option_order"`
}

func (Category) TableName() string {
	return "categories"
}

func (Subcategory) TableName() string {
	return "subcategories"
}

func (Question) TableName() string {
	return "questions"
}

func (Option) TableName() string {
	return "options"
}
