package entities

import (
	"time"

	"gorm.io/datatypes"
)

type SessionType string

const (
	SessionTypePractice  SessionType = "practice"
	SessionTypeMock      SessionType = "mock"
	SessionTypeCategory  SessionType = "category"
	SessionTypeWeakAreas SessionType = "weak_areas"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// User is the single active account on a device. There is no session
// switching between accounts.
type User struct {
	ID                   string     `gorm:"primaryKey;size:64" json:"id"`
	Name                 string     `gorm:"size:200" json:"name" validate:"required"`
	Email                string     `gorm:"uniqueIndex;size:255" json:"email" validate:"required,email"`
	ProfileImage         *string    `gorm:"size:2048" json:"profile_image,omitempty"`
	TargetExamDate       *time.Time `json:"target_exam_date,omitempty"`
	DailyStudyGoal       int        `gorm:"default:30" json:"daily_study_goal"` // minutes
	PreferredCategories  StringList `gorm:"type:text" json:"preferred_categories"`
	NotificationsEnabled bool       `gorm:"default:true" json:"notifications_enabled"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// UserProgress tracks per-category performance, upserted after every
// answered question or completed session.
type UserProgress struct {
	UserID            string     `gorm:"primaryKey;size:64" json:"user_id"`
	CategoryID        string     `gorm:"primaryKey;size:64" json:"category_id"`
	TotalQuestions    int        `gorm:"default:0" json:"total_questions"`
	QuestionsAnswered int        `gorm:"default:0" json:"questions_answered"`
	CorrectAnswers    int        `gorm:"default:0" json:"correct_answers"`
	AverageScore      float64    `gorm:"default:0" json:"average_score"`
	LastStudyDate     *time.Time `json:"last_study_date,omitempty"`
	StudyStreak       int        `gorm:"default:0" json:"study_streak"`
	TotalStudyTime    int        `gorm:"default:0" json:"total_study_time"` // minutes
	WeakAreas         StringList `gorm:"type:text" json:"weak_areas"`
	StrongAreas       StringList `gorm:"type:text" json:"strong_areas"`
}

// TestSession is one timed or untimed run through a set of questions.
// Created with Completed=false and mutated as answers come in; Completed
// is terminal. Session-level aggregates (Score, CorrectAnswers) are owned
// by the caller, not recomputed by the storage layer.
type TestSession struct {
	ID             string         `gorm:"primaryKey;size:64" json:"id"`
	UserID         string         `gorm:"index;size:64" json:"user_id" validate:"required"`
	Type           SessionType    `gorm:"size:20" json:"type" validate:"required,oneof=practice mock category weak_areas"`
	CategoryID     *string        `gorm:"size:64" json:"category_id,omitempty"`
	StartTime      time.Time      `json:"start_time"`
	EndTime        *time.Time     `json:"end_time,omitempty"`
	Duration       *int           `json:"duration,omitempty"` // minutes
	TotalQuestions int            `json:"total_questions"`
	CorrectAnswers int            `gorm:"default:0" json:"correct_answers"`
	Score          float64        `gorm:"default:0" json:"score"`
	Questions      []TestQuestion `gorm:"foreignKey:SessionID" json:"questions"`
	Completed      bool           `gorm:"default:false" json:"completed"`
	TimedOut       bool           `gorm:"default:false" json:"timed_out"`
	CreatedAt      time.Time      `json:"created_at"`
}

// TestQuestion is one question within a session, upserted on each answer
// submission. Unanswered questions have nil UserAnswer and IsCorrect.
type TestQuestion struct {
	SessionID    string      `gorm:"primaryKey;index;size:64" json:"session_id"`
	QuestionID   string      `gorm:"primaryKey;size:64" json:"question_id"`
	UserAnswer   *string     `gorm:"size:64" json:"user_answer,omitempty"`
	IsCorrect    *bool       `json:"is_correct,omitempty"`
	TimeSpent    int         `gorm:"default:0" json:"time_spent"` // seconds
	IsBookmarked bool        `gorm:"default:false" json:"is_bookmarked"`
	Confidence   *Confidence `gorm:"size:10" json:"confidence,omitempty"`
}

// Bookmark presence means the question is bookmarked for the user;
// deletion means un-bookmarked.
type Bookmark struct {
	UserID     string    `gorm:"primaryKey;size:64" json:"user_id"`
	QuestionID string    `gorm:"primaryKey;size:64" json:"question_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// DailyAnalytics is a per-user, per-calendar-day rollup. Recording twice
// on the same day replaces the row rather than accumulating.
type DailyAnalytics struct {
	UserID             string         `gorm:"primaryKey;size:64" json:"user_id"`
	Day                datatypes.Date `gorm:"primaryKey" json:"day"`
	StudyTime          int            `gorm:"default:0" json:"study_time"` // minutes
	QuestionsAttempted int            `gorm:"default:0" json:"questions_attempted"`
	QuestionsCorrect   int            `gorm:"default:0" json:"questions_correct"`
	CategoriesStudied  StringList     `gorm:"type:text" json:"categories_studied"`
}

// DailyStats is the caller-supplied payload for one analytics recording.
type DailyStats struct {
	StudyTime          int        `json:"study_time"`
	QuestionsAttempted int        `json:"questions_attempted"`
	QuestionsCorrect   int        `json:"questions_correct"`
	CategoriesStudied  StringList `json:"categories_studied"`
}

// WeeklyStats aggregates the trailing seven days of daily analytics.
type WeeklyStats struct {
	TotalStudyTime     int     `json:"total_study_time"`
	QuestionsAttempted int     `json:"questions_attempted"`
	QuestionsCorrect   int     `json:"questions_correct"`
	AverageScore       float64 `json:"average_score"`
	DaysStudied        int     `json:"days_studied"`
}

func (User) TableName() string {
	return "users"
}

func (UserProgress) TableName() string {
	return "user_progress"
}

func (TestSession) TableName() string {
	return "test_sessions"
}

func (TestQuestion) TableName() string {
	return "test_questions"
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func (DailyAnalytics) TableName() string {
	return "analytics"
}
