package entities

import (
	"github.com/google/uuid"
)

type Feedback struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ParticipationID uuid.UUID `gorm:"uniqueIndex" json:"participation_id"`
	AppID           uuid.UUID `gorm:"index" json:"app_id"`
	TesterID        uuid.UUID `gorm:"index" json:"tester_id"`
	OverallRating   int       `json:"overall_rating"` // 1-5
	Comment         string    `json:"comment,omitempty"`

	Participation *Participation    `gorm:"foreignKey:ParticipationID" json:"-"`
	App           *App              `gorm:"foreignKey:AppID" json:"-"`
	Tester        *User             `gorm:"foreignKey:TesterID" json:"tester,omitempty"`
	Ratings       []*FeedbackRating `gorm:"foreignKey:FeedbackID" json:"ratings,omitempty"`
	BugReport     *BugReport        `gorm:"foreignKey:FeedbackID" json:"bug_report,omitempty"`
	Timestamp
}

type FeedbackRating struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FeedbackID uuid.UUID `gorm:"index;uniqueIndex:idx_feedback_rating_item" json:"feedback_id"`
	ItemType   string    `gorm:"uniqueIndex:idx_feedback_rating_item" json:"item_type"` // UI_UX, PERFORMANCE, FUNCTIONALITY, STABILITY
	Score      int       `json:"score"` // 1-5

	Feedback *Feedback `gorm:"foreignKey:FeedbackID" json:"-"`
	Timestamp
}

type BugReport struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FeedbackID  uuid.UUID `gorm:"uniqueIndex" json:"feedback_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DeviceInfo  string    `json:"device_info,omitempty"`

	Feedback *Feedback         `gorm:"foreignKey:FeedbackID" json:"-"`
	Images   []*BugReportImage `gorm:"foreignKey:BugReportID" json:"images,omitempty"`
	Timestamp
}

type BugReportImage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BugReportID uuid.UUID `gorm:"index" json:"bug_report_id"`
	ImageURL    string    `json:"image_url"`
	SortOrder   int       `json:"sort_order"`

	BugReport *BugReport `gorm:"foreignKey:BugReportID" json:"-"`
	Timestamp
}
