package models

import (
	"time"
)

// Report defines the report model based on the 'reports' table
type Report struct {
	ID         int64        `json:"id" db:"id"`
	PostID     int64        `json:"postId" db:"post_id"`
	ReporterID int64        `json:"reporterId" db:"reporter_id"`
	Reason     string       `json:"reason" db:"reason"`
	Status     ReportStatus `json:"status" db:"status"`
	Date       time.Time    `json:"date" db:"date"`

	// Joined fields for the admin list view
	PostTopic        *string `json:"postTopic,omitempty"`
	ReporterUsername *string `json:"reporterUsername,omitempty"`
}

// ViolationType defines a fixed, server-enumerated reason a post may be
// reported for, based on the 'violation_types' table.
type ViolationType struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
