package models

// RoleType defines the role of a user
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// MediaType defines the kind of media attached to a post
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// ReportStatus defines the moderation state of a report
type ReportStatus string

const (
	ReportStatusPending    ReportStatus = "pending"
	ReportStatusInProgress ReportStatus = "in_progress"
	ReportStatusResolved   ReportStatus = "resolved"
	ReportStatusRejected   ReportStatus = "rejected"
)

// ValidReportStatus reports whether s is one of the accepted report states.
func ValidReportStatus(s string) bool {
	switch ReportStatus(s) {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}

// NotificationType defines what action produced a notification
type NotificationType string

const (
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeFollow  NotificationType = "follow"
	NotificationTypeReport  NotificationType = "report"
)

// NotificationStatus defines the read state of a notification.
// The only transition is unread to read.
type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)
