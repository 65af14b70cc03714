package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sutcommunity/backend/internal/app/models"
)

func TestNotificationMessage(t *testing.T) {
	cases := []struct {
		name             string
		notificationType models.NotificationType
		sender           string
		reason           string
		want             string
	}{
		{"like", models.NotificationTypeLike, "somchai", "", "somchai liked your post"},
		{"comment", models.NotificationTypeComment, "somchai", "", "somchai commented on your post"},
		{"follow", models.NotificationTypeFollow, "somchai", "", "somchai started following you"},
		{"report", models.NotificationTypeReport, "somchai", "Spam", "Your post has been reported for: Spam"},
		{"unknown", models.NotificationType("bogus"), "somchai", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NotificationMessage(tc.notificationType, tc.sender, tc.reason)
			assert.Equal(t, tc.want, got)
		})
	}
}
