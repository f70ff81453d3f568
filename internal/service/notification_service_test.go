package service

import (
	"testing"

	"resume-builder-be/internal/entity"
	"resume-builder-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNotification(t *testing.T) {
	userId := uuid.New()

	tests := []struct {
		name      string
		eventType string
		payload   map[string]interface{}
		wantType  entity.NotificationType
		wantOk    bool
	}{
		{
			name:      "user registered",
			eventType: events.TypeUserRegistered,
			payload:   map[string]interface{}{"email": "a@b.c"},
			wantType:  entity.NotificationWelcome,
			wantOk:    true,
		},
		{
			name:      "plan changed",
			eventType: events.TypePlanChanged,
			payload:   map[string]interface{}{"from": "FREE", "to": "PRO"},
			wantType:  entity.NotificationPlanChanged,
			wantOk:    true,
		},
		{
			name:      "payment failed",
			eventType: events.TypePaymentFailed,
			payload:   map[string]interface{}{},
			wantType:  entity.NotificationPaymentFailed,
			wantOk:    true,
		},
		{
			name:      "credits low",
			eventType: events.TypeCreditsLow,
			payload:   map[string]interface{}{"remaining": float64(2)},
			wantType:  entity.NotificationCreditsLow,
			wantOk:    true,
		},
		{
			name:      "job status moved",
			eventType: events.TypeJobStatusMoved,
			payload:   map[string]interface{}{"company": "Acme", "to": "interview"},
			wantType:  entity.NotificationJobStatusMoved,
			wantOk:    true,
		},
		{
			name:      "download events stay silent",
			eventType: events.TypeResumeDownloaded,
			payload:   map[string]interface{}{},
			wantOk:    false,
		},
		{
			name:      "unknown event type",
			eventType: "SOMETHING_ELSE",
			payload:   map[string]interface{}{},
			wantOk:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := buildNotification(tt.eventType, userId, tt.payload)

			assert.Equal(t, tt.wantOk, ok)
			if !tt.wantOk {
				assert.Nil(t, n)
				return
			}
			require.NotNil(t, n)
			assert.Equal(t, tt.wantType, n.TypeCode)
			assert.Equal(t, userId, n.UserId)
			assert.NotEmpty(t, n.Title)
			assert.NotEmpty(t, n.Message)
			assert.False(t, n.CreatedAt.IsZero())
		})
	}

	t.Run("plan name lands in the message", func(t *testing.T) {
		n, ok := buildNotification(events.TypePlanChanged, userId, map[string]interface{}{"to": "PRO"})
		require.True(t, ok)
		assert.Contains(t, n.Message, "PRO")
	})
}

func TestPayloadUserId(t *testing.T) {
	want := uuid.New()

	t.Run("string form", func(t *testing.T) {
		got, ok := payloadUserId(map[string]interface{}{"user_id": want.String()})
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("uuid form", func(t *testing.T) {
		got, ok := payloadUserId(map[string]interface{}{"user_id": want})
		assert.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("garbage string", func(t *testing.T) {
		_, ok := payloadUserId(map[string]interface{}{"user_id": "not-a-uuid"})
		assert.False(t, ok)
	})

	t.Run("missing key", func(t *testing.T) {
		_, ok := payloadUserId(map[string]interface{}{})
		assert.False(t, ok)
	})
}
