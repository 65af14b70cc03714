package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "OTP must be numeric, got %q", code)
		}
		seen[code] = true
	}
	// 20 draws from a million values colliding every time is not plausible
	assert.Greater(t, len(seen), 1)
}

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken()
	require.NoError(t, err)
	assert.Len(t, token, 32)

	token2, err := GenerateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
}

func TestSendPasswordResetOTPDevMode(t *testing.T) {
	// Without SMTP credentials the code is logged instead of emailed
	svc := NewEmailService(SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		FromName:  "SUT Community",
		FromEmail: "noreply@sutcommunity.app",
	}, zerolog.Nop())

	err := svc.SendPasswordResetOTP("somchai@sut.ac.th", "somchai", "123456")
	assert.NoError(t, err)
}
