package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFollowUp(t *testing.T) {
	svc := NewEmailService(EmailConfig{SMTPHost: "smtp.example.fr", SMTPPort: 587, FromName: "Kangourou Kids", FromEmail: "agence@example.fr"})

	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	svc.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		assert.Nil(t, a)
		assert.Equal(t, "agence@example.fr", from)
		return nil
	}

	err := svc.SendFollowUp(FollowUp{
		To:          "client@example.fr",
		ClientName:  "Alice <Martin>",
		QuoteNumber: "DV-000042",
		AgencyName:  "Paris 15",
		ReceivedOn:  "01/01/2024",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.fr:587", gotAddr)
	assert.Equal(t, []string{"client@example.fr"}, gotTo)
	body := string(gotMsg)
	assert.True(t, strings.HasPrefix(body, "From: Kangourou Kids <agence@example.fr>\r\n"))
	assert.Contains(t, body, "Subject: Votre devis DV-000042\r\n")
	assert.Contains(t, body, "Alice &lt;Martin&gt;")
	assert.Contains(t, body, "Paris 15")
}

func TestSendFollowUp_Errors(t *testing.T) {
	svc := NewEmailService(EmailConfig{SMTPHost: "smtp.example.fr", SMTPPort: 25})
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	assert.Error(t, svc.SendFollowUp(FollowUp{QuoteNumber: "DV-1"}))
	err := svc.SendFollowUp(FollowUp{To: "a@x.fr", QuoteNumber: "DV-1"})
	assert.ErrorContains(t, err, "connection refused")

	assert.NoError(t, NullSender{}.SendFollowUp(FollowUp{}))
}
