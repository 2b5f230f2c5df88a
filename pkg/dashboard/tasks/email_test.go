package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/stretchr/testify/assert"
	mail "github.com/xhit/go-simple-mail/v2"
)

func emailValues() map[string]string {
	return map[string]string{
		"from":        "john@gmail.com",
		"appPassword": "app-password",
		"to":          "jane@example.com",
		"subject":     "Report",
		"body":        "See attached",
	}
}

func getEmailTask(t *testing.T, props map[string]interface{}) *Email {
	b := testBase()
	b.Properties = props
	m, err := newEmail(b)
	assert.NoError(t, err)
	return m.(*Email)
}

func TestEmailProperties(t *testing.T) {
	e := getEmailTask(t, nil)
	assert.Equal(t, "smtp.gmail.com", e.smtp.Host)
	assert.Equal(t, 465, e.smtp.Port)

	assert.Equal(t, mail.EncryptionSSLTLS, e.encryption)

	e = getEmailTask(t, map[string]interface{}{"host": "localhost", "port": 1025, "encryption": "none"})
	assert.Equal(t, "localhost", e.smtp.Host)
	assert.Equal(t, 1025, e.smtp.Port)
	assert.Equal(t, mail.EncryptionNone, e.encryption)

	b := testBase()
	b.Properties = map[string]interface{}{"encryption": "rot13"}
	_, err := newEmail(b)
	assert.Error(t, err)
}

func TestEmailValidate(t *testing.T) {
	e := getEmailTask(t, nil)

	values := emailValues()
	values["to"] = "not an email"
	delete(values, "subject")
	cbs := validationCallbacks(t, e.Validate(newTestSubmission(values)))
	assert.Equal(t, "Receiver Email invalid", callbackError(cbs, "to"))
	assert.Equal(t, "Subject required", callbackError(cbs, "subject"))
	assert.Equal(t, "", callbackError(cbs, "attachment"))

	assert.NoError(t, e.Validate(newTestSubmission(emailValues())))

	values = emailValues()
	values["to"] = "root@localhost"
	assert.NoError(t, e.Validate(newTestSubmission(values)))
}

func TestEmailSend(t *testing.T) {
	e := getEmailTask(t, nil)

	var sentServer *mail.SMTPServer
	var sent *mail.Email
	e.send = func(server *mail.SMTPServer, email *mail.Email) error {
		sentServer = server
		sent = email
		return nil
	}

	sub := newTestSubmission(emailValues())
	sub.Files["attachment"] = state.File{Name: "report.txt", Data: []byte("quarterly numbers")}
	res, err := e.Execute(context.Background(), sub)
	assert.NoError(t, err)
	assert.Equal(t, "Email sent successfully!", res.Message)

	assert.Equal(t, "smtp.gmail.com", sentServer.Host)
	assert.Equal(t, 465, sentServer.Port)
	assert.Equal(t, "john@gmail.com", sentServer.Username)
	assert.Equal(t, "app-password", sentServer.Password)
	assert.Equal(t, mail.EncryptionSSLTLS, sentServer.Encryption)

	assert.NoError(t, sent.GetError())
	assert.Equal(t, []string{"jane@example.com"}, sent.GetRecipients())
	msg := sent.GetMessage()
	assert.Contains(t, msg, "Subject: Report")
	assert.Contains(t, msg, "report.txt")
}

func TestEmailSendFailure(t *testing.T) {
	e := getEmailTask(t, nil)
	e.send = func(_ *mail.SMTPServer, _ *mail.Email) error {
		return errors.New("535 Username and Password not accepted")
	}
	_, err := e.Execute(context.Background(), newTestSubmission(emailValues()))
	assert.EqualError(t, err, "Failed to send email: 535 Username and Password not accepted")
}
