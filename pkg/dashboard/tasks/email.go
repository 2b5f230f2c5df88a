package tasks

import (
	"context"
	"time"

	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/pkg/errors"
	mail "github.com/xhit/go-simple-mail/v2"
)

const emailValidation = `^[^@\s]+@[^@\s]+$`

type smtpProperties struct {
	Host string
	Port int
	// Encryption is one of ssltls, starttls or none
	Encryption string
	Timeout    time.Duration
}

func (sp smtpProperties) encryption() (mail.Encryption, error) {
	switch sp.Encryption {
	case "", "ssltls":
		return mail.EncryptionSSLTLS, nil
	case "starttls":
		return mail.EncryptionSTARTTLS, nil
	case "none":
		return mail.EncryptionNone, nil
	}
	return mail.EncryptionNone, errors.Errorf("unknown smtp encryption %v", sp.Encryption)
}

// Email sends a plain text message with an optional attachment over implicit TLS
type Email struct {
	BaseTask
	smtp       smtpProperties
	encryption mail.Encryption
	send       func(server *mail.SMTPServer, email *mail.Email) error
}

func (e *Email) Execute(_ context.Context, sub *state.Submission) (Result, error) {
	server := mail.NewSMTPClient()
	server.Host = e.smtp.Host
	server.Port = e.smtp.Port
	server.Username = sub.Value("from")
	server.Password = sub.Value("appPassword")
	server.Encryption = e.encryption
	server.KeepAlive = false
	server.ConnectTimeout = e.smtp.Timeout
	server.SendTimeout = e.smtp.Timeout

	email := mail.NewMSG()
	email.SetFrom(sub.Value("from")).
		AddTo(sub.Value("to")).
		SetSubject(sub.Value("subject"))
	email.SetBody(mail.TextPlain, sub.Value("body"))

	if f, ok := sub.File("attachment"); ok {
		email.Attach(&mail.File{
			Name:     f.Name,
			MimeType: "application/octet-stream",
			Data:     f.Data,
		})
	}

	if email.Error != nil {
		return Result{}, taskerrors.NewExternalCallError("Failed to send email", email.Error)
	}

	if err := e.send(server, email); err != nil {
		return Result{}, taskerrors.NewExternalCallError("Failed to send email", err)
	}
	return Result{Message: "Email sent successfully!"}, nil
}

func sendEmail(server *mail.SMTPServer, email *mail.Email) error {
	smtpClient, err := server.Connect()
	if err != nil {
		return err
	}
	return email.Send(smtpClient)
}

func init() {
	RegisterTask("gmail", newEmail)
}

func newEmail(base BaseTask) (Task, error) {
	e := &Email{
		smtp: smtpProperties{
			Host:    "smtp.gmail.com",
			Port:    465,
			Timeout: 10 * time.Second,
		},
		send: sendEmail,
	}
	if err := base.decodeProperties(&e.smtp); err != nil {
		return nil, err
	}
	encryption, err := e.smtp.encryption()
	if err != nil {
		return nil, err
	}
	e.encryption = encryption

	from := textCallback("from", "Your Gmail Address")
	from.Validation = emailValidation
	from.Properties = map[string]string{"placeholder": "your.email@gmail.com"}
	to := textCallback("to", "Receiver Email")
	to.Validation = emailValidation
	to.Properties = map[string]string{"placeholder": "recipient@example.com"}

	base.callbacks = []callbacks.Callback{
		from,
		passwordCallback("appPassword", "Your Gmail App Password"),
		to,
		textCallback("subject", "Subject"),
		textAreaCallback("body", "Message Body"),
		{Name: "attachment", Type: callbacks.TypeFile, Prompt: "Attach a file (optional)"},
	}
	base.invalidMessage = "Please fill in all required fields."
	e.BaseTask = base
	return e, nil
}
