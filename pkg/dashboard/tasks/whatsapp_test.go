package tasks

import (
	"context"
	"errors"
	"net/url"
	"testing"

	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/stretchr/testify/assert"
)

type fakeWhatsAppDriver struct {
	phone, message string
	err            error
}

func (f *fakeWhatsAppDriver) Send(_ context.Context, phone, message string) error {
	f.phone, f.message = phone, message
	return f.err
}

func TestWhatsAppSendURL(t *testing.T) {
	u, err := url.Parse(whatsAppSendURL("+91 98765-43210", "hello & bye"))
	assert.NoError(t, err)
	assert.Equal(t, "web.whatsapp.com", u.Host)
	assert.Equal(t, "/send", u.Path)
	assert.Equal(t, "919876543210", u.Query().Get("phone"))
	assert.Equal(t, "hello & bye", u.Query().Get("text"))
}

func TestWhatsApp(t *testing.T) {
	b := testBase()
	b.Properties = map[string]interface{}{"sendTimeout": "15s", "headless": true}
	m, err := newWhatsApp(b)
	assert.NoError(t, err)
	w := m.(*WhatsApp)
	driver := w.driver.(rodDriver)
	assert.Equal(t, "15s", driver.props.SendTimeout.String())
	assert.True(t, driver.props.Headless)

	t.Run("missing message", func(t *testing.T) {
		cbs := validationCallbacks(t, w.Validate(newTestSubmission(map[string]string{"phone": "+919876543210"})))
		assert.Equal(t, "Message to Send required", callbackError(cbs, "message"))
	})

	t.Run("bad number", func(t *testing.T) {
		cbs := validationCallbacks(t, w.Validate(newTestSubmission(map[string]string{"phone": "call me", "message": "hi"})))
		assert.Equal(t, "Recipient's Phone Number invalid", callbackError(cbs, "phone"))
	})

	t.Run("sent", func(t *testing.T) {
		fake := &fakeWhatsAppDriver{}
		w.driver = fake
		res, err := w.Execute(context.Background(), newTestSubmission(map[string]string{"phone": "+919876543210", "message": "hi"}))
		assert.NoError(t, err)
		assert.Equal(t, "Message sent successfully!", res.Message)
		assert.Equal(t, "+919876543210", fake.phone)
		assert.Equal(t, "hi", fake.message)
	})

	t.Run("browser error", func(t *testing.T) {
		w.driver = &fakeWhatsAppDriver{err: errors.New("send button not found")}
		_, err := w.Execute(context.Background(), newTestSubmission(map[string]string{"phone": "+919876543210", "message": "hi"}))
		var ece *taskerrors.ExternalCallError
		assert.True(t, errors.As(err, &ece))
		assert.Equal(t, "Common issues: Is WhatsApp Web linked? Is the phone number correct?", ece.Detail)
	})
}
