package errors

import (
	"io"
	"testing"

	pkgerrors "github.com/pkg/errors"

	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("Please fill in all fields.", []callbacks.Callback{
		{Name: "to", Error: "Recipient required"},
		{Name: "body"},
		{Name: "from", Error: "Sender required"},
	})
	assert.Equal(t, "Please fill in all fields. (to, from)", err.Error())
	assert.Equal(t, "Please fill in all fields.", err.Message())
}

func TestExternalCallError(t *testing.T) {
	err := NewExternalCallError("Error sending SMS", io.ErrUnexpectedEOF).WithDetail(map[string]string{"code": "21211"})
	assert.Equal(t, "Error sending SMS: unexpected EOF", err.Error())
	assert.True(t, pkgerrors.Is(err, io.ErrUnexpectedEOF))

	wrapped := pkgerrors.Wrap(err, "task sms")
	var ece *ExternalCallError
	assert.True(t, pkgerrors.As(wrapped, &ece))
	assert.Equal(t, map[string]string{"code": "21211"}, ece.Detail)

	assert.Equal(t, "Failed to post", NewExternalCallError("Failed to post", nil).Error())
}
