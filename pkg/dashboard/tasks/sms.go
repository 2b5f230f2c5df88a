package tasks

import (
	"context"

	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type SMS struct {
	BaseTask
	newClient twilioClientFactory
}

func (s *SMS) Execute(_ context.Context, sub *state.Submission) (Result, error) {
	client := s.newClient(sub.Value("accountSid"), sub.Value("authToken"))

	params := &twilioapi.CreateMessageParams{}
	params.SetBody(sub.Value("body"))
	params.SetFrom(sub.Value("from"))
	params.SetTo(sub.Value("to"))

	msg, err := client.CreateMessage(params)
	if err != nil {
		return Result{}, taskerrors.NewExternalCallError("Error sending SMS", err)
	}
	s.l.Infof("message %v sent", stringValue(msg.Sid))
	return Result{Message: "Message sent!", Output: stringValue(msg.Sid)}, nil
}

func init() {
	RegisterTask("twilio-sms", newSMS)
}

func newSMS(base BaseTask) (Task, error) {
	base.callbacks = append(twilioCredentials(),
		recipientCallback(),
		textAreaCallback("body", "Enter your message"),
	)
	base.invalidMessage = "Please fill in all fields."
	return &SMS{BaseTask: base, newClient: newTwilioClient}, nil
}
