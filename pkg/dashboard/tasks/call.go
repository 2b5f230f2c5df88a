package tasks

import (
	"bytes"
	"context"
	"encoding/xml"

	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// VoiceCall places a call that speaks the submitted text
type VoiceCall struct {
	BaseTask
	newClient twilioClientFactory
}

func (vc *VoiceCall) Execute(_ context.Context, sub *state.Submission) (Result, error) {
	client := vc.newClient(sub.Value("accountSid"), sub.Value("authToken"))

	params := &twilioapi.CreateCallParams{}
	params.SetTwiml(sayTwiml(sub.Value("text")))
	params.SetTo(sub.Value("to"))
	params.SetFrom(sub.Value("from"))

	call, err := client.CreateCall(params)
	if err != nil {
		return Result{}, taskerrors.NewExternalCallError("Error making call", err)
	}
	vc.l.Infof("call %v initiated", stringValue(call.Sid))
	return Result{Message: "Call initiated successfully!", Output: stringValue(call.Sid)}, nil
}

// sayTwiml builds the TwiML document reading text aloud, text is xml escaped
func sayTwiml(text string) string {
	var buf bytes.Buffer
	buf.WriteString("<Response><Say>")
	_ = xml.EscapeText(&buf, []byte(text))
	buf.WriteString("</Say></Response>")
	return buf.String()
}

func init() {
	RegisterTask("twilio-call", newVoiceCall)
}

func newVoiceCall(base BaseTask) (Task, error) {
	base.callbacks = append(twilioCredentials(),
		recipientCallback(),
		textAreaCallback("text", "What should the call say?"),
	)
	base.invalidMessage = "Please fill in all fields."
	return &VoiceCall{BaseTask: base, newClient: newTwilioClient}, nil
}
