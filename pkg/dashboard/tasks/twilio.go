package tasks

import (
	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type twilioAPI interface {
	CreateCall(params *twilioapi.CreateCallParams) (*twilioapi.ApiV2010Call, error)
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

type twilioClientFactory func(accountSid, authToken string) twilioAPI

func newTwilioClient(accountSid, authToken string) twilioAPI {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return client.Api
}

// twilioCredentials are the fields every Twilio form starts with.
// Sender and recipient are passed to Twilio as entered, they may be numbers, sender ids or channel addresses.
func twilioCredentials() []callbacks.Callback {
	from := textCallback("from", "Your Twilio Phone Number")
	from.Properties = map[string]string{"placeholder": "e.g., +1234567890"}
	return []callbacks.Callback{
		passwordCallback("accountSid", "Twilio Account SID"),
		passwordCallback("authToken", "Twilio Auth Token"),
		from,
	}
}

func recipientCallback() callbacks.Callback {
	to := textCallback("to", "Recipient's Phone Number")
	to.Properties = map[string]string{"placeholder": "e.g., +919876543210"}
	return to
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
