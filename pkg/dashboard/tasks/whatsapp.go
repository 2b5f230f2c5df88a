package tasks

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

const (
	whatsAppWebURL     = "https://web.whatsapp.com/send"
	sendButtonSelector = `span[data-icon="send"]`
)

type whatsAppProperties struct {
	// ControlURL of an already running browser, a new one is launched when empty
	ControlURL string
	// UserDataDir is the browser profile linked to WhatsApp Web
	UserDataDir    string
	Headless       bool
	SendTimeout    time.Duration
	AfterSendDelay time.Duration
}

type whatsAppDriver interface {
	Send(ctx context.Context, phone, message string) error
}

type rodDriver struct {
	props whatsAppProperties
}

func (d rodDriver) Send(ctx context.Context, phone, message string) error {
	controlURL := d.props.ControlURL
	launched := controlURL == ""
	if launched {
		l := launcher.New().Headless(d.props.Headless)
		if d.props.UserDataDir != "" {
			dir, err := homedir.Expand(d.props.UserDataDir)
			if err != nil {
				return errors.Wrap(err, "error expanding user data dir")
			}
			l = l.UserDataDir(dir)
		}
		u, err := l.Launch()
		if err != nil {
			return errors.Wrap(err, "error launching browser")
		}
		defer l.Kill()
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return errors.Wrap(err, "error connecting to browser")
	}
	if launched {
		defer browser.Close()
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: whatsAppSendURL(phone, message)})
	if err != nil {
		return errors.Wrap(err, "error opening WhatsApp Web")
	}
	defer page.Close()

	el, err := page.Timeout(d.props.SendTimeout).Element(sendButtonSelector)
	if err != nil {
		return errors.Wrap(err, "send button not found")
	}
	if err = el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return errors.Wrap(err, "error clicking send button")
	}

	// let WhatsApp Web deliver the message before the tab goes away
	select {
	case <-time.After(d.props.AfterSendDelay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func whatsAppSendURL(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	q := url.Values{}
	q.Set("phone", digits)
	q.Set("text", message)
	return whatsAppWebURL + "?" + q.Encode()
}

// WhatsApp sends a message through WhatsApp Web in a browser already linked to the account
type WhatsApp struct {
	BaseTask
	driver whatsAppDriver
}

func (w *WhatsApp) Execute(ctx context.Context, sub *state.Submission) (Result, error) {
	err := w.driver.Send(ctx, sub.Value("phone"), sub.Value("message"))
	if err != nil {
		return Result{}, taskerrors.NewExternalCallError("An error occurred", err).
			WithDetail("Common issues: Is WhatsApp Web linked? Is the phone number correct?")
	}
	return Result{Message: "Message sent successfully!"}, nil
}

// phoneValidation accepts international numbers, only the digits end up in the send URL
const phoneValidation = `^\+?[0-9 ()-]{6,20}$`

func init() {
	RegisterTask("whatsapp", newWhatsApp)
}

func newWhatsApp(base BaseTask) (Task, error) {
	props := whatsAppProperties{
		SendTimeout:    30 * time.Second,
		AfterSendDelay: 3 * time.Second,
	}
	if err := base.decodeProperties(&props); err != nil {
		return nil, err
	}
	phone := textCallback("phone", "Recipient's Phone Number")
	phone.Validation = phoneValidation
	phone.Properties = map[string]string{"placeholder": "Start with country code, e.g., +91"}
	base.callbacks = []callbacks.Callback{
		phone,
		textAreaCallback("message", "Message to Send"),
	}
	base.invalidMessage = "Please provide both a phone number and a message."
	return &WhatsApp{BaseTask: base, driver: rodDriver{props: props}}, nil
}
