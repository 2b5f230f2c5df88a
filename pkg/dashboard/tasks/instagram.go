package tasks

import (
	"context"
	"io"
	"net/http"

	"github.com/Davincible/goinsta/v3"
	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/maximthomas/taskboard/pkg/tempfile"
	"github.com/pkg/errors"
)

type instagramClient interface {
	Login() error
	UploadPhoto(photo io.Reader, caption string) error
}

type goinstaClient struct {
	insta *goinsta.Instagram
}

func newGoinstaClient(username, password string) instagramClient {
	return &goinstaClient{insta: goinsta.New(username, password)}
}

func (g *goinstaClient) Login() error {
	return g.insta.Login()
}

func (g *goinstaClient) UploadPhoto(photo io.Reader, caption string) error {
	_, err := g.insta.Upload(&goinsta.UploadOptions{
		File:    photo,
		Caption: caption,
	})
	return err
}

// Instagram posts a JPEG photo with a caption
type Instagram struct {
	BaseTask
	newClient func(username, password string) instagramClient
}

func (in *Instagram) Validate(sub *state.Submission) error {
	if err := in.BaseTask.Validate(sub); err != nil {
		return err
	}
	image, _ := sub.File("image")
	if http.DetectContentType(image.Data) != "image/jpeg" {
		return in.invalid(sub, "image", "Upload an image (JPG only)")
	}
	return nil
}

func (in *Instagram) Execute(_ context.Context, sub *state.Submission) (Result, error) {
	image, _ := sub.File("image")
	err := tempfile.Scope(in.fs, in.tempDir, "instagram-*.jpg", image.Data, func(path string) error {
		f, err := in.fs.Open(path)
		if err != nil {
			return errors.Wrap(err, "error opening staged image")
		}
		defer f.Close()

		client := in.newClient(sub.Value("username"), sub.Value("password"))
		if err = client.Login(); err != nil {
			return err
		}
		return client.UploadPhoto(f, sub.Value("caption"))
	})
	if err != nil {
		return Result{}, taskerrors.NewExternalCallError("Failed to post", err)
	}
	return Result{Message: "Successfully posted to Instagram!"}, nil
}

func init() {
	RegisterTask("instagram", newInstagram)
}

func newInstagram(base BaseTask) (Task, error) {
	base.callbacks = []callbacks.Callback{
		textCallback("username", "Instagram Username"),
		passwordCallback("password", "Instagram Password"),
		{
			Name:       "image",
			Type:       callbacks.TypeFile,
			Prompt:     "Upload an image (JPG only)",
			Required:   true,
			Properties: map[string]string{"accept": "image/jpeg"},
		},
		textAreaCallback("caption", "Write a caption"),
	}
	base.invalidMessage = "Please provide your login details and upload a photo."
	return &Instagram{BaseTask: base, newClient: newGoinstaClient}, nil
}
