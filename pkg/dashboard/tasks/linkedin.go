package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/pkg/errors"
)

type linkedInProperties struct {
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
}

// LinkedIn shares a text post on the profile owning the access token
type LinkedIn struct {
	BaseTask
	props  linkedInProperties
	client *http.Client
}

// linkedInHTTPError keeps the decoded error body of a failed LinkedIn call
type linkedInHTTPError struct {
	status int
	body   interface{}
}

func (e *linkedInHTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.status)
}

type linkedInPost struct {
	Author          string                 `json:"author"`
	LifecycleState  string                 `json:"lifecycleState"`
	SpecificContent map[string]interface{} `json:"specificContent"`
	Visibility      map[string]string      `json:"visibility"`
}

func newLinkedInPost(userID, text string) linkedInPost {
	return linkedInPost{
		Author:         "urn:li:person:" + userID,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary": map[string]string{
					"text": text,
				},
				"shareMediaCategory": "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
}

func (li *LinkedIn) Execute(ctx context.Context, sub *state.Submission) (Result, error) {
	token := sub.Value("accessToken")

	var profile struct {
		ID string `json:"id"`
	}
	err := li.do(ctx, http.MethodGet, "/v2/me", token, nil, &profile)
	if err != nil {
		return Result{}, li.externalError(err)
	}
	if profile.ID == "" {
		return Result{}, taskerrors.NewExternalCallError("An unexpected error occurred", errors.New("profile id is empty"))
	}

	var postResp map[string]interface{}
	err = li.do(ctx, http.MethodPost, "/v2/ugcPosts", token, newLinkedInPost(profile.ID, sub.Value("text")), &postResp)
	if err != nil {
		return Result{}, li.externalError(err)
	}
	postID, _ := postResp["id"].(string)
	return Result{Message: "Successfully posted to LinkedIn!", Output: postID}, nil
}

func (li *LinkedIn) externalError(err error) error {
	var httpErr *linkedInHTTPError
	if errors.As(err, &httpErr) {
		return taskerrors.NewExternalCallError("Failed to post: An HTTP error occurred.", err).WithDetail(httpErr.body)
	}
	return taskerrors.NewExternalCallError("An unexpected error occurred", err)
}

func (li *LinkedIn) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	uri := strings.TrimSuffix(li.props.BaseURL, "/") + path
	var body io.Reader
	if in != nil {
		jsonBody, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(jsonBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return errors.Wrapf(err, "error creating request %v", uri)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	req.Header.Set("LinkedIn-Version", li.props.APIVersion)

	resp, err := li.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%v %v", method, uri)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail interface{}
		if json.Unmarshal(respBody, &detail) != nil {
			detail = string(respBody)
		}
		return &linkedInHTTPError{status: resp.StatusCode, body: detail}
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

func init() {
	RegisterTask("linkedin", newLinkedIn)
}

func newLinkedIn(base BaseTask) (Task, error) {
	props := linkedInProperties{
		BaseURL:    "https://api.linkedin.com",
		APIVersion: "202305",
		Timeout:    30 * time.Second,
	}
	if err := base.decodeProperties(&props); err != nil {
		return nil, err
	}
	base.callbacks = []callbacks.Callback{
		passwordCallback("accessToken", "Your LinkedIn Access Token"),
		textAreaCallback("text", "Write your LinkedIn post content"),
	}
	base.invalidMessage = "Please provide your Access Token and a message to post."
	return &LinkedIn{
		BaseTask: base,
		props:    props,
		client:   &http.Client{Timeout: props.Timeout},
	}, nil
}
