//go:build integration

package integration_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maximthomas/taskboard/pkg/config"
	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	"github.com/maximthomas/taskboard/pkg/server"
	"github.com/stretchr/testify/assert"
)

// expects an smtp server without tls on localhost:1025, mailhog for example
var conf = config.Config{
	Tasks: []config.Task{
		{
			ID:    "mail",
			Type:  "gmail",
			Title: "Local mail",
			Properties: map[string]interface{}{
				"host":       "localhost",
				"port":       1025,
				"encryption": "none",
			},
		},
	},
}

func TestSendEmail(t *testing.T) {
	router, err := server.SetupRouter(conf)
	assert.NoError(t, err)

	cbReq := callbacks.Request{Callbacks: []callbacks.Callback{
		{Name: "from", Value: "john@test.com"},
		{Name: "appPassword", Value: "password"},
		{Name: "to", Value: "jane@test.com"},
		{Name: "subject", Value: "Integration"},
		{Name: "body", Value: "hello email"},
		{Name: "attachment", Type: callbacks.TypeFile, Value: base64.StdEncoding.EncodeToString([]byte("attached")),
			Properties: map[string]string{"filename": "note.txt"}},
	}}
	body, _ := json.Marshal(cbReq)
	request := httptest.NewRequest("POST", "/taskboard/v1/tasks/mail", bytes.NewBuffer(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var resp callbacks.Response
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Email sent successfully!", resp.Message)
}
