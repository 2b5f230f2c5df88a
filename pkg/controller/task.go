package controller

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maximthomas/taskboard/pkg/dashboard"
	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/maximthomas/taskboard/pkg/log"
	"github.com/maximthomas/taskboard/pkg/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TaskController rest controller for the task dashboard
type TaskController struct {
	router *dashboard.Router
	logger logrus.FieldLogger
}

func NewTaskController(router *dashboard.Router) *TaskController {
	logger := log.WithField("module", "TaskController")
	return &TaskController{router: router, logger: logger}
}

// Menu lists the selectable tasks
func (tc *TaskController) Menu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": tc.router.Menu()})
}

// Form returns the callbacks of the task input form
func (tc *TaskController) Form(c *gin.Context) {
	resp, err := tc.router.Render(c.Param("task"))
	if err != nil {
		tc.generateResponse(c, resp, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit accepts a json callbacks request or a multipart form and runs the task
func (tc *TaskController) Submit(c *gin.Context) {
	task := c.Param("task")
	sub := state.NewSubmission(middleware.GetRequestID(c), task)

	var err error
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		err = fillFromMultipart(c, sub)
	} else {
		var cbReq callbacks.Request
		if err = c.ShouldBindJSON(&cbReq); err == nil {
			err = sub.FillFromCallbacks(cbReq.Callbacks)
		}
	}
	if err != nil {
		tc.logger.Errorf("error binding request body %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"status": callbacks.StatusFail, "message": "bad request"})
		return
	}

	resp, err := tc.router.Submit(c.Request.Context(), task, sub)
	resp.SubmissionID = sub.ID
	resp.Task = task
	if err == nil && resp.Attachment != nil && c.Query("download") == "true" {
		c.Header("Content-Disposition", `attachment; filename="`+resp.Attachment.Name+`"`)
		c.Data(http.StatusOK, resp.Attachment.MimeType, resp.Attachment.Data)
		return
	}
	tc.generateResponse(c, resp, err)
}

func (tc *TaskController) generateResponse(c *gin.Context, resp callbacks.Response, err error) {
	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	resp.Status = callbacks.StatusFail
	var (
		notFound   *taskerrors.TaskNotFound
		validation *taskerrors.ValidationError
		external   *taskerrors.ExternalCallError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"status": callbacks.StatusFail, "message": notFound.Error()})
	case errors.As(err, &validation):
		resp.Message = validation.Message()
		resp.Callbacks = validation.Callbacks
		c.JSON(http.StatusBadRequest, resp)
	case errors.As(err, &external):
		resp.Message = external.Error()
		resp.Detail = external.Detail
		c.JSON(http.StatusBadGateway, resp)
	default:
		tc.logger.Errorf("task error %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": callbacks.StatusFail, "message": "internal error"})
	}
}

func fillFromMultipart(c *gin.Context, sub *state.Submission) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}
	for name, values := range form.Value {
		if len(values) > 0 {
			sub.Values[name] = values[0]
		}
	}
	for name, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		data, err := readFormFile(headers[0])
		if err != nil {
			return errors.Wrapf(err, "error reading file %v", name)
		}
		sub.Files[name] = state.File{Name: headers[0].Filename, Data: data}
	}
	return nil
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
