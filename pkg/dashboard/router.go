package dashboard

import (
	"context"
	"fmt"

	"github.com/maximthomas/taskboard/pkg/config"
	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/maximthomas/taskboard/pkg/dashboard/tasks"
	"github.com/maximthomas/taskboard/pkg/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Router presents the task menu and dispatches submissions to the selected task
type Router struct {
	tasks   []config.Task
	tempDir string
	fs      afero.Fs
	logger  logrus.FieldLogger
}

func NewRouter(conf config.Config) (*Router, error) {
	for _, t := range conf.Tasks {
		if !tasks.Registered(t.Type) {
			return nil, errors.Errorf("task %v has unknown type %v", t.ID, t.Type)
		}
	}
	return &Router{
		tasks:   conf.Tasks,
		tempDir: conf.TempDir,
		fs:      afero.NewOsFs(),
		logger:  log.WithField("module", "Router"),
	}, nil
}

// WithFs replaces the filesystem temp files are staged on
func (r *Router) WithFs(fs afero.Fs) *Router {
	r.fs = fs
	return r
}

func (r *Router) Menu() []callbacks.MenuItem {
	items := make([]callbacks.MenuItem, len(r.tasks))
	for i, t := range r.tasks {
		items[i] = callbacks.MenuItem{ID: t.ID, Title: t.Title, Description: t.Description}
	}
	return items
}

// Render returns the input form of the task
func (r *Router) Render(name string) (callbacks.Response, error) {
	t, err := r.getTask(name)
	if err != nil {
		return callbacks.Response{}, err
	}
	return callbacks.Response{Task: name, Callbacks: t.Callbacks()}, nil
}

// Submit validates the submission and runs the task's external call.
// A ValidationError is returned without calling anything, failures of the call are returned
// as ExternalCallError. Panics raised by a task are reported the same way.
func (r *Router) Submit(ctx context.Context, name string, sub *state.Submission) (resp callbacks.Response, err error) {
	t, err := r.getTask(name)
	if err != nil {
		return resp, err
	}
	sub.Task = name
	logger := r.logger.WithField("task", name).WithField("submission", sub.ID)

	sub.Phase = state.Validating
	if err = t.Validate(sub); err != nil {
		logger.Infof("submission is not valid: %v", err)
		return resp, err
	}

	sub.Phase = state.Calling
	logger.Debug("calling external system")
	result, err := r.execute(ctx, t, sub)

	sub.Phase = state.Reporting
	if err != nil {
		var ece *taskerrors.ExternalCallError
		if !errors.As(err, &ece) {
			err = taskerrors.NewExternalCallError("An unexpected error occurred", err)
		}
		logger.Warnf("task failed: %v", err)
		return resp, err
	}
	logger.Info("task succeeded")

	resp = callbacks.Response{
		Task:         name,
		SubmissionID: sub.ID,
		Status:       callbacks.StatusSuccess,
		Message:      result.Message,
		Output:       result.Output,
		Items:        result.Items,
		Attachment:   result.Attachment,
	}
	return resp, nil
}

func (r *Router) execute(ctx context.Context, t tasks.Task, sub *state.Submission) (result tasks.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = taskerrors.NewExternalCallError("An unexpected error occurred", fmt.Errorf("panic: %v", p))
		}
	}()
	return t.Execute(ctx, sub)
}

func (r *Router) getTask(name string) (tasks.Task, error) {
	for _, tc := range r.tasks {
		if tc.ID != name {
			continue
		}
		t, err := tasks.GetTask(tasks.Params{
			ID:         tc.ID,
			Type:       tc.Type,
			Properties: tc.Properties,
			TempDir:    r.tempDir,
			Fs:         r.fs,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "error getting task %v", name)
		}
		return t, nil
	}
	return nil, taskerrors.NewTaskNotFound(name)
}
