package tasks

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	taskerrors "github.com/maximthomas/taskboard/pkg/dashboard/errors"
	"github.com/maximthomas/taskboard/pkg/dashboard/state"
	"github.com/maximthomas/taskboard/pkg/log"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Task is one selectable automation action.
// Callbacks renders the form, Validate checks a submission before anything leaves the process,
// Execute performs exactly one external call.
type Task interface {
	Callbacks() []callbacks.Callback
	Validate(sub *state.Submission) error
	Execute(ctx context.Context, sub *state.Submission) (Result, error)
}

// Result is what a successful Execute reports back to the user
type Result struct {
	Message    string
	Output     string
	Items      []callbacks.Item
	Attachment *callbacks.Attachment
}

type Constructor func(base BaseTask) (Task, error)

var tasksRegistry = &sync.Map{}

func RegisterTask(tt string, constructor Constructor) {
	log.WithField("module", "tasks").Debugf("registered %v task", tt)
	tasksRegistry.Store(tt, constructor)
}

// Params are the per-task settings taken from configuration
type Params struct {
	ID         string
	Type       string
	Properties map[string]interface{}
	TempDir    string
	Fs         afero.Fs
}

func GetTask(p Params) (Task, error) {
	constructor, ok := tasksRegistry.Load(p.Type)
	if !ok {
		return nil, fmt.Errorf("task type %v does not exist", p.Type)
	}
	c, ok := constructor.(Constructor)
	if !ok {
		return nil, fmt.Errorf("error converting %v to task constructor", constructor)
	}
	fs := p.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	base := BaseTask{
		Properties: p.Properties,
		tempDir:    p.TempDir,
		fs:         fs,
		l:          log.WithField("task", p.ID),
	}
	return c(base)
}

// Registered reports whether a constructor exists for the task type
func Registered(tt string) bool {
	_, ok := tasksRegistry.Load(tt)
	return ok
}

type BaseTask struct {
	Properties map[string]interface{}
	callbacks  []callbacks.Callback
	// message shown when a submission does not pass validation
	invalidMessage string
	tempDir        string
	fs             afero.Fs
	l              logrus.FieldLogger
}

func (b BaseTask) Callbacks() []callbacks.Callback {
	cbs := make([]callbacks.Callback, len(b.callbacks))
	copy(cbs, b.callbacks)
	return cbs
}

// Validate checks required fields and validation patterns of the task callbacks.
// Failed callbacks are returned with Error set inside a ValidationError.
func (b BaseTask) Validate(sub *state.Submission) error {
	cbs := b.Callbacks()
	valid := true
	for i := range cbs {
		cb := &cbs[i]
		if cb.Type == callbacks.TypeFile {
			if _, ok := sub.File(cb.Name); !ok && cb.Required {
				cb.Error = cb.Prompt + " required"
				valid = false
			}
			continue
		}
		value := sub.Value(cb.Name)
		cb.Value = value
		if cb.Type == callbacks.TypePassword {
			cb.Value = ""
		}
		if value == "" {
			if cb.Required {
				cb.Error = cb.Prompt + " required"
				valid = false
			}
			continue
		}
		if cb.Validation != "" {
			re, err := regexp.Compile(cb.Validation)
			if err != nil {
				return errors.Wrapf(err, "error compiling regex for callback %v", cb.Name)
			}
			if !re.MatchString(value) {
				cb.Error = cb.Prompt + " invalid"
				valid = false
			}
		}
	}
	if !valid {
		return taskerrors.NewValidationError(b.invalidMessage, cbs)
	}
	return nil
}

// decodeProperties fills the task specific settings from configuration
func (b BaseTask) decodeProperties(out interface{}) error {
	if b.Properties == nil {
		return nil
	}
	config := &mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           out,
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return err
	}
	return errors.Wrap(decoder.Decode(b.Properties), "error decoding task properties")
}

// invalid marks a single field as failed and returns the ValidationError for the submission
func (b BaseTask) invalid(sub *state.Submission, name, msg string) error {
	cbs := b.Callbacks()
	for i := range cbs {
		if cbs[i].Type != callbacks.TypePassword && cbs[i].Type != callbacks.TypeFile {
			cbs[i].Value = sub.Value(cbs[i].Name)
		}
		if cbs[i].Name == name {
			cbs[i].Error = msg
		}
	}
	return taskerrors.NewValidationError(b.invalidMessage, cbs)
}

func textCallback(name, prompt string) callbacks.Callback {
	return callbacks.Callback{Name: name, Type: callbacks.TypeText, Prompt: prompt, Required: true}
}

func textAreaCallback(name, prompt string) callbacks.Callback {
	return callbacks.Callback{Name: name, Type: callbacks.TypeTextArea, Prompt: prompt, Required: true}
}

func passwordCallback(name, prompt string) callbacks.Callback {
	return callbacks.Callback{Name: name, Type: callbacks.TypePassword, Prompt: prompt, Required: true}
}
