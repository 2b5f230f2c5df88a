package state

import (
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/maximthomas/taskboard/pkg/dashboard/callbacks"
	"github.com/pkg/errors"
)

type Phase int

const (
	Idle Phase = iota
	Validating
	Calling
	Reporting
)

func (p Phase) String() string {
	switch p {
	case Validating:
		return "validating"
	case Calling:
		return "calling"
	case Reporting:
		return "reporting"
	default:
		return "idle"
	}
}

type File struct {
	Name string
	Data []byte
}

// Submission holds the values of a single form submit. It is discarded once the task reports.
type Submission struct {
	ID     string
	Task   string
	Phase  Phase
	Values map[string]string
	Files  map[string]File
}

func NewSubmission(id, task string) *Submission {
	if id == "" {
		id = uuid.New().String()
	}
	return &Submission{
		ID:     id,
		Task:   task,
		Phase:  Idle,
		Values: make(map[string]string),
		Files:  make(map[string]File),
	}
}

// Value returns the submitted value of the field or an empty string
func (s *Submission) Value(name string) string {
	return s.Values[name]
}

// File returns the uploaded file of the field, ok is false when nothing was uploaded
func (s *Submission) File(name string) (File, bool) {
	f, ok := s.Files[name]
	if !ok || len(f.Data) == 0 {
		return File{}, false
	}
	return f, true
}

// FillFromCallbacks copies submitted callback values. File callbacks are base64 decoded.
func (s *Submission) FillFromCallbacks(cbs []callbacks.Callback) error {
	for _, cb := range cbs {
		if cb.Name == "" {
			continue
		}
		if cb.Type != callbacks.TypeFile {
			s.Values[cb.Name] = cb.Value
			continue
		}
		if cb.Value == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(cb.Value)
		if err != nil {
			return errors.Wrapf(err, "error decoding file %v", cb.Name)
		}
		s.Files[cb.Name] = File{Name: cb.Properties["filename"], Data: data}
	}
	return nil
}
