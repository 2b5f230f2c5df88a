package callbacks

const (
	TypeText     = "text"
	TypeTextArea = "textarea"
	TypePassword = "password"
	TypeFile     = "file"
	TypeRange    = "range"
)

// Callback describes a single form field. Clients render it and send it back with Value filled in.
// File callbacks carry base64 encoded content in Value and the file name in Properties["filename"].
type Callback struct {
	Name       string            `json:"name,omitempty"`
	Type       string            `json:"type"`
	Value      string            `json:"value"`
	Prompt     string            `json:"prompt,omitempty"`
	Validation string            `json:"validation,omitempty"`
	Required   bool              `json:"required,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Error      string            `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

type Request struct {
	Callbacks []Callback `json:"callbacks,omitempty"`
}

type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"` // base64 in json
}

type Response struct {
	Task         string      `json:"task,omitempty"`
	SubmissionID string      `json:"submissionId,omitempty"`
	Status       string      `json:"status,omitempty"`
	Message      string      `json:"message,omitempty"`
	Output       string      `json:"output,omitempty"`
	Items        []Item      `json:"items,omitempty"`
	Attachment   *Attachment `json:"attachment,omitempty"`
	Detail       interface{} `json:"detail,omitempty"`
	Callbacks    []Callback  `json:"callbacks,omitempty"`
}

type MenuItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
