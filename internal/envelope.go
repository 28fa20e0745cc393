package internal

import (
	"encoding/json"
	"net/http"
)

// EnvelopeType is the "type" field of a response envelope.
type EnvelopeType string

const (
	TypeSuccess EnvelopeType = "success"
	TypeError   EnvelopeType = "error"
	TypeInfo    EnvelopeType = "info"
)

// ContentTypeJSON is written with every envelope.
const ContentTypeJSON = "application/json; charset=utf-8"

// Envelope is the uniform response for every endpoint.
// It is a value type: every With* method returns an updated copy, so a
// partially built envelope is never observable by other holders.
type Envelope struct {
	payload    any
	totalPages *int
	message    string
	typ        EnvelopeType
	status     int
	success    bool
	hasPayload bool
}

// Structure is the serialized form of an envelope.
// Payload and TotalPages are omitted when unset.
type Structure struct {
	Success    bool         `json:"success"`
	Type       EnvelopeType `json:"type"`
	Message    string       `json:"message"`
	Payload    any          `json:"payload,omitempty"`
	TotalPages *int         `json:"totalPages,omitempty"`
}

// EnvelopeOption overrides inferred envelope fields at build time.
type EnvelopeOption func(*Envelope)

// AsType overrides the type inferred from success.
func AsType(t EnvelopeType) EnvelopeOption {
	return func(e *Envelope) {
		e.typ = t
	}
}

// WithStatus overrides the HTTP status inferred from success.
func WithStatus(code int) EnvelopeOption {
	return func(e *Envelope) {
		e.status = code
	}
}

func newEnvelope(success bool, message string, typ EnvelopeType, opts ...EnvelopeOption) Envelope {
	e := Envelope{success: success, message: message, typ: typ}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Success builds a successful envelope.
func Success(message string, opts ...EnvelopeOption) Envelope {
	return newEnvelope(true, message, TypeSuccess, opts...)
}

// Fail builds an error envelope.
func Fail(message string, opts ...EnvelopeOption) Envelope {
	return newEnvelope(false, message, TypeError, opts...)
}

// Info builds an informational envelope. It counts as successful.
func Info(message string, opts ...EnvelopeOption) Envelope {
	return newEnvelope(true, message, TypeInfo, opts...)
}

// WithPayload returns a copy carrying the given payload.
func (e Envelope) WithPayload(v any) Envelope {
	e.payload = v
	e.hasPayload = true
	return e
}

// WithTotalPages returns a copy carrying the pagination total.
func (e Envelope) WithTotalPages(n int) Envelope {
	e.totalPages = &n
	return e
}

// WithType returns a copy with an explicit type.
func (e Envelope) WithType(t EnvelopeType) Envelope {
	e.typ = t
	return e
}

// WithStatus returns a copy with an explicit HTTP status.
func (e Envelope) WithStatus(code int) Envelope {
	e.status = code
	return e
}

// IsSuccess reports the success flag.
func (e Envelope) IsSuccess() bool {
	return e.success
}

// Message returns the envelope message.
func (e Envelope) Message() string {
	return e.message
}

// Status returns the HTTP status: the override if set, otherwise 200 for
// successful envelopes and 400 for errors.
func (e Envelope) Status() int {
	if e.status != 0 {
		return e.status
	}
	if e.success {
		return http.StatusOK
	}
	return http.StatusBadRequest
}

// ToStructure returns the serializable shape of the envelope.
func (e Envelope) ToStructure() Structure {
	s := Structure{
		Success:    e.success,
		Type:       e.typ,
		Message:    e.message,
		TotalPages: e.totalPages,
	}
	if s.Type == "" {
		s.Type = TypeError
		if e.success {
			s.Type = TypeSuccess
		}
	}
	if e.hasPayload {
		s.Payload = e.payload
	}
	return s
}

// MarshalJSON encodes the envelope's structure.
func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToStructure())
}

// Render produces the status and body shared by both send modes.
func (e Envelope) Render() (int, []byte, error) {
	body, err := json.Marshal(e.ToStructure())
	if err != nil {
		return 0, nil, err
	}
	return e.Status(), body, nil
}

// Send writes the envelope to w: status code, JSON content type and body.
func (e Envelope) Send(w http.ResponseWriter) error {
	status, body, err := e.Render()
	if err != nil {
		return err
	}
	return writeResponse(w, status, body)
}

func writeResponse(w http.ResponseWriter, status int, body []byte) error {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}
