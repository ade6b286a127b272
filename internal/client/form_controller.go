// Package client holds the client side of MailGenie: the HTTP client for the
// generate-email function and the form controller that owns the user's
// in-memory session state.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mailgenie/internal/model"
)

// ErrGenerationInFlight is returned when Generate is called while a previous
// request has not resolved yet.
var ErrGenerationInFlight = errors.New("a generation is already in progress")

const (
	msgGenerated = "Email generated successfully!"
	msgCopied    = "Email copied to clipboard!"
	msgCopyFail  = "Failed to copy email"
	msgFallback  = "Failed to generate email. Please try again."
)

// Field names a form input.
type Field string

const (
	FieldRecipient     Field = "recipient"
	FieldSubject       Field = "subject"
	FieldContext       Field = "context"
	FieldExistingEmail Field = "existingEmail"
	FieldTone          Field = "tone"
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// FormController owns the state of one drafting session. It is safe for
// concurrent use; at most one generation runs at a time.
type FormController struct {
	invoker  Invoker
	notifier Notifier

	mu        sync.Mutex
	kind      model.Kind
	form      model.FormData
	generated string
	inFlight  bool
	editing   bool
	edited    string
}

func NewFormController(invoker Invoker, notifier Notifier) *FormController {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &FormController{
		invoker:  invoker,
		notifier: notifier,
		kind:     model.KindNew,
		form:     model.FormData{Tone: model.ToneFormal},
	}
}

func (fc *FormController) SelectKind(k model.Kind) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.kind = k
}

func (fc *FormController) Kind() model.Kind {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.kind
}

func (fc *FormController) Form() model.FormData {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.form
}

func (fc *FormController) SetField(f Field, value string) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	switch f {
	case FieldRecipient:
		fc.form.Recipient = value
	case FieldSubject:
		fc.form.Subject = value
	case FieldContext:
		fc.form.Context = value
	case FieldExistingEmail:
		fc.form.ExistingEmail = value
	case FieldTone:
		fc.form.Tone = model.Tone(value)
	default:
		return fmt.Errorf("unknown field %q", f)
	}
	return nil
}

// ApplyTemplate switches to a new email and copies the preset's subject,
// context and tone. Recipient and pasted email text are kept.
func (fc *FormController) ApplyTemplate(t model.Template) {
	fc.mu.Lock()
	fc.kind = model.KindNew
	fc.form.Subject = t.Subject
	fc.form.Context = t.Context
	fc.form.Tone = t.Tone
	fc.mu.Unlock()

	fc.notifier.Success(fmt.Sprintf("Template %q loaded!", t.Title))
}

func (fc *FormController) InFlight() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.inFlight
}

// Generate validates the held form and, when valid, asks the function for a
// draft. On success the draft replaces the generated text and any edit in
// progress is dropped. On failure the previous text is left as it was.
func (fc *FormController) Generate(ctx context.Context) error {
	fc.mu.Lock()
	if fc.inFlight {
		fc.mu.Unlock()
		return ErrGenerationInFlight
	}
	req := model.EmailRequest{EmailType: fc.kind, FormData: fc.form}
	if err := req.FormData.Validate(req.EmailType); err != nil {
		fc.mu.Unlock()
		fc.notifier.Error(err.Error())
		return err
	}
	fc.inFlight = true
	fc.mu.Unlock()

	generated, err := fc.invoker.Invoke(ctx, req)

	fc.mu.Lock()
	fc.inFlight = false
	if err == nil {
		fc.generated = generated
		fc.editing = false
		fc.edited = ""
	}
	fc.mu.Unlock()

	if err != nil {
		fc.notifier.Error(errorMessage(err))
		return err
	}

	fc.notifier.Success(msgGenerated)
	return nil
}

// Regenerate runs Generate again with the currently held state.
func (fc *FormController) Regenerate(ctx context.Context) error {
	return fc.Generate(ctx)
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgFallback
}

// Generated returns the last generated text, ignoring any edit in progress.
func (fc *FormController) Generated() string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.generated
}

// Text is what the user currently sees: the edit buffer while editing,
// otherwise the generated text.
func (fc *FormController) Text() string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.editing {
		return fc.edited
	}
	return fc.generated
}

func (fc *FormController) Editing() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.editing
}

// StartEdit copies the generated text into the edit buffer.
func (fc *FormController) StartEdit() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if !fc.editing {
		fc.edited = fc.generated
		fc.editing = true
	}
}

func (fc *FormController) UpdateEdit(text string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.editing {
		fc.edited = text
	}
}

// CommitEdit makes the edit buffer the generated text. It never calls the
// function.
func (fc *FormController) CommitEdit() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.editing {
		fc.generated = fc.edited
		fc.editing = false
		fc.edited = ""
	}
}

func (fc *FormController) CancelEdit() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.editing = false
	fc.edited = ""
}

// Copy hands the visible text to write (a clipboard writer in practice).
func (fc *FormController) Copy(write func(string) error) error {
	if err := write(fc.Text()); err != nil {
		fc.notifier.Error(msgCopyFail)
		return err
	}
	fc.notifier.Success(msgCopied)
	return nil
}
