package model

import "fmt"

// Kind is the email operation the user asked for.
type Kind string

const (
	KindNew       Kind = "new"
	KindReply     Kind = "reply"
	KindSummarize Kind = "summarize"
	KindReformat  Kind = "reformat"
)

// KindInfo is the display text for a Kind.
type KindInfo struct {
	Kind        Kind
	Title       string
	Description string
}

var kinds = []KindInfo{
	{Kind: KindNew, Title: "Write New Email", Description: "Create a professional email from scratch"},
	{Kind: KindReply, Title: "Reply to Email", Description: "Generate a thoughtful response"},
	{Kind: KindSummarize, Title: "Summarize Email", Description: "Get the key points quickly"},
	{Kind: KindReformat, Title: "Reformat Email", Description: "Make it more polite or formal"},
}

// Kinds returns the supported operations in display order.
func Kinds() []KindInfo {
	out := make([]KindInfo, len(kinds))
	copy(out, kinds)
	return out
}

func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k.Kind) == s {
			return k.Kind, nil
		}
	}
	return "", fmt.Errorf("unknown email type %q", s)
}

// NeedsExistingEmail reports whether k operates on pasted email text.
func (k Kind) NeedsExistingEmail() bool {
	return k == KindReply || k == KindSummarize || k == KindReformat
}

type Tone string

const (
	ToneFormal     Tone = "formal"
	ToneFriendly   Tone = "friendly"
	ToneApologetic Tone = "apologetic"
	TonePersuasive Tone = "persuasive"
	ToneGrateful   Tone = "grateful"
)

type ToneOption struct {
	Tone  Tone
	Label string
}

var tones = []ToneOption{
	{Tone: ToneFormal, Label: "Formal & Professional"},
	{Tone: ToneFriendly, Label: "Friendly & Casual"},
	{Tone: ToneApologetic, Label: "Apologetic"},
	{Tone: TonePersuasive, Label: "Persuasive"},
	{Tone: ToneGrateful, Label: "Grateful"},
}

func Tones() []ToneOption {
	out := make([]ToneOption, len(tones))
	copy(out, tones)
	return out
}

func ParseTone(s string) (Tone, error) {
	for _, t := range tones {
		if string(t.Tone) == s {
			return t.Tone, nil
		}
	}
	return "", fmt.Errorf("unknown tone %q", s)
}

// FormData carries the user's form fields. Which fields matter depends on
// the Kind.
type FormData struct {
	Recipient     string `json:"recipient,omitempty"`
	Subject       string `json:"subject,omitempty"`
	Context       string `json:"context,omitempty"`
	ExistingEmail string `json:"existingEmail,omitempty"`
	Tone          Tone   `json:"tone"`
}

// EmailRequest is the body posted to the generate-email function.
type EmailRequest struct {
	EmailType Kind     `json:"emailType"`
	FormData  FormData `json:"formData"`
}

// EmailResponse is the function's reply. Exactly one field is set.
type EmailResponse struct {
	GeneratedEmail string `json:"generatedEmail,omitempty"`
	Error          string `json:"error,omitempty"`
}

// ValidationError is a missing-field error caught before any request is
// sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	msgMissingSubjectContext = "Please fill in the subject and context fields"
	msgMissingExistingEmail  = "Please paste the email content"
)

// Validate checks the fields required by k.
func (f FormData) Validate(k Kind) error {
	switch {
	case k == KindNew:
		if f.Subject == "" || f.Context == "" {
			return &ValidationError{Message: msgMissingSubjectContext}
		}
	case k.NeedsExistingEmail():
		if f.ExistingEmail == "" {
			return &ValidationError{Message: msgMissingExistingEmail}
		}
	}
	return nil
}
