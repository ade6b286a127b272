// Package prompt turns an email operation and its form fields into the
// system/user message pair sent to the chat-completion model.
package prompt

import (
	"errors"
	"fmt"

	"mailgenie/internal/model"
)

// ErrInvalidEmailType is returned for an operation with no template.
var ErrInvalidEmailType = errors.New("Invalid email type")

const System = "You are a professional email writing assistant. Generate clear, well-structured emails that are appropriate for the given context and tone."

const defaultRecipient = "the recipient"

// Prompt is one system/user message pair.
type Prompt struct {
	System string
	User   string
}

type templateFunc func(model.FormData) string

var templates = map[model.Kind]templateFunc{
	model.KindNew:       newEmail,
	model.KindReply:     reply,
	model.KindSummarize: summarize,
	model.KindReformat:  reformat,
}

// Build selects the template for kind and interpolates form into it.
func Build(kind model.Kind, form model.FormData) (Prompt, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return Prompt{}, ErrInvalidEmailType
	}
	return Prompt{System: System, User: tmpl(form)}, nil
}

func newEmail(f model.FormData) string {
	recipient := f.Recipient
	if recipient == "" {
		recipient = defaultRecipient
	}

	return fmt.Sprintf(`Write a professional email with the following details:
- Recipient: %s
- Subject: %s
- Context: %s
- Tone: %s

Generate a complete, well-formatted email that is concise and professional. Include proper greetings and sign-offs.`,
		recipient, f.Subject, f.Context, f.Tone)
}

func reply(f model.FormData) string {
	return fmt.Sprintf(`Write a %s reply to the following email:

%s

The reply should be professional, address the key points, and maintain a %s tone.`,
		f.Tone, f.ExistingEmail, f.Tone)
}

func summarize(f model.FormData) string {
	return fmt.Sprintf(`Summarize the following email in a concise, bullet-point format:

%s

Focus on:
- Key points and main messages
- Action items or requests
- Important dates or deadlines
- Decisions made

Keep the summary clear and organized.`, f.ExistingEmail)
}

func reformat(f model.FormData) string {
	return fmt.Sprintf(`Rewrite the following email to be more %s:

%s

Maintain the core message but adjust the language, structure, and tone to be %s while keeping it professional.`,
		f.Tone, f.ExistingEmail, f.Tone)
}
