package model

import "strings"

// Template is a preset that pre-fills a new email.
type Template struct {
	Title   string
	Subject string
	Context string
	Tone    Tone
}

var templates = []Template{
	{
		Title:   "Leave Request",
		Subject: "Leave Request",
		Context: "I would like to request time off for personal reasons",
		Tone:    ToneFormal,
	},
	{
		Title:   "Job Application",
		Subject: "Application for [Position Name]",
		Context: "Expressing interest in a job position and highlighting relevant experience",
		Tone:    ToneFormal,
	},
	{
		Title:   "Meeting Follow-up",
		Subject: "Following up on our meeting",
		Context: "Summarizing key points from our recent meeting and next steps",
		Tone:    ToneFriendly,
	},
	{
		Title:   "Client Proposal",
		Subject: "Proposal for [Project Name]",
		Context: "Presenting a business proposal with timeline and deliverables",
		Tone:    TonePersuasive,
	},
	{
		Title:   "Thank You Note",
		Subject: "Thank you",
		Context: "Expressing gratitude for someone's help or support",
		Tone:    ToneGrateful,
	},
}

// Templates returns a copy of the preset catalog.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// FindTemplate looks a preset up by title, ignoring case.
func FindTemplate(title string) (Template, bool) {
	for _, t := range templates {
		if strings.EqualFold(t.Title, strings.TrimSpace(title)) {
			return t, true
		}
	}
	return Template{}, false
}
