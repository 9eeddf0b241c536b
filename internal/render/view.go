package render

import "html/template"

const ContactTemplate = "contact"

type ProfileView struct {
	Name      string
	Tagline   string
	About     template.HTML
	Location  string
	LinkedIn  string
	GitHub    string
	Email     string
	EmailHref string
	Resume    string
	Photo     string
}

// Section is one rendered collection. Fragments keep source order.
type Section struct {
	ID          string
	Heading     string
	ContainerID string
	Class       string
	Loaded      bool
	Fragments   []template.HTML
}

// ContactView drives the contact form template. Name, Email and Message
// repopulate the fields; they are empty after a successful send.
//
// Recipient is the address the page falls back to when the post itself
// fails, for example on a static host.
type ContactView struct {
	Action    string
	Recipient string
	Name      string
	Email     string
	Message   string
	Status    string
	Mailto    string
}

type Page struct {
	Profile  ProfileView
	Sections []Section
	Contact  ContactView
	Year     int
}
