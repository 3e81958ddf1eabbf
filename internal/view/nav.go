package view

import (
	"strconv"

	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/hoaxify/internal/auth"
	"github.com/patric-chuzhbe/hoaxify/internal/i18n"
)

// Link is one NavBar entry. Post links are rendered as a form button.
type Link struct {
	Href     string
	LabelKey string
	Post     bool
}

type navEntry struct {
	link     Link
	loggedIn bool
	always   bool
}

var navEntries = []navEntry{
	{link: Link{Href: "/", LabelKey: i18n.KeyHome}, always: true},
	{link: Link{Href: "/login", LabelKey: i18n.KeyLogin}},
	{link: Link{Href: "/signup", LabelKey: i18n.KeySignUp}},
	{link: Link{LabelKey: i18n.KeyMyProfile}, loggedIn: true},
	{link: Link{Href: "/logout", LabelKey: i18n.KeyLogout, Post: true}, loggedIn: true},
}

// NavLinks returns the links visible for the given session.
func NavLinks(session auth.Session) []Link {
	visible := funk.Filter(navEntries, func(entry navEntry) bool {
		return entry.always || entry.loggedIn == session.IsLoggedIn
	}).([]navEntry)

	return funk.Map(visible, func(entry navEntry) Link {
		if entry.link.LabelKey == i18n.KeyMyProfile {
			entry.link.Href = "/user/" + strconv.FormatInt(session.ID, 10)
		}
		return entry.link
	}).([]Link)
}
