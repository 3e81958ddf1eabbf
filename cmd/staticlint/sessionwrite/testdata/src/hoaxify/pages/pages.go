package pages

import "hoaxify/internal/auth"

type profile struct {
	Username string
}

func render(service *auth.Service) string {
	session := service.State()
	session.Username = "someone else" // want "auth.Session is changed only through session service commits"
	session.ID++                      // want "auth.Session is changed only through session service commits"

	ptr := &session
	ptr.IsLoggedIn = false // want "auth.Session is changed only through session service commits"

	fresh := auth.Session{Username: "guest"}

	p := profile{}
	p.Username = session.Username

	return fresh.Username + p.Username
}
