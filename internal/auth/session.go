// Package auth owns the client's authentication session: who is logged in
// and the Authorization header to send to the backend. The session changes
// only through the Service commits and is saved after each of them.
package auth

import "github.com/patric-chuzhbe/hoaxify/internal/models"

// Session is the client-held record of authentication status and identity.
// A logged-out session never carries an ID.
type Session struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	ID         int64  `json:"id,omitempty"`
	Username   string `json:"username,omitempty"`
	Image      string `json:"image,omitempty"`
	Header     string `json:"header,omitempty"`
}

// LoginData is the payload of the loginSuccess commit.
type LoginData struct {
	ID       int64
	Username string
	Image    string
	Header   string
}

// LoginDataFromResponse converts a successful login body into commit data.
func LoginDataFromResponse(resp *models.LoginResponse) LoginData {
	return LoginData{
		ID:       resp.ID,
		Username: resp.Username,
		Image:    resp.Image,
		Header:   "Bearer " + resp.Token,
	}
}

// normalize re-establishes the logged-out invariant.
func (s *Session) normalize() {
	if !s.IsLoggedIn {
		s.ID = 0
	}
}
