package auth

type Session struct {
	IsLoggedIn bool
	ID         int64
	Username   string
}

type Service struct {
	state Session
}

func (s *Service) LoginSuccess(id int64, username string) {
	s.state.IsLoggedIn = true
	s.state.ID = id
	s.state.Username = username
}

func (s *Service) State() Session {
	return s.state
}
