package server

import "net/http"

// requireAccessToken guards game creation and agent moves with a shared
// token when ACCESS_TOKEN is configured. This is deliberately not an auth
// system, just a fence around the endpoints that cost money.
func (s *Server) requireAccessToken(w http.ResponseWriter, r *http.Request) bool {
	if s.cfg.AccessToken == "" {
		return true
	}
	if r.Header.Get("X-Access-Token") != s.cfg.AccessToken {
		writeError(w, http.StatusUnauthorized, "invalid or missing access token")
		return false
	}
	return true
}
