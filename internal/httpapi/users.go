package httpapi

import "net/http"

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
