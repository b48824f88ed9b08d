package httpapi

import "net/http"

func (s *Server) handleListCharacters(w http.ResponseWriter, r *http.Request) {
	characters, err := s.characters.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, characters)
}

func (s *Server) handleGetCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	character, err := s.characters.Get(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, character)
}
