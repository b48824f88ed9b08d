package httpapi

import "net/http"

func (s *Server) handleListPlanets(w http.ResponseWriter, r *http.Request) {
	planets, err := s.planets.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planets)
}

func (s *Server) handleGetPlanet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	planet, err := s.planets.Get(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, planet)
}
