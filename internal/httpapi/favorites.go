package httpapi

import (
	"net/http"

	"holocron/internal/apperror"
	"holocron/internal/identity"
	"holocron/internal/logging"
	"holocron/internal/models"
)

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.favorites.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favorites)
}

func (s *Server) handleAddPlanetFavorite(w http.ResponseWriter, r *http.Request) {
	s.addFavorite(w, r, models.TargetPlanet, "planet_id")
}

func (s *Server) handleAddCharacterFavorite(w http.ResponseWriter, r *http.Request) {
	s.addFavorite(w, r, models.TargetCharacter, "character_id")
}

func (s *Server) handleRemovePlanetFavorite(w http.ResponseWriter, r *http.Request) {
	s.removeFavorite(w, r, models.TargetPlanet, "planet_id")
}

func (s *Server) handleRemoveCharacterFavorite(w http.ResponseWriter, r *http.Request) {
	s.removeFavorite(w, r, models.TargetCharacter, "character_id")
}

// callerTarget collects the caller id placed by the identity middleware and the
// favorite target named in the path.
func callerTarget(r *http.Request, kind models.TargetKind, param string) (int64, models.Target, error) {
	userID, ok := identity.UserID(r.Context())
	if !ok {
		return 0, models.Target{}, apperror.NewAuthError("unauthorized", identity.ErrMissingToken)
	}
	id, err := pathID(r, param)
	if err != nil {
		return 0, models.Target{}, err
	}
	return userID, models.Target{Kind: kind, ID: id}, nil
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request, kind models.TargetKind, param string) {
	userID, target, err := callerTarget(r, kind, param)
	if err != nil {
		writeError(w, r, err)
		return
	}

	favorite, err := s.favorites.Add(r.Context(), userID, target)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logging.WithContext(r.Context()).Info().
		Int64("favorite_id", favorite.ID).
		Stringer("target", target).
		Msg("favorite added")
	writeJSON(w, http.StatusOK, favorite)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request, kind models.TargetKind, param string) {
	userID, target, err := callerTarget(r, kind, param)
	if err != nil {
		writeError(w, r, err)
		return
	}

	favorite, err := s.favorites.Remove(r.Context(), userID, target)
	if err != nil {
		writeLookupError(w, r, err, msgNothingToDelete)
		return
	}

	logging.WithContext(r.Context()).Info().
		Int64("favorite_id", favorite.ID).
		Stringer("target", target).
		Msg("favorite removed")
	writeJSON(w, http.StatusOK, favorite)
}
