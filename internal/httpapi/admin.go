package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"holocron/internal/apperror"
	"holocron/internal/models"
	"holocron/internal/store"
)

type planetRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type characterRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	EyeColor    *string `json:"eyeColor"`
}

type userRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsActive *bool  `json:"isActive"`
}

// adminRoutes mounts the catalogue maintenance endpoints.
func (s *Server) adminRoutes(r *mux.Router) {
	r.HandleFunc("/admin/planets", s.handleCreatePlanet).Methods(http.MethodPost)
	r.HandleFunc("/admin/planets/{id:[0-9]+}", s.handleDeletePlanet).Methods(http.MethodDelete)
	r.HandleFunc("/admin/characters", s.handleCreateCharacter).Methods(http.MethodPost)
	r.HandleFunc("/admin/characters/{id:[0-9]+}", s.handleDeleteCharacter).Methods(http.MethodDelete)
	r.HandleFunc("/admin/users", s.handleCreateUser).Methods(http.MethodPost)
	r.HandleFunc("/admin/users/{id:[0-9]+}", s.handleDeleteUser).Methods(http.MethodDelete)
}

func (s *Server) handleCreatePlanet(w http.ResponseWriter, r *http.Request) {
	var req planetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	planet, err := s.planets.Create(r.Context(), models.Planet{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, planet)
}

func (s *Server) handleDeletePlanet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	planet, err := s.planets.Delete(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, msgNothingToDelete)
		return
	}
	writeJSON(w, http.StatusOK, planet)
}

func (s *Server) handleCreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req characterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	character, err := s.characters.Create(r.Context(), models.Character{
		Name:        req.Name,
		Description: req.Description,
		EyeColor:    req.EyeColor,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, character)
}

func (s *Server) handleDeleteCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	character, err := s.characters.Delete(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, msgNothingToDelete)
		return
	}
	writeJSON(w, http.StatusOK, character)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, r, apperror.NewBadRequestError("email and password are required", nil))
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := s.users.Create(r.Context(), req.Email, req.Password, isActive)
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			err = apperror.NewConflictError(msgEmailRegistered, err)
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := s.users.Delete(r.Context(), id)
	if err != nil {
		writeLookupError(w, r, err, msgNothingToDelete)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
