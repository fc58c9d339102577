package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/rogerio-castellano/stock-dashboard/internal/auth"
	"github.com/rogerio-castellano/stock-dashboard/internal/models"
	"github.com/rogerio-castellano/stock-dashboard/internal/repo"
)

// RegisterHandler godoc
// @Summary Register a new employee account
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} MessageResponse "Invalid input"
// @Failure 409 {object} MessageResponse "User exists"
// @Router /api/auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	if msg := validateCredentials(creds.Username, creds.Password); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	// Self-registration never grants admin; admins pick roles via /api/users.
	if _, err := s.createUser(r, creds.Username, creds.Password, models.RoleEmployee); err != nil {
		s.writeCreateUserError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully")
}

// LoginHandler godoc
// @Summary Authenticate user and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} MessageResponse "Invalid input"
// @Failure 401 {object} MessageResponse "Invalid Password"
// @Failure 404 {object} MessageResponse "User not found"
// @Router /api/auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds CredentialsRequest
	if err := readJSON(w, r, &creds); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	result, err := s.authService.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownIdentity):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrBadSecret):
			writeMessage(w, http.StatusUnauthorized, "Invalid Password")
		default:
			log.Printf("login failed for %q: %v", creds.Username, err)
			writeMessage(w, http.StatusInternalServerError, "Error logging in")
		}
		return
	}

	respond(w, http.StatusOK, LoginResult{
		Id:          result.User.ID,
		Username:    result.User.Username,
		Role:        result.User.Role,
		AccessToken: result.Token,
	})
}

func (s *Server) createUser(r *http.Request, username, password string, role models.Role) (models.User, error) {
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	return s.userRepo.CreateUser(r.Context(), models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
		CreatedAt:    s.now(),
	})
}

func (s *Server) writeCreateUserError(w http.ResponseWriter, err error) {
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		writeMessage(w, http.StatusConflict, "username already exists")
		return
	}
	log.Printf("failed to create user: %v", err)
	writeMessage(w, http.StatusInternalServerError, "Error registering user")
}
