package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/rogerio-castellano/stock-dashboard/internal/auth"
	"github.com/rogerio-castellano/stock-dashboard/internal/models"
	"github.com/rogerio-castellano/stock-dashboard/internal/repo"
)

// GetUsersHandler godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 403 {object} MessageResponse "Require Admin Role!"
// @Router /api/users [get]
// @Security BearerAuth
func (s *Server) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.userRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("could not fetch users: %v", err)
		writeMessage(w, http.StatusInternalServerError, "could not fetch users")
		return
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	respond(w, http.StatusOK, resp)
}

// CreateUserHandler godoc
// @Summary Create a user with a role
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "New user"
// @Success 201 {object} CreateUserResult
// @Failure 400 {object} MessageResponse "Invalid input"
// @Failure 409 {object} MessageResponse "User exists"
// @Router /api/users [post]
// @Security BearerAuth
func (s *Server) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	if msg := validateCredentials(req.Username, req.Password); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if !role.Valid() {
		writeMessage(w, http.StatusBadRequest, "invalid role")
		return
	}

	created, err := s.createUser(r, req.Username, req.Password, role)
	if err != nil {
		s.writeCreateUserError(w, err)
		return
	}

	respond(w, http.StatusCreated, CreateUserResult{
		Message: "User created",
		User:    toUserResponse(created),
	})
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Tags users
// @Param id path int true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} MessageResponse "Invalid ID"
// @Failure 403 {object} MessageResponse "Cannot delete Admin"
// @Failure 404 {object} MessageResponse "Not found"
// @Router /api/users/{id} [delete]
// @Security BearerAuth
func (s *Server) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	// The seeded admin account is protected whatever id the store gave it.
	admin, err := s.userRepo.GetByUsername(r.Context(), auth.AdminUsername)
	switch {
	case err == nil && admin.ID == id:
		writeMessage(w, http.StatusForbidden, "Cannot delete Admin")
		return
	case err != nil && !errors.Is(err, repo.ErrUserNotFound):
		log.Printf("could not look up admin account: %v", err)
		writeMessage(w, http.StatusInternalServerError, "could not delete user")
		return
	}

	if err := s.userRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			writeMessage(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("could not delete user %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "could not delete user")
		return
	}

	writeMessage(w, http.StatusOK, "User deleted")
}
