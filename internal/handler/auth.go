package handler

import (
	"net/http"

	"github.com/shortlist-dev/shortlister/internal/domain"
)

type signupInitRequest struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

type signupVerifyRequest struct {
	Email string `validate:"required,email" json:"email"`
	Otp   string `validate:"required" json:"otp"`
}

type loginRequest struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

type loginResponse struct {
	Token  string        `json:"token"`
	Name   string        `json:"name"`
	UserId domain.UserId `json:"user_id"`
}

func (h *Handler) SignupInit(w http.ResponseWriter, r *http.Request) {
	var req signupInitRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.auth.SignupInit(req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *Handler) SignupVerify(w http.ResponseWriter, r *http.Request) {
	var req signupVerifyRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	msg, err := h.auth.SignupVerify(req.Email, req.Otp)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:  result.Token,
		Name:   result.Name,
		UserId: result.UserId,
	})
}
