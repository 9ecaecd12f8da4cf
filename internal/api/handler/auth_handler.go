package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vault42/console/internal/core/domain"
	"github.com/vault42/console/internal/core/ports"
)

// AuthHandler exposes sign-in, registration and the session itself.
type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionService
}

func NewAuthHandler(authService ports.AuthService, sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenLoginRequest struct {
	Token string `json:"token" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	MobileNo string `json:"mobile_no" validate:"required"`
}

type otpRequest struct {
	OTP  string `json:"otp" validate:"required,len=6,numeric"`
	Mode string `json:"mode"`
}

type updateSessionRequest struct {
	Name      *string `json:"name"`
	AccountNo *string `json:"account_no"`
}

type sessionResponse struct {
	Redirect string          `json:"redirect,omitempty"`
	Session  *domain.Session `json:"session,omitempty"`
}

// Login exchanges credentials for a session.
//
// @Summary      Sign in with email and password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /session/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	redirect, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.withSession(redirect))
}

// LoginWithToken installs an access token obtained elsewhere.
//
// @Summary      Sign in with an existing access token
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      tokenLoginRequest  true  "Token and email"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Router       /session/token [post]
func (h *AuthHandler) LoginWithToken(c echo.Context) error {
	var req tokenLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	redirect, err := h.sessions.Login(c.Request().Context(), req.Token, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.withSession(redirect))
}

// Session returns the current session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  domain.Session
// @Failure      401  {object}  map[string]string
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	sess, ok := h.sessions.Current()
	if !ok {
		return domain.ErrNoSession
	}
	return c.JSON(http.StatusOK, sess)
}

// UpdateSession merges profile fields into the session.
//
// @Summary      Update session profile fields
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      updateSessionRequest  true  "Fields to change"
// @Success      200   {object}  domain.Session
// @Failure      401   {object}  map[string]string
// @Router       /session [patch]
func (h *AuthHandler) UpdateSession(c echo.Context) error {
	var req updateSessionRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid payload")
	}
	if _, ok := h.sessions.Current(); !ok {
		return domain.ErrNoSession
	}

	h.sessions.UpdateUser(c.Request().Context(), domain.SessionUpdate{Name: req.Name, AccountNo: req.AccountNo})
	sess, _ := h.sessions.Current()
	return c.JSON(http.StatusOK, sess)
}

// Logout ends the session and clears the chat transcript.
//
// @Summary      Sign out
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, sessionResponse{Redirect: domain.RouteLogin})
}

// Register creates a customer account and starts OTP verification.
//
// @Summary      Register a customer
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	redirect, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.MobileNo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionResponse{Redirect: redirect})
}

// VerifyOTP completes registration or login verification.
//
// @Summary      Verify a one-time password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      otpRequest  true  "Six digit code"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /otp/verify [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req otpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	redirect, err := h.authService.VerifyOTP(c.Request().Context(), req.OTP, req.Mode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Redirect: redirect})
}

func (h *AuthHandler) withSession(redirect string) sessionResponse {
	resp := sessionResponse{Redirect: redirect}
	if sess, ok := h.sessions.Current(); ok {
		resp.Session = &sess
	}
	return resp
}
