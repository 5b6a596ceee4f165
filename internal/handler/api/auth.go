package api

import (
	"net/http"

	"roadready/internal/domain/auth"
	reqdto "roadready/internal/handler/dto/request"
	resdto "roadready/internal/handler/dto/response"
	"roadready/internal/handler/httperr"
	"roadready/internal/pkg/config"
	"roadready/internal/pkg/cookie"
	"roadready/internal/pkg/errs"
	"roadready/internal/usecase/commands"
	"roadready/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds   commands.AuthCommands
	users  queries.UserQueries
	tokens commands.TokenIssuer
	cookie config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, tokens commands.TokenIssuer, cfg config.Config) *AuthHandler {
	return &AuthHandler{cmds: cmds, users: users, tokens: tokens, cookie: cfg.Cookie}
}

// @Summary Register
// @Description Create a customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.Register(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	// the new account reads itself back
	view, err := h.users.GetByID(c.Request.Context(), result.UserID, auth.NewPrincipal(result.UserID))
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	res, err := resdto.FromUserView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.Header("Location", "/api/user/"+result.UserID.String())
	c.JSON(http.StatusCreated, res)
}

// @Summary User login
// @Description Login with email and password. The token is returned in the body and in the access_token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.Login(c.Request.Context(), req.ToCommand())
	if err != nil {
		if errs.Is(err, auth.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
			return
		}
		httperr.AbortWithKind(c, err, nil)
		return
	}
	view, err := h.users.GetByID(c.Request.Context(), result.UserID, auth.NewPrincipal(result.UserID, result.Role))
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	userRes, err := resdto.FromUserView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	cookie.SetAccessToken(c, h.cookie, result.AccessToken, h.tokens.TokenDuration())
	c.JSON(http.StatusOK, resdto.LoginResponse{AccessToken: result.AccessToken, User: userRes})
}

// @Summary User logout
// @Description Clears the access_token cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// tokens are stateless; dropping the cookie is all the server can do
	cookie.ClearAccessToken(c, h.cookie)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	view, err := h.users.GetCurrentUser(c.Request.Context(), principalOf(c))
	if err != nil {
		httperr.AbortWithKind(c, err, nil)
		return
	}
	res, err := resdto.FromUserView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
