package handler

import (
	"net/http"
	"time"

	"account-book/internal/middleware"
	"account-book/internal/service"
	"account-book/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves sign-up and login.
type AuthHandler struct {
	Users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

type signUpReq struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpReq
	if err := bindJSON(c, &req); err != nil {
		util.Fail(c, err)
		return
	}

	user, err := h.Users.SignUp(c.Request.Context(), service.SignUpInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusCreated, presentUser(user))
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login answers the credential in the body and also sets it as an
// HTTP-only cookie for browser downloads.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := bindJSON(c, &req); err != nil {
		util.Fail(c, err)
		return
	}

	session, err := h.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		util.Fail(c, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge > 0 {
		c.SetCookie(middleware.TokenCookie, session.Token, maxAge, "/", "", false, true)
	}

	util.Success(c, http.StatusOK, util.Response{
		"token":      session.Token,
		"expires_at": session.ExpiresAt.UTC().Format(time.RFC3339),
		"user":       presentUser(session.User),
	})
}
