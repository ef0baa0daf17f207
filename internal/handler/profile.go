package handler

import (
	"net/http"

	"account-book/internal/service"
	"account-book/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves /api/users/me.
type ProfileHandler struct {
	Users *service.UserService
}

func NewProfileHandler(users *service.UserService) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}

	user, err := h.Users.Profile(c.Request.Context(), ident)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusOK, presentUser(user))
}

type profileReq struct {
	Nickname    *string `json:"nickname"`
	OldPassword string  `json:"old_password"`
	NewPassword string  `json:"new_password"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	var req profileReq
	if err := bindJSON(c, &req); err != nil {
		util.Fail(c, err)
		return
	}

	user, err := h.Users.UpdateProfile(c.Request.Context(), ident, service.ProfileInput{
		Nickname:    req.Nickname,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusOK, presentUser(user))
}
