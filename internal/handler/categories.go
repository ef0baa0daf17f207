package handler

import (
	"context"
	"net/http"

	"account-book/internal/auth"
	"account-book/internal/service"
	"account-book/internal/util"

	"github.com/gin-gonic/gin"
)

// idTransition is a lifecycle move addressed by the entity id alone.
type idTransition func(ctx context.Context, ident auth.Identity, id uint) error

// CategoryHandler serves /api/account-books/categories.
type CategoryHandler struct {
	Categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type categoryReq struct {
	Name *string `json:"name"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	params, err := listParams(c)
	if err != nil {
		util.Fail(c, err)
		return
	}

	categories, err := h.Categories.List(c.Request.Context(), ident, params)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusOK, presentCategories(categories))
}

func (h *CategoryHandler) Create(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	var req categoryReq
	if err := bindJSON(c, &req); err != nil {
		util.Fail(c, err)
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), ident, req.Name)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusCreated, presentCategory(category))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		util.Fail(c, err)
		return
	}
	var req categoryReq
	if err := bindJSON(c, &req); err != nil {
		util.Fail(c, err)
		return
	}

	category, err := h.Categories.Update(c.Request.Context(), ident, id, req.Name)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusOK, presentCategory(category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	h.transition(c, h.Categories.Delete)
}

func (h *CategoryHandler) Restore(c *gin.Context) {
	h.transition(c, h.Categories.Restore)
}

func (h *CategoryHandler) transition(c *gin.Context, move idTransition) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		util.Fail(c, err)
		return
	}
	if err := move(c.Request.Context(), ident, id); err != nil {
		util.Fail(c, err)
		return
	}
	util.NoContent(c)
}
