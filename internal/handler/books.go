package handler

import (
	"net/http"

	"account-book/internal/service"
	"account-book/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BookHandler serves /api/account-books.
type BookHandler struct {
	Books *service.BookService
}

func NewBookHandler(books *service.BookService) *BookHandler {
	return &BookHandler{Books: books}
}

type bookReq struct {
	Name   *string          `json:"name"`
	Budget *decimal.Decimal `json:"budget"`
}

func (r bookReq) input() service.BookInput {
	return service.BookInput{Name: r.Name, Budget: r.Budget}
}

func (h *BookHandler) List(c *gin.Context) {
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

	books, err := h.Books.List(c.Request.Context(), ident, params)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusOK, presentBooks(books))
}

func (h *BookHandler) Create(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	var req bookReq
	if err := bindJSON(c, &req); err != nil {
		util.Fail(c, err)
		return
	}

	book, err := h.Books.Create(c.Request.Context(), ident, req.input())
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusCreated, presentBook(book))
}

func (h *BookHandler) Update(c *gin.Context) {
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
	var req bookReq
	if err := bindJSON(c, &req); err != nil {
		util.Fail(c, err)
		return
	}

	book, err := h.Books.Update(c.Request.Context(), ident, id, req.input())
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusOK, presentBook(book))
}

func (h *BookHandler) Delete(c *gin.Context) {
	h.transition(c, h.Books.Delete)
}

func (h *BookHandler) Restore(c *gin.Context) {
	h.transition(c, h.Books.Restore)
}

func (h *BookHandler) transition(c *gin.Context, move idTransition) {
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
