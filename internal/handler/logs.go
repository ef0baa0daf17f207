package handler

import (
	"context"
	"net/http"

	"account-book/internal/auth"
	"account-book/internal/service"
	"account-book/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LogHandler serves /api/account-books/logs.
type LogHandler struct {
	Logs *service.LogService
}

func NewLogHandler(logs *service.LogService) *LogHandler {
	return &LogHandler{Logs: logs}
}

type logReq struct {
	BookID      uint             `json:"book_id"`
	CategoryID  uint             `json:"category_id"`
	Title       *string          `json:"title"`
	Types       *string          `json:"types"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

func (r logReq) input() service.LogInput {
	return service.LogInput{
		BookID:      r.BookID,
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Types:       r.Types,
		Price:       r.Price,
		Description: r.Description,
	}
}

// List answers a page of one book's logs with totals over the whole match.
func (h *LogHandler) List(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	bookID, err := queryUint(c, "book_id")
	if err != nil {
		util.Fail(c, err)
		return
	}
	params, err := listParams(c)
	if err != nil {
		util.Fail(c, err)
		return
	}

	page, err := h.Logs.List(c.Request.Context(), ident, service.LogFilters{
		BookID:      bookID,
		CategoryIDs: c.Query("category_id"),
		Types:       c.Query("types"),
	}, params)
	if err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, http.StatusOK, logListResp{
		Nickname:         ident.Nickname,
		ExpectedBudget:   money(page.Book.Budget),
		TotalIncome:      money(page.TotalIncome),
		TotalExpenditure: money(page.TotalExpenditure),
		Logs:             presentLogs(page.Logs),
	})
}

func (h *LogHandler) Create(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	var req logReq
	if err := bindJSON(c, &req); err != nil {
		util.Fail(c, err)
		return
	}

	log, err := h.Logs.Create(c.Request.Context(), ident, req.input())
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusCreated, presentLog(log))
}

func (h *LogHandler) Update(c *gin.Context) {
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
	var req logReq
	if err := bindJSON(c, &req); err != nil {
		util.Fail(c, err)
		return
	}

	log, err := h.Logs.Update(c.Request.Context(), ident, id, req.input())
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, http.StatusOK, presentLog(log))
}

func (h *LogHandler) Delete(c *gin.Context) {
	h.transition(c, h.Logs.Delete)
}

func (h *LogHandler) Restore(c *gin.Context) {
	h.transition(c, h.Logs.Restore)
}

func (h *LogHandler) transition(c *gin.Context, move func(ctx context.Context, ident auth.Identity, bookID, id uint) error) {
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
	bookID, err := queryUint(c, "account_book_id")
	if err != nil {
		util.Fail(c, err)
		return
	}
	if err := move(c.Request.Context(), ident, bookID, id); err != nil {
		util.Fail(c, err)
		return
	}
	util.NoContent(c)
}
