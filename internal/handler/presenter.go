package handler

import (
	"encoding/json"
	"time"

	"account-book/internal/models"

	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02 15:04"

type userResp struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type bookResp struct {
	ID       uint        `json:"id"`
	Nickname string      `json:"nickname"`
	Name     string      `json:"name"`
	Budget   json.Number `json:"budget"`
	Status   string      `json:"status"`
}

type categoryResp struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
	Name     string `json:"name"`
	Status   string `json:"status"`
}

type logResp struct {
	ID          uint        `json:"id"`
	Book        string      `json:"book"`
	Category    *string     `json:"category"`
	Title       string      `json:"title"`
	Types       string      `json:"types"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

type logListResp struct {
	Nickname         string      `json:"nickname"`
	ExpectedBudget   json.Number `json:"expected_budget"`
	TotalIncome      json.Number `json:"total_income"`
	TotalExpenditure json.Number `json:"total_expenditure"`
	Logs             []logResp   `json:"logs"`
}

// money renders a decimal as a bare JSON number.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func presentUser(u *models.User) userResp {
	return userResp{ID: u.ID, Email: u.Email, Nickname: u.Nickname}
}

func presentBook(b *models.AccountBook) bookResp {
	return bookResp{
		ID:       b.ID,
		Nickname: b.OwnerNickname(),
		Name:     b.Name,
		Budget:   money(b.Budget),
		Status:   string(b.Status),
	}
}

func presentCategory(c *models.AccountBookCategory) categoryResp {
	return categoryResp{
		ID:       c.ID,
		Nickname: c.OwnerNickname(),
		Name:     c.Name,
		Status:   string(c.Status),
	}
}

// categoryName is nil when the category is gone or soft-deleted.
func categoryName(l *models.AccountBookLog) *string {
	if l.Category == nil || l.Category.Status == models.StatusDeleted {
		return nil
	}
	name := l.Category.Name
	return &name
}

func presentLog(l *models.AccountBookLog) logResp {
	return logResp{
		ID:          l.ID,
		Book:        l.Book.Name,
		Category:    categoryName(l),
		Title:       l.Title,
		Types:       string(l.Type),
		Price:       money(l.Price),
		Description: l.Description,
		Status:      string(l.Status),
		CreatedAt:   formatTime(l.CreatedAt),
		UpdatedAt:   formatTime(l.UpdatedAt),
	}
}

func presentBooks(books []models.AccountBook) []bookResp {
	out := make([]bookResp, 0, len(books))
	for i := range books {
		out = append(out, presentBook(&books[i]))
	}
	return out
}

func presentCategories(categories []models.AccountBookCategory) []categoryResp {
	out := make([]categoryResp, 0, len(categories))
	for i := range categories {
		out = append(out, presentCategory(&categories[i]))
	}
	return out
}

func presentLogs(logs []models.AccountBookLog) []logResp {
	out := make([]logResp, 0, len(logs))
	for i := range logs {
		out = append(out, presentLog(&logs[i]))
	}
	return out
}
