package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBookLog is a single income or expenditure record. It is removed
// together with its book; a removed category leaves CategoryID dangling.
type AccountBookLog struct {
	ID          uint            `gorm:"primaryKey"`
	BookID      uint            `gorm:"index;not null"`
	CategoryID  *uint           `gorm:"index"`
	Title       string          `gorm:"size:200;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,0);not null"`
	Description string          `gorm:"size:255"`
	Type        EntryType       `gorm:"column:types;size:200;index;not null;default:expenditure"`
	Status      Status          `gorm:"size:200;index;not null;default:in_use"`
	CreatedAt   time.Time       `gorm:"index"`
	UpdatedAt   time.Time

	Book     AccountBook          `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	Category *AccountBookCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

func (AccountBookLog) TableName() string {
	return "account_book_logs"
}

func (l *AccountBookLog) EntityID() uint        { return l.ID }
func (l *AccountBookLog) EntityKind() string    { return KindAccountBookLog }
func (l *AccountBookLog) CurrentStatus() Status { return l.Status }
func (l *AccountBookLog) SetStatus(s Status)    { l.Status = s }
func (l *AccountBookLog) OwnerNickname() string { return l.Book.User.Nickname }
