package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBook is a named ledger with an owner and a budget ceiling.
type AccountBook struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null"`
	Name      string          `gorm:"size:200;not null"`
	Budget    decimal.Decimal `gorm:"type:decimal(10,0);not null"`
	Status    Status          `gorm:"size:200;index;not null;default:in_use"`
	CreatedAt time.Time       `gorm:"index"`
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (AccountBook) TableName() string {
	return "account_books"
}

func (b *AccountBook) EntityID() uint        { return b.ID }
func (b *AccountBook) EntityKind() string    { return KindAccountBook }
func (b *AccountBook) CurrentStatus() Status { return b.Status }
func (b *AccountBook) SetStatus(s Status)    { b.Status = s }
func (b *AccountBook) OwnerNickname() string { return b.User.Nickname }
