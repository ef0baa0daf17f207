package models

import "time"

// AccountBookCategory is a user-defined label attachable to log entries.
// It is owned by a user independently of any book.
type AccountBookCategory struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:200;not null"`
	Status    Status    `gorm:"size:200;index;not null;default:in_use"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (AccountBookCategory) TableName() string {
	return "account_book_categories"
}

func (c *AccountBookCategory) EntityID() uint        { return c.ID }
func (c *AccountBookCategory) EntityKind() string    { return KindAccountBookCategory }
func (c *AccountBookCategory) CurrentStatus() Status { return c.Status }
func (c *AccountBookCategory) SetStatus(s Status)    { c.Status = s }
func (c *AccountBookCategory) OwnerNickname() string { return c.User.Nickname }
