package models

import (
	"time"
)

// User is identified by an externally supplied id; there is no registration
// flow. Rows are created implicitly by the first portfolio operation that
// references the id.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Portfolio is the single per-user basket of held contracts, created lazily
// on first access.
type Portfolio struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}

// PortfolioHolding is a (portfolio, contract) membership record. A contract
// appears at most once per portfolio; deleting either side removes the row.
type PortfolioHolding struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	PortfolioID uint      `gorm:"column:portfolio_id;not null;uniqueIndex:uniq_portfolio_contract" json:"portfolio_id"`
	ContractID  uint      `gorm:"column:contract_id;not null;uniqueIndex:uniq_portfolio_contract" json:"contract_id"`
	Portfolio   Portfolio `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Contract    Contract  `gorm:"constraint:OnDelete:CASCADE" json:"contract"`
	AddedAt     time.Time `gorm:"column:added_at;autoCreateTime" json:"added_at"`
}

func (PortfolioHolding) TableName() string {
	return "portfolio_holdings"
}
