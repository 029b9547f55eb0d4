package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract is a tradable energy supply instrument.
type Contract struct {
	ID            uint            `gorm:"column:id;primaryKey" json:"id"`
	EnergyType    EnergyType      `gorm:"column:energy_type;type:varchar(50);not null" json:"energy_type"`
	QuantityMWh   decimal.Decimal `gorm:"column:quantity_mwh;type:numeric(18,3);not null" json:"quantity_mwh"`
	PricePerMWh   decimal.Decimal `gorm:"column:price_per_mwh;type:numeric(18,6);not null" json:"price_per_mwh"`
	DeliveryStart Date            `gorm:"column:delivery_start;type:date;not null" json:"delivery_start"`
	DeliveryEnd   Date            `gorm:"column:delivery_end;type:date;not null" json:"delivery_end"`
	Location      string          `gorm:"column:location;type:varchar(80);not null" json:"location"`
	Status        ContractStatus  `gorm:"column:status;type:varchar(20);not null;default:'Available'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Contract) TableName() string {
	return "contracts"
}

// DurationDays is the delivery window length counting both endpoints.
func (c *Contract) DurationDays() int {
	return c.DeliveryStart.DaysInclusive(c.DeliveryEnd)
}
