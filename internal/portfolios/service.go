package portfolios

import (
	"context"
	"errors"
	"time"

	"wattmarket-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service encapsulates portfolio operations.
type Service struct {
	DB *gorm.DB
}

// PortfolioView is a portfolio with its holdings resolved, newest first.
type PortfolioView struct {
	ID        uint                      `json:"id"`
	UserID    int64                     `json:"user_id"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
	Holdings  []models.PortfolioHolding `json:"holdings"`
}

// EnsurePortfolio returns the user's portfolio, creating the user row and the
// portfolio on first access.
func (s *Service) EnsurePortfolio(ctx context.Context, userID int64) (*models.Portfolio, error) {
	var portfolio *models.Portfolio
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := ensurePortfolioTx(tx, userID)
		portfolio = p
		return err
	})
	if err != nil {
		logUnexpected("ensure portfolio", userID, err)
		return nil, err
	}
	return portfolio, nil
}

// ensurePortfolioTx implements get-or-create. Creates that lose a race to a
// unique index downgrade into a re-read, so concurrent first access stays
// idempotent instead of surfacing a uniqueness violation.
func ensurePortfolioTx(tx *gorm.DB, userID int64) (*models.Portfolio, error) {
	user := models.User{ID: userID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
		return nil, err
	}

	var portfolio models.Portfolio
	err := tx.Where("user_id = ?", userID).First(&portfolio).Error
	if err == nil {
		return &portfolio, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	portfolio = models.Portfolio{UserID: userID}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&portfolio).Error; err != nil {
		return nil, err
	}
	if portfolio.ID == 0 {
		if err := tx.Where("user_id = ?", userID).First(&portfolio).Error; err != nil {
			return nil, err
		}
	}
	log.Info().Int64("user_id", userID).Uint("portfolio_id", portfolio.ID).Msg("Portfolio created")
	return &portfolio, nil
}

// GetPortfolio ensures the portfolio exists and returns it with holdings.
func (s *Service) GetPortfolio(ctx context.Context, userID int64) (*PortfolioView, error) {
	portfolio, err := s.EnsurePortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.ListHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PortfolioView{
		ID:        portfolio.ID,
		UserID:    portfolio.UserID,
		CreatedAt: portfolio.CreatedAt,
		UpdatedAt: portfolio.UpdatedAt,
		Holdings:  holdings,
	}, nil
}

// ListHoldings returns the user's holdings ordered by added_at descending,
// each with its contract resolved.
func (s *Service) ListHoldings(ctx context.Context, userID int64) ([]models.PortfolioHolding, error) {
	holdings := []models.PortfolioHolding{}
	err := s.DB.WithContext(ctx).
		Select("portfolio_holdings.*").
		Joins("JOIN portfolios ON portfolios.id = portfolio_holdings.portfolio_id").
		Where("portfolios.user_id = ?", userID).
		Preload("Contract").
		Order("portfolio_holdings.added_at DESC").
		Order("portfolio_holdings.id DESC").
		Find(&holdings).Error
	if err != nil {
		logUnexpected("list holdings", userID, err)
		return nil, err
	}
	return holdings, nil
}

// AddContract adds a contract to the user's portfolio. Adding a contract the
// portfolio already holds returns the existing holding unchanged.
func (s *Service) AddContract(ctx context.Context, userID int64, contractID uint) (*models.PortfolioHolding, error) {
	var holding *models.PortfolioHolding
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contract models.Contract
		if err := tx.First(&contract, contractID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContractNotFound
			}
			return err
		}

		portfolio, err := ensurePortfolioTx(tx, userID)
		if err != nil {
			return err
		}

		var existing models.PortfolioHolding
		err = tx.Where("portfolio_id = ? AND contract_id = ?", portfolio.ID, contractID).First(&existing).Error
		if err == nil {
			existing.Contract = contract
			holding = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created := models.PortfolioHolding{PortfolioID: portfolio.ID, ContractID: contractID}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		created.Contract = contract
		holding = &created
		log.Info().Int64("user_id", userID).Uint("contract_id", contractID).Uint("holding_id", created.ID).Msg("Contract added to portfolio")
		return nil
	})
	if err != nil {
		logUnexpected("add contract to portfolio", userID, err)
		return nil, err
	}
	return holding, nil
}

// RemoveContract deletes the holding permanently. Removing from a user with
// no portfolio, or a contract not held, reports not-found.
func (s *Service) RemoveContract(ctx context.Context, userID int64, contractID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var portfolio models.Portfolio
		if err := tx.Where("user_id = ?", userID).First(&portfolio).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHoldingNotFound
			}
			return err
		}
		res := tx.Where("portfolio_id = ? AND contract_id = ?", portfolio.ID, contractID).
			Delete(&models.PortfolioHolding{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrHoldingNotFound
		}
		log.Info().Int64("user_id", userID).Uint("contract_id", contractID).Msg("Contract removed from portfolio")
		return nil
	})
	if err != nil {
		logUnexpected("remove contract from portfolio", userID, err)
		return err
	}
	return nil
}
