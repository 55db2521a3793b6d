package settings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	FundingFlatFeeKey = "funding_flat_fee"

	cacheKeyFlatFee   = "settings:funding_flat_fee"
	cacheKeyAdminBank = "settings:admin_bank"
)

var ErrSettingNotFound = fmt.Errorf("setting does not exist")

// SettingsService serves small, hot reference data (the flat processing fee
// and the company receiving account) through an in-process cache.
type SettingsService struct {
	store  *store.Store
	logger *logging.Logger
	cache  *cache.Cache
}

func NewSettingsService(store *store.Store, logger *logging.Logger) *SettingsService {
	return &SettingsService{
		store:  store,
		logger: logger,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetFundingFlatFee returns the flat fee added to every funding request.
// The fee is charged on top of the entered amount and never credited.
func (s *SettingsService) GetFundingFlatFee(ctx context.Context) (decimal.Decimal, error) {
	if cached, found := s.cache.Get(cacheKeyFlatFee); found {
		return cached.(decimal.Decimal), nil
	}

	setting, err := s.store.GetSetting(ctx, FundingFlatFeeKey)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrSettingNotFound
	} else if err != nil {
		return decimal.Zero, err
	}

	fee, err := decimal.NewFromString(setting.Value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("flat fee setting is not a valid amount: %w", err)
	}

	s.cache.Set(cacheKeyFlatFee, fee, cache.DefaultExpiration)
	return fee, nil
}

func (s *SettingsService) SetFundingFlatFee(ctx context.Context, fee decimal.Decimal) error {
	_, err := s.store.UpsertSetting(ctx, store.UpsertSettingParams{
		Key:   FundingFlatFeeKey,
		Value: fee.StringFixed(2),
	})
	if err != nil {
		return err
	}

	s.cache.Delete(cacheKeyFlatFee)
	return nil
}

// GetAdminBankDetail returns the receiving account shown on the manual
// transfer screen.
func (s *SettingsService) GetAdminBankDetail(ctx context.Context) (*store.BankDetail, error) {
	if cached, found := s.cache.Get(cacheKeyAdminBank); found {
		detail := cached.(store.BankDetail)
		return &detail, nil
	}

	detail, err := s.store.GetAdminBankDetail(ctx)
	if err == sql.ErrNoRows {
		return nil, ErrSettingNotFound
	} else if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKeyAdminBank, detail, cache.DefaultExpiration)
	return &detail, nil
}

func (s *SettingsService) SetAdminBankDetail(ctx context.Context, bankName, accountName, accountNumber string) (*store.BankDetail, error) {
	detail, err := s.store.UpsertBankDetail(ctx, store.UpsertBankDetailParams{
		OwnerID:       sql.NullInt64{},
		BankName:      bankName,
		AccountName:   accountName,
		AccountNumber: accountNumber,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Delete(cacheKeyAdminBank)
	return &detail, nil
}
