// Package servicetest provides in-memory fakes for the store and collaborator
// interfaces so service behavior can be exercised without a database.
package servicetest

import (
	"context"
	"time"

	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
	"github.com/jinzhu/gorm"
)

// Transactor runs the callback directly; the fakes apply writes immediately.
type Transactor struct{}

// Tx implements core.Transactor.
func (t *Transactor) Tx(fn func(tx *db.DB) error) error {
	return fn(nil)
}

// BlockService reports a settable fixed block height.
type BlockService struct {
	Block int64
}

// CurrentBlock implements core.IBlockService.
func (s *BlockService) CurrentBlock(ctx context.Context) (int64, error) {
	return s.Block, nil
}

// GetBlock implements core.IBlockService.
func (s *BlockService) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return s.Block, nil
}

func copyMarket(m *core.Market) *core.Market {
	c := *m
	c.Normalize()
	c.BorrowCap = m.BorrowCap.Clone()
	c.BaseRate = m.BaseRate.Clone()
	c.Multiplier = m.Multiplier.Clone()
	c.JumpMultiplier = m.JumpMultiplier.Clone()
	c.Kink = m.Kink.Clone()
	c.TotalDeposits = m.TotalDeposits.Clone()
	c.TotalBorrows = m.TotalBorrows.Clone()
	c.TotalShares = m.TotalShares.Clone()
	c.Reserves = m.Reserves.Clone()
	c.BorrowIndex = m.BorrowIndex.Clone()
	c.SupplyIndex = m.SupplyIndex.Clone()
	return &c
}

// MarketStore is an in-memory core.IMarketStore.
type MarketStore struct {
	Markets map[string]*core.Market
}

// NewMarketStore new market store fake
func NewMarketStore() *MarketStore {
	return &MarketStore{Markets: make(map[string]*core.Market)}
}

// Add seeds a market.
func (s *MarketStore) Add(m *core.Market) {
	m.Normalize()
	s.Markets[m.AssetID] = m
}

func (s *MarketStore) Create(ctx context.Context, tx *db.DB, market *core.Market) error {
	if _, ok := s.Markets[market.AssetID]; ok {
		return gorm.ErrInvalidSQL
	}
	s.Markets[market.AssetID] = copyMarket(market)
	return nil
}

func (s *MarketStore) Find(ctx context.Context, assetID string) (*core.Market, error) {
	m, ok := s.Markets[assetID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyMarket(m), nil
}

func (s *MarketStore) FindBySymbol(ctx context.Context, symbol string) (*core.Market, error) {
	for _, m := range s.Markets {
		if m.Symbol == symbol {
			return copyMarket(m), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *MarketStore) All(ctx context.Context) ([]*core.Market, error) {
	markets := make([]*core.Market, 0, len(s.Markets))
	for _, m := range s.Markets {
		markets = append(markets, copyMarket(m))
	}
	return markets, nil
}

func (s *MarketStore) AllAsMap(ctx context.Context) (map[string]*core.Market, error) {
	maps := make(map[string]*core.Market, len(s.Markets))
	for id, m := range s.Markets {
		maps[id] = copyMarket(m)
	}
	return maps, nil
}

func (s *MarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	market.Version++
	s.Markets[market.AssetID] = copyMarket(market)
	return nil
}

func copyPosition(p *core.Position) *core.Position {
	c := *p
	c.Normalize()
	c.DepositShares = c.DepositShares.Clone()
	c.BorrowPrincipal = c.BorrowPrincipal.Clone()
	c.BorrowIndex = c.BorrowIndex.Clone()
	return &c
}

// PositionStore is an in-memory core.IPositionStore.
type PositionStore struct {
	Positions []*core.Position
	nextID    uint64
}

// NewPositionStore new position store fake
func NewPositionStore() *PositionStore {
	return &PositionStore{}
}

func (s *PositionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	for _, p := range s.Positions {
		if p.UserID == userID && p.AssetID == assetID {
			return copyPosition(p), nil
		}
	}
	p := &core.Position{UserID: userID, AssetID: assetID}
	p.Normalize()
	return p, nil
}

func (s *PositionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var positions []*core.Position
	for _, p := range s.Positions {
		if p.UserID == userID {
			positions = append(positions, copyPosition(p))
		}
	}
	return positions, nil
}

func (s *PositionStore) FindByAsset(ctx context.Context, assetID string) ([]*core.Position, error) {
	var positions []*core.Position
	for _, p := range s.Positions {
		if p.AssetID == assetID {
			positions = append(positions, copyPosition(p))
		}
	}
	return positions, nil
}

func (s *PositionStore) CountCollateralAssets(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, p := range s.Positions {
		if p.UserID == userID && !p.DepositShares.IsZero() {
			count++
		}
	}
	return count, nil
}

func (s *PositionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		s.nextID++
		position.ID = s.nextID
		s.Positions = append(s.Positions, copyPosition(position))
		return nil
	}
	for i, p := range s.Positions {
		if p.ID == position.ID {
			position.Version++
			s.Positions[i] = copyPosition(position)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// WalletStore is an in-memory core.IWalletStore.
type WalletStore struct {
	Balances []*core.WalletBalance
	nextID   uint64
}

// NewWalletStore new wallet store fake
func NewWalletStore() *WalletStore {
	return &WalletStore{}
}

// Set seeds a balance.
func (s *WalletStore) Set(userID, assetID string, balance *uint256.Int) {
	for _, b := range s.Balances {
		if b.UserID == userID && b.AssetID == assetID {
			b.Balance = balance.Clone()
			return
		}
	}
	s.nextID++
	s.Balances = append(s.Balances, &core.WalletBalance{
		ID:      s.nextID,
		UserID:  userID,
		AssetID: assetID,
		Balance: balance.Clone(),
	})
}

// Balance reads a balance, zero when absent.
func (s *WalletStore) Balance(userID, assetID string) *uint256.Int {
	for _, b := range s.Balances {
		if b.UserID == userID && b.AssetID == assetID {
			return b.Balance.Clone()
		}
	}
	return uint256.NewInt(0)
}

func (s *WalletStore) Find(ctx context.Context, userID, assetID string) (*core.WalletBalance, error) {
	for _, b := range s.Balances {
		if b.UserID == userID && b.AssetID == assetID {
			c := *b
			c.Balance = b.Balance.Clone()
			return &c, nil
		}
	}
	return &core.WalletBalance{UserID: userID, AssetID: assetID, Balance: uint256.NewInt(0)}, nil
}

func (s *WalletStore) FindByUser(ctx context.Context, userID string) ([]*core.WalletBalance, error) {
	var balances []*core.WalletBalance
	for _, b := range s.Balances {
		if b.UserID == userID {
			c := *b
			c.Balance = b.Balance.Clone()
			balances = append(balances, &c)
		}
	}
	return balances, nil
}

func (s *WalletStore) Save(ctx context.Context, tx *db.DB, balance *core.WalletBalance) error {
	if balance.ID == 0 {
		s.nextID++
		balance.ID = s.nextID
		c := *balance
		c.Balance = balance.Balance.Clone()
		s.Balances = append(s.Balances, &c)
		return nil
	}
	for i, b := range s.Balances {
		if b.ID == balance.ID {
			balance.Version++
			c := *balance
			c.Balance = balance.Balance.Clone()
			s.Balances[i] = &c
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// TransactionStore is an in-memory core.ITransactionStore.
type TransactionStore struct {
	Transactions []*core.Transaction
}

// NewTransactionStore new transaction store fake
func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

func (s *TransactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	transaction.ID = uint64(len(s.Transactions) + 1)
	s.Transactions = append(s.Transactions, transaction)
	return nil
}

func (s *TransactionStore) FindByTraceID(ctx context.Context, traceID string) (*core.Transaction, error) {
	for _, t := range s.Transactions {
		if t.TraceID == traceID {
			return t, nil
		}
	}
	return &core.Transaction{}, nil
}

func (s *TransactionStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	for _, t := range s.Transactions {
		if t.ID > fromID && len(transactions) < limit {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

// PriceService serves fixed wad prices keyed by asset.
type PriceService struct {
	Prices map[string]*uint256.Int
	// Stale marks assets whose reads fail with ErrStalePrice
	Stale map[string]bool
}

// NewPriceService new price oracle fake
func NewPriceService() *PriceService {
	return &PriceService{
		Prices: make(map[string]*uint256.Int),
		Stale:  make(map[string]bool),
	}
}

func (s *PriceService) GetPrice(ctx context.Context, assetID string, block int64) (*uint256.Int, error) {
	if s.Stale[assetID] {
		return nil, core.ErrStalePrice
	}
	price, ok := s.Prices[assetID]
	if !ok {
		return nil, core.ErrPriceNotFound
	}
	return price.Clone(), nil
}

func (s *PriceService) PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*core.PriceTicker, error) {
	return &core.PriceTicker{Symbol: symbol}, nil
}

func (s *PriceService) PullAllPriceTickers(ctx context.Context, t time.Time) ([]*core.PriceTicker, error) {
	return nil, nil
}
