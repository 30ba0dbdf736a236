package liquidation

import (
	"context"
	"testing"

	"lendpool/core"
	"lendpool/pkg/fixnum"
	"lendpool/service/account"
	"lendpool/service/borrow"
	"lendpool/service/market"
	"lendpool/service/servicetest"
	"lendpool/service/supply"
	"lendpool/service/wallet"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

type env struct {
	markets      *servicetest.MarketStore
	positions    *servicetest.PositionStore
	wallets      *servicetest.WalletStore
	transactions *servicetest.TransactionStore
	prices       *servicetest.PriceService
	block        *servicetest.BlockService

	supplySrv      core.ISupplyService
	borrowSrv      core.IBorrowService
	liquidationSrv core.ILiquidationService
	accountSrv     core.IAccountService
}

func wad(v uint64) *uint256.Int {
	r, _ := fixnum.Mul(uint256.NewInt(v), fixnum.Wad())
	return r
}

// centiWad returns v/100 at wad scale.
func centiWad(v uint64) *uint256.Int {
	return new(uint256.Int).Div(wad(v), uint256.NewInt(100))
}

func newEnv() *env {
	e := &env{
		markets:      servicetest.NewMarketStore(),
		positions:    servicetest.NewPositionStore(),
		wallets:      servicetest.NewWalletStore(),
		transactions: servicetest.NewTransactionStore(),
		prices:       servicetest.NewPriceService(),
		block:        &servicetest.BlockService{Block: 100},
	}

	cfg := &core.Config{}
	transactor := &servicetest.Transactor{}
	walletSrv := wallet.New(e.wallets)
	marketSrv := market.New(cfg, e.markets, e.transactions, walletSrv, e.block, transactor)
	e.accountSrv = account.New(e.markets, e.positions, e.prices, e.block)
	e.supplySrv = supply.New(e.markets, e.positions, e.transactions, marketSrv, e.accountSrv, e.block, walletSrv, walletSrv, transactor)
	e.borrowSrv = borrow.New(e.markets, e.positions, e.transactions, marketSrv, e.accountSrv, e.block, walletSrv, transactor)
	e.liquidationSrv = New(e.markets, e.positions, e.transactions, marketSrv, e.accountSrv, e.block, e.prices, walletSrv, walletSrv, transactor)

	e.markets.Add(&core.Market{
		AssetID:             "btc",
		Symbol:              "BTC",
		ShareAssetID:        "sbtc",
		CollateralFactorBps: 8000,
		LiquidationBonusBps: 500,
		CloseFactorBps:      5000,
		Active:              true,
	})
	e.markets.Add(&core.Market{
		AssetID:        "usd",
		Symbol:         "USD",
		ShareAssetID:   "susd",
		CloseFactorBps: 5000,
		Active:         true,
		BorrowEnabled:  true,
	})
	e.prices.Prices["btc"] = fixnum.Wad()
	e.prices.Prices["usd"] = fixnum.Wad()

	return e
}

// seedUnderwater puts bob 1,000 in debt against 1,250 btc collateral, then
// drops the btc price 20% so his health factor lands at 0.8.
func (e *env) seedUnderwater(t *testing.T) {
	ctx := context.Background()

	e.wallets.Set("bob", "btc", wad(1250))
	e.wallets.Set("carol", "usd", wad(2000))
	e.wallets.Set("liq", "usd", wad(2000))

	_, err := e.supplySrv.Deposit(ctx, "bob", "", "btc", wad(1250))
	require.Nil(t, err)
	_, err = e.supplySrv.Deposit(ctx, "carol", "", "usd", wad(2000))
	require.Nil(t, err)

	require.Nil(t, e.borrowSrv.Borrow(ctx, "bob", "usd", wad(1000)))

	e.prices.Prices["btc"] = centiWad(80)

	hf, err := e.accountSrv.GetHealthFactor(ctx, "bob")
	require.Nil(t, err)
	require.Equal(t, centiWad(80), hf)
}

func TestLiquidateCloseFactorClamp(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.seedUnderwater(t)

	// the close factor caps the first pass at half the 1,000 debt
	result, err := e.liquidationSrv.Liquidate(ctx, "liq", "bob", "usd", "btc", wad(600))
	require.Nil(t, err)
	require.Equal(t, wad(500), result.Repaid)

	// 500 of value at a 5% bonus buys 525 of value; at 0.8 per btc that is
	// 656.25 units
	wantSeized := new(uint256.Int).Div(wad(65625), uint256.NewInt(100))
	require.Equal(t, wantSeized, result.Seized)
	require.Equal(t, wantSeized, e.wallets.Balance("liq", "btc"))
	require.Equal(t, wad(1500), e.wallets.Balance("liq", "usd"))

	// the second pass sees 500 debt and clamps to 250
	result, err = e.liquidationSrv.Liquidate(ctx, "liq", "bob", "usd", "btc", wad(600))
	require.Nil(t, err)
	require.Equal(t, wad(250), result.Repaid)

	debt, err := e.borrowSrv.GetBorrowBalance(ctx, "bob", "usd")
	require.Nil(t, err)
	require.Equal(t, wad(250), debt)
}

func TestLiquidateHealthyAccount(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.seedUnderwater(t)

	// price recovers before the liquidator lands
	e.prices.Prices["btc"] = fixnum.Wad()

	_, err := e.liquidationSrv.Liquidate(ctx, "liq", "bob", "usd", "btc", wad(500))
	require.Equal(t, core.ErrNotLiquidatable, err)
}

func TestLiquidateStalePrice(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.seedUnderwater(t)

	e.prices.Stale["btc"] = true

	_, err := e.liquidationSrv.Liquidate(ctx, "liq", "bob", "usd", "btc", wad(500))
	require.Equal(t, core.ErrStalePrice, err)

	// nothing moved
	debt, err := e.borrowSrv.GetBorrowBalance(ctx, "bob", "usd")
	require.Nil(t, err)
	require.Equal(t, wad(1000), debt)
	require.True(t, e.wallets.Balance("liq", "btc").IsZero())
}

func TestLiquidateSeizeBound(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.seedUnderwater(t)

	// crash the collateral so even a clamped repay wants more than bob holds
	e.prices.Prices["btc"] = centiWad(10)

	_, err := e.liquidationSrv.Liquidate(ctx, "liq", "bob", "usd", "btc", wad(600))
	require.Equal(t, core.ErrInsufficientCollateralToSeize, err)
}

func TestLiquidateValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.seedUnderwater(t)

	_, err := e.liquidationSrv.Liquidate(ctx, "liq", "bob", "usd", "btc", fixnum.Zero())
	require.Equal(t, core.ErrInvalidAmount, err)

	_, err = e.liquidationSrv.Liquidate(ctx, "bob", "bob", "usd", "btc", wad(100))
	require.Equal(t, core.ErrOperationForbidden, err)

	_, err = e.liquidationSrv.Liquidate(ctx, "liq", "bob", "eth", "btc", wad(100))
	require.Equal(t, core.ErrMarketNotFound, err)
}
