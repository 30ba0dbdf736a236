package supply

import (
	"context"
	"fmt"
	"testing"

	"lendpool/core"
	"lendpool/pkg/fixnum"
	"lendpool/service/account"
	"lendpool/service/borrow"
	"lendpool/service/market"
	"lendpool/service/servicetest"
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

	supplySrv core.ISupplyService
	borrowSrv core.IBorrowService
}

func wad(v uint64) *uint256.Int {
	r, _ := fixnum.Mul(uint256.NewInt(v), fixnum.Wad())
	return r
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
	accountSrv := account.New(e.markets, e.positions, e.prices, e.block)
	e.supplySrv = New(e.markets, e.positions, e.transactions, marketSrv, accountSrv, e.block, walletSrv, walletSrv, transactor)
	e.borrowSrv = borrow.New(e.markets, e.positions, e.transactions, marketSrv, accountSrv, e.block, walletSrv, transactor)

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

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.wallets.Set("alice", "btc", wad(1000))

	// the empty pool mints 1:1
	shares, err := e.supplySrv.Deposit(ctx, "alice", "", "btc", wad(400))
	require.Nil(t, err)
	require.Equal(t, wad(400), shares)

	// the claim-share tokens land in alice's wallet, the underlying in the vault
	require.Equal(t, wad(400), e.wallets.Balance("alice", "sbtc"))
	require.Equal(t, wad(400), e.wallets.Balance(core.VaultUserID, "btc"))
	require.Equal(t, wad(600), e.wallets.Balance("alice", "btc"))

	balance, err := e.supplySrv.GetDepositBalance(ctx, "alice", "btc")
	require.Nil(t, err)
	require.Equal(t, wad(400), balance)

	// the pool grew 25% against outstanding shares; new deposits mint fewer
	m := e.markets.Markets["btc"]
	m.TotalDeposits = wad(500)

	shares, err = e.supplySrv.Deposit(ctx, "alice", "", "btc", wad(100))
	require.Nil(t, err)
	require.Equal(t, wad(80), shares)
}

func TestDepositOnBehalfOf(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.wallets.Set("alice", "btc", wad(100))

	shares, err := e.supplySrv.Deposit(ctx, "alice", "bob", "btc", wad(100))
	require.Nil(t, err)

	// bob holds the claim, alice paid
	require.Equal(t, shares, e.wallets.Balance("bob", "sbtc"))
	require.True(t, e.wallets.Balance("alice", "btc").IsZero())

	balance, err := e.supplySrv.GetDepositBalance(ctx, "bob", "btc")
	require.Nil(t, err)
	require.Equal(t, wad(100), balance)
}

func TestDepositValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.wallets.Set("alice", "btc", wad(100))

	_, err := e.supplySrv.Deposit(ctx, "alice", "", "btc", fixnum.Zero())
	require.Equal(t, core.ErrInvalidAmount, err)

	_, err = e.supplySrv.Deposit(ctx, "alice", "", "eth", wad(1))
	require.Equal(t, core.ErrMarketNotFound, err)

	m := e.markets.Markets["btc"]
	m.Active = false
	_, err = e.supplySrv.Deposit(ctx, "alice", "", "btc", wad(1))
	require.Equal(t, core.ErrMarketInactive, err)

	m.Active = true
	_, err = e.supplySrv.Deposit(ctx, "alice", "", "btc", wad(200))
	require.Equal(t, core.ErrInsufficientBalance, err)
}

func TestCollateralBasketBound(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	for i := 0; i < core.MaxCollateralAssets; i++ {
		assetID := fmt.Sprintf("asset-%d", i)
		e.markets.Add(&core.Market{
			AssetID:      assetID,
			Symbol:       fmt.Sprintf("A%d", i),
			ShareAssetID: "s" + assetID,
			Active:       true,
		})
		e.wallets.Set("alice", assetID, wad(1))
		_, err := e.supplySrv.Deposit(ctx, "alice", "", assetID, wad(1))
		require.Nil(t, err)
	}

	e.wallets.Set("alice", "btc", wad(1))
	_, err := e.supplySrv.Deposit(ctx, "alice", "", "btc", wad(1))
	require.Equal(t, core.ErrCollateralBasketFull, err)
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.wallets.Set("alice", "btc", wad(1000))

	_, err := e.supplySrv.Deposit(ctx, "alice", "", "btc", wad(1000))
	require.Nil(t, err)

	amount, err := e.supplySrv.Withdraw(ctx, "alice", "btc", wad(400))
	require.Nil(t, err)
	require.Equal(t, wad(400), amount)
	require.Equal(t, wad(400), e.wallets.Balance("alice", "btc"))
	require.Equal(t, wad(600), e.wallets.Balance("alice", "sbtc"))

	_, err = e.supplySrv.Withdraw(ctx, "alice", "btc", wad(601))
	require.Equal(t, core.ErrInsufficientShares, err)
}

func TestWithdrawHealthGate(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.wallets.Set("alice", "btc", wad(1000))
	e.wallets.Set("bob", "usd", wad(1000))

	_, err := e.supplySrv.Deposit(ctx, "alice", "", "btc", wad(1000))
	require.Nil(t, err)
	_, err = e.supplySrv.Deposit(ctx, "bob", "", "usd", wad(1000))
	require.Nil(t, err)

	// 400 debt needs 500 collateral at the 80% factor
	require.Nil(t, e.borrowSrv.Borrow(ctx, "alice", "usd", wad(400)))

	_, err = e.supplySrv.Withdraw(ctx, "alice", "btc", wad(501))
	require.Equal(t, core.ErrWouldBecomeUnhealthy, err)

	// the failed withdrawal left the position intact
	balance, err := e.supplySrv.GetDepositBalance(ctx, "alice", "btc")
	require.Nil(t, err)
	require.Equal(t, wad(1000), balance)

	amount, err := e.supplySrv.Withdraw(ctx, "alice", "btc", wad(500))
	require.Nil(t, err)
	require.Equal(t, wad(500), amount)
}

func TestWithdrawLiquidityGate(t *testing.T) {
	ctx := context.Background()
	e := newEnv()
	e.wallets.Set("alice", "usd", wad(1000))
	e.wallets.Set("carol", "btc", wad(2000))

	_, err := e.supplySrv.Deposit(ctx, "alice", "", "usd", wad(1000))
	require.Nil(t, err)
	_, err = e.supplySrv.Deposit(ctx, "carol", "", "btc", wad(2000))
	require.Nil(t, err)

	// carol borrows most of the pool out
	require.Nil(t, e.borrowSrv.Borrow(ctx, "carol", "usd", wad(900)))

	_, err = e.supplySrv.Withdraw(ctx, "alice", "usd", wad(200))
	require.Equal(t, core.ErrInsufficientLiquidity, err)

	_, err = e.supplySrv.Withdraw(ctx, "alice", "usd", wad(100))
	require.Nil(t, err)
}
