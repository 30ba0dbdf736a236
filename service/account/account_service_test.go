package account

import (
	"context"
	"testing"

	"lendpool/core"
	"lendpool/pkg/fixnum"
	"lendpool/service/servicetest"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func wad(v uint64) *uint256.Int {
	r, _ := fixnum.Mul(uint256.NewInt(v), fixnum.Wad())
	return r
}

func centiWad(v uint64) *uint256.Int {
	return new(uint256.Int).Div(wad(v), uint256.NewInt(100))
}

type env struct {
	markets   *servicetest.MarketStore
	positions *servicetest.PositionStore
	prices    *servicetest.PriceService
	srv       core.IAccountService
}

func newEnv() *env {
	e := &env{
		markets:   servicetest.NewMarketStore(),
		positions: servicetest.NewPositionStore(),
		prices:    servicetest.NewPriceService(),
	}
	e.srv = New(e.markets, e.positions, e.prices, &servicetest.BlockService{Block: 100})

	e.markets.Add(&core.Market{
		AssetID:             "btc",
		Symbol:              "BTC",
		ShareAssetID:        "sbtc",
		CollateralFactorBps: 8000,
		TotalDeposits:       wad(1000),
		TotalShares:         wad(1000),
		Active:              true,
	})
	e.markets.Add(&core.Market{
		AssetID:             "eth",
		Symbol:              "ETH",
		ShareAssetID:        "seth",
		CollateralFactorBps: 5000,
		TotalDeposits:       wad(1000),
		TotalShares:         wad(1000),
		Active:              true,
	})
	e.markets.Add(&core.Market{
		AssetID:       "usd",
		Symbol:        "USD",
		ShareAssetID:  "susd",
		TotalDeposits: wad(10000),
		TotalShares:   wad(10000),
		TotalBorrows:  wad(500),
		Active:        true,
		BorrowEnabled: true,
	})
	e.prices.Prices["btc"] = wad(2)
	e.prices.Prices["eth"] = fixnum.Wad()
	e.prices.Prices["usd"] = fixnum.Wad()

	return e
}

func (e *env) savePosition(t *testing.T, p *core.Position) {
	p.Normalize()
	require.Nil(t, e.positions.Save(context.Background(), nil, p))
}

func TestHealthFactorNoDebt(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	e.savePosition(t, &core.Position{UserID: "alice", AssetID: "btc", DepositShares: wad(100)})

	hf, err := e.srv.GetHealthFactor(ctx, "alice")
	require.Nil(t, err)
	require.Equal(t, fixnum.Max(), hf)
}

func TestHealthFactorMultiAsset(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	// collateral: 100 btc @ 2.00 * 80% + 200 eth @ 1.00 * 50% = 260
	e.savePosition(t, &core.Position{UserID: "alice", AssetID: "btc", DepositShares: wad(100)})
	e.savePosition(t, &core.Position{UserID: "alice", AssetID: "eth", DepositShares: wad(200)})
	// debt: 200 usd @ 1.00
	e.savePosition(t, &core.Position{
		UserID:          "alice",
		AssetID:         "usd",
		BorrowPrincipal: wad(200),
		BorrowIndex:     fixnum.Wad(),
	})

	hf, err := e.srv.GetHealthFactor(ctx, "alice")
	require.Nil(t, err)
	require.Equal(t, centiWad(130), hf)
}

func TestHealthFactorAfterOverride(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	e.savePosition(t, &core.Position{UserID: "alice", AssetID: "btc", DepositShares: wad(100)})
	e.savePosition(t, &core.Position{
		UserID:          "alice",
		AssetID:         "usd",
		BorrowPrincipal: wad(100),
		BorrowIndex:     fixnum.Wad(),
	})

	// stored state: 160 collateral vs 100 debt
	hf, err := e.srv.GetHealthFactor(ctx, "alice")
	require.Nil(t, err)
	require.Equal(t, centiWad(160), hf)

	// tentative state: debt doubled
	tentative := &core.Position{
		UserID:          "alice",
		AssetID:         "usd",
		BorrowPrincipal: wad(200),
		BorrowIndex:     fixnum.Wad(),
	}
	tentative.Normalize()

	hf, err = e.srv.HealthFactorAfter(ctx, "alice", tentative, nil)
	require.Nil(t, err)
	require.Equal(t, centiWad(80), hf)

	// the stored state is untouched
	hf, err = e.srv.GetHealthFactor(ctx, "alice")
	require.Nil(t, err)
	require.Equal(t, centiWad(160), hf)
}

func TestHealthFactorDebtReconciliation(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	// the usd borrow index moved 10% past the position's snapshot
	m := e.markets.Markets["usd"]
	m.BorrowIndex = centiWad(110)

	e.savePosition(t, &core.Position{UserID: "alice", AssetID: "btc", DepositShares: wad(100)})
	e.savePosition(t, &core.Position{
		UserID:          "alice",
		AssetID:         "usd",
		BorrowPrincipal: wad(100),
		BorrowIndex:     fixnum.Wad(),
	})

	// 160 collateral vs 110 reconciled debt
	hf, err := e.srv.GetHealthFactor(ctx, "alice")
	require.Nil(t, err)

	want, err := fixnum.WadDivDown(wad(160), wad(110))
	require.Nil(t, err)
	require.Equal(t, want, hf)
}

func TestHealthFactorStalePrice(t *testing.T) {
	ctx := context.Background()
	e := newEnv()

	e.savePosition(t, &core.Position{UserID: "alice", AssetID: "btc", DepositShares: wad(100)})
	e.savePosition(t, &core.Position{
		UserID:          "alice",
		AssetID:         "usd",
		BorrowPrincipal: wad(100),
		BorrowIndex:     fixnum.Wad(),
	})

	e.prices.Stale["btc"] = true

	_, err := e.srv.GetHealthFactor(ctx, "alice")
	require.Equal(t, core.ErrStalePrice, err)
}
