package lending

import (
	"testing"
	"time"

	"lendpool/core"
	"lendpool/pkg/fixnum"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func wad(v uint64) *uint256.Int {
	r, err := fixnum.Mul(uint256.NewInt(v), fixnum.Wad())
	if err != nil {
		panic(err)
	}
	return r
}

// centiWad returns v/100 at wad scale.
func centiWad(v uint64) *uint256.Int {
	return new(uint256.Int).Div(wad(v), uint256.NewInt(100))
}

func newTestMarket() *core.Market {
	m := &core.Market{
		AssetID:             "asset-test",
		Symbol:              "TEST",
		CollateralFactorBps: 8000,
		LiquidationBonusBps: 500,
		ReserveFactorBps:    1000,
		CloseFactorBps:      5000,
		BaseRate:            centiWad(2),  // 2% yearly
		Multiplier:          centiWad(10), // 10% yearly at full utilization
		JumpMultiplier:      wad(1),       // 100% yearly beyond the kink
		Kink:                centiWad(80), // 80%
	}
	m.Normalize()
	return m
}

func TestUtilizationRate(t *testing.T) {
	u, err := UtilizationRate(wad(800), wad(1000))
	require.Nil(t, err)
	require.Equal(t, centiWad(80), u)

	u, err = UtilizationRate(fixnum.Zero(), fixnum.Zero())
	require.Nil(t, err)
	require.True(t, u.IsZero())
}

func TestBorrowRateCurve(t *testing.T) {
	m := newTestMarket()

	// idle pool borrows at exactly the base rate
	rate, err := BorrowRate(fixnum.Zero(), m.BaseRate, m.Multiplier, m.JumpMultiplier, m.Kink)
	require.Nil(t, err)
	require.Equal(t, m.BaseRate, rate)

	// at the kink: base + multiplier * kink = 2% + 10% * 80% = 10%
	rate, err = BorrowRate(m.Kink, m.BaseRate, m.Multiplier, m.JumpMultiplier, m.Kink)
	require.Nil(t, err)
	require.Equal(t, centiWad(10), rate)

	// beyond the kink the jump multiplier prices the excess:
	// 10% + 100% * (90% - 80%) = 20%
	rate, err = BorrowRate(centiWad(90), m.BaseRate, m.Multiplier, m.JumpMultiplier, m.Kink)
	require.Nil(t, err)
	require.Equal(t, centiWad(20), rate)
}

func TestSupplyRate(t *testing.T) {
	// u=50%, borrow rate 10%, reserve factor 10% -> 0.5 * 0.1 * 0.9 = 4.5%
	rate, err := SupplyRate(centiWad(50), centiWad(10), 1000)
	require.Nil(t, err)
	want := new(uint256.Int).Div(wad(45), uint256.NewInt(1000))
	require.Equal(t, want, rate)
}

func TestAccrue(t *testing.T) {
	m := newTestMarket()
	m.TotalDeposits = wad(1000)
	m.TotalBorrows = wad(500)
	m.TotalShares = wad(1000)

	borrowIndexBefore := m.BorrowIndex.Clone()
	supplyIndexBefore := m.SupplyIndex.Clone()
	borrowsBefore := m.TotalBorrows.Clone()

	require.Nil(t, Accrue(m, 100))
	require.Equal(t, int64(100), m.BlockNumber)

	// indices only move forward
	require.True(t, m.BorrowIndex.Cmp(borrowIndexBefore) > 0)
	require.True(t, m.SupplyIndex.Cmp(supplyIndexBefore) > 0)

	interest, err := fixnum.Sub(m.TotalBorrows, borrowsBefore)
	require.Nil(t, err)
	require.True(t, interest.Sign() > 0)

	// the reserve factor skims 10% of the interest, rounded down
	wantReserves, err := fixnum.MulDivDown(interest, fixnum.New(1000), BpsBase)
	require.Nil(t, err)
	require.Equal(t, wantReserves, m.Reserves)

	// depositors get the rest
	wantDeposits, err := fixnum.Sub(interest, wantReserves)
	require.Nil(t, err)
	wantDeposits, err = fixnum.Add(wad(1000), wantDeposits)
	require.Nil(t, err)
	require.Equal(t, wantDeposits, m.TotalDeposits)

	// same height again changes nothing
	snapshot := *m
	require.Nil(t, Accrue(m, 100))
	require.Equal(t, snapshot.BorrowIndex, m.BorrowIndex)
	require.Equal(t, snapshot.SupplyIndex, m.SupplyIndex)
	require.Equal(t, snapshot.TotalBorrows, m.TotalBorrows)
	require.Equal(t, snapshot.TotalDeposits, m.TotalDeposits)
	require.Equal(t, snapshot.Reserves, m.Reserves)
}

func TestAccrueIdleMarket(t *testing.T) {
	m := newTestMarket()
	m.TotalDeposits = wad(1000)
	m.TotalShares = wad(1000)

	require.Nil(t, Accrue(m, 1000))
	require.Equal(t, fixnum.Wad(), m.BorrowIndex)
	require.Equal(t, fixnum.Wad(), m.SupplyIndex)
	require.True(t, m.Reserves.IsZero())
}

func TestShareConversion(t *testing.T) {
	m := newTestMarket()

	// bootstrap is 1:1
	shares, err := ConvertToShares(m, wad(100))
	require.Nil(t, err)
	require.Equal(t, wad(100), shares)

	// pool grew 20% against outstanding shares
	m.TotalDeposits = wad(1200)
	m.TotalShares = wad(1000)

	shares, err = ConvertToShares(m, wad(120))
	require.Nil(t, err)
	require.Equal(t, wad(100), shares)

	amount, err := ConvertToAssets(m, wad(100))
	require.Nil(t, err)
	require.Equal(t, wad(120), amount)

	// round trip never mints value: shares(assets(s)) <= s for awkward rates
	m.TotalDeposits, _ = fixnum.Add(wad(1200), fixnum.New(7))
	shares, err = ConvertToShares(m, wad(10))
	require.Nil(t, err)
	back, err := ConvertToAssets(m, shares)
	require.Nil(t, err)
	require.True(t, back.Cmp(wad(10)) <= 0)

	// burning for an exact amount rounds against the withdrawer
	up, err := SharesForAssets(m, wad(10))
	require.Nil(t, err)
	require.True(t, up.Cmp(shares) >= 0)
}

func TestBorrowBalance(t *testing.T) {
	m := newTestMarket()
	m.BorrowIndex = centiWad(110) // 1.1

	p := &core.Position{BorrowPrincipal: wad(100), BorrowIndex: fixnum.Wad()}
	debt, err := BorrowBalance(p, m)
	require.Nil(t, err)
	require.Equal(t, wad(110), debt)

	// reconciliation rounds up against the borrower
	p = &core.Position{BorrowPrincipal: uint256.NewInt(100), BorrowIndex: uint256.NewInt(3)}
	m.BorrowIndex = uint256.NewInt(10)
	debt, err = BorrowBalance(p, m)
	require.Nil(t, err)
	require.Equal(t, uint256.NewInt(334), debt)

	p = &core.Position{}
	p.Normalize()
	debt, err = BorrowBalance(p, m)
	require.Nil(t, err)
	require.True(t, debt.IsZero())
}

func TestMaxCloseRepay(t *testing.T) {
	m := newTestMarket()

	// 50% close factor clamps a 600 request against 1000 debt to 500
	applied, err := MaxCloseRepay(m, wad(1000), wad(600))
	require.Nil(t, err)
	require.Equal(t, wad(500), applied)

	// the next pass sees 500 debt and clamps to 250
	applied, err = MaxCloseRepay(m, wad(500), wad(600))
	require.Nil(t, err)
	require.Equal(t, wad(250), applied)

	// dust debt may be closed in full
	applied, err = MaxCloseRepay(m, uint256.NewInt(900), uint256.NewInt(900))
	require.Nil(t, err)
	require.Equal(t, uint256.NewInt(900), applied)
}

func TestSeizeCollateral(t *testing.T) {
	m := newTestMarket() // 5% bonus

	// 100 repaid at price 1.0 against collateral priced 2.0:
	// value 105 -> 52.5 units
	seized, err := SeizeCollateral(m, wad(100), fixnum.Wad(), wad(2))
	require.Nil(t, err)
	want := new(uint256.Int).Div(wad(525), uint256.NewInt(10))
	require.Equal(t, want, seized)
}

func TestHealthFactor(t *testing.T) {
	hf, err := HealthFactor(wad(800), wad(500))
	require.Nil(t, err)
	require.Equal(t, centiWad(160), hf)
	require.True(t, IsHealthy(hf))

	hf, err = HealthFactor(wad(800), wad(1000))
	require.Nil(t, err)
	require.Equal(t, centiWad(80), hf)
	require.False(t, IsHealthy(hf))

	// exactly 1.0 is healthy
	hf, err = HealthFactor(wad(100), wad(100))
	require.Nil(t, err)
	require.True(t, IsHealthy(hf))

	// no debt reads as the infinite-solvency sentinel
	hf, err = HealthFactor(wad(800), fixnum.Zero())
	require.Nil(t, err)
	require.Equal(t, fixnum.Max(), hf)
}

func TestGetBlockByTime(t *testing.T) {
	genesis := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, int64(0), GetBlockByTime(genesis, genesis))
	require.Equal(t, int64(0), GetBlockByTime(genesis, genesis.Add(14*time.Second)))
	require.Equal(t, int64(1), GetBlockByTime(genesis, genesis.Add(15*time.Second)))
	require.Equal(t, int64(240), GetBlockByTime(genesis, genesis.Add(time.Hour)))
	require.Equal(t, int64(0), GetBlockByTime(genesis, genesis.Add(-time.Hour)))
}
