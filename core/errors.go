package core

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden non-governance caller on a governance-gated operation
	ErrOperationForbidden ErrorCode = 100001

	// validation errors, rejected before any state is read

	// ErrInvalidAmount amount is zero or malformed
	ErrInvalidAmount ErrorCode = 100100
	// ErrInvalidMarketConfig market parameters out of range
	ErrInvalidMarketConfig ErrorCode = 100101
	// ErrCollateralBasketFull the per-account collateral asset bound is hit
	ErrCollateralBasketFull ErrorCode = 100102

	// state errors, rejected after reading state but before mutation

	// ErrMarketNotFound no market listed for the asset
	ErrMarketNotFound ErrorCode = 100200
	// ErrMarketInactive market exists but is not active
	ErrMarketInactive ErrorCode = 100201
	// ErrBorrowDisabled borrowing is switched off for the market
	ErrBorrowDisabled ErrorCode = 100202
	// ErrInsufficientShares caller holds fewer shares than requested
	ErrInsufficientShares ErrorCode = 100203
	// ErrInsufficientLiquidity the pool cannot pay out the requested amount
	ErrInsufficientLiquidity ErrorCode = 100204
	// ErrNoOutstandingDebt repay against a position with no debt
	ErrNoOutstandingDebt ErrorCode = 100205
	// ErrInsufficientBalance the payer cannot fund the transfer
	ErrInsufficientBalance ErrorCode = 100206

	// invariant violations, rejected after the tentative mutation

	// ErrInsufficientCollateral the post-borrow health factor is below 1.0
	ErrInsufficientCollateral ErrorCode = 100300
	// ErrWouldBecomeUnhealthy the post-withdraw health factor is below 1.0
	ErrWouldBecomeUnhealthy ErrorCode = 100301
	// ErrBorrowCapReached the market borrow cap would be exceeded
	ErrBorrowCapReached ErrorCode = 100302
	// ErrNotLiquidatable the borrower's health factor is at or above 1.0
	ErrNotLiquidatable ErrorCode = 100303
	// ErrInsufficientCollateralToSeize the seize exceeds the borrower's balance
	ErrInsufficientCollateralToSeize ErrorCode = 100304

	// oracle errors

	// ErrPriceNotFound no price recorded for the asset
	ErrPriceNotFound ErrorCode = 100400
	// ErrStalePrice the latest price is older than the staleness bound
	ErrStalePrice ErrorCode = 100401

	// ErrArithmeticOverflow fixed point math overflowed; fatal for the operation
	ErrArithmeticOverflow ErrorCode = 100500
)

var errorMsgs = map[ErrorCode]string{
	ErrUnknown:                       "UNKNOWN",
	ErrOperationForbidden:            "OPERATION_FORBIDDEN",
	ErrInvalidAmount:                 "INVALID_AMOUNT",
	ErrInvalidMarketConfig:           "INVALID_MARKET_CONFIG",
	ErrCollateralBasketFull:          "COLLATERAL_BASKET_FULL",
	ErrMarketNotFound:                "MARKET_NOT_FOUND",
	ErrMarketInactive:                "MARKET_INACTIVE",
	ErrBorrowDisabled:                "BORROW_DISABLED",
	ErrInsufficientShares:            "INSUFFICIENT_SHARES",
	ErrInsufficientLiquidity:         "INSUFFICIENT_LIQUIDITY",
	ErrNoOutstandingDebt:             "NO_OUTSTANDING_DEBT",
	ErrInsufficientBalance:           "INSUFFICIENT_BALANCE",
	ErrInsufficientCollateral:        "INSUFFICIENT_COLLATERAL",
	ErrWouldBecomeUnhealthy:          "WOULD_BECOME_UNHEALTHY",
	ErrBorrowCapReached:              "BORROW_CAP_REACHED",
	ErrNotLiquidatable:               "NOT_LIQUIDATABLE",
	ErrInsufficientCollateralToSeize: "INSUFFICIENT_COLLATERAL_TO_SEIZE",
	ErrPriceNotFound:                 "PRICE_NOT_FOUND",
	ErrStalePrice:                    "STALE_PRICE",
	ErrArithmeticOverflow:            "ARITHMETIC_OVERFLOW",
}

func (e ErrorCode) String() string {
	if msg, ok := errorMsgs[e]; ok {
		return msg
	}
	return errorMsgs[ErrUnknown]
}

func (e ErrorCode) Error() string {
	return e.String()
}
