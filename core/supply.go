package core

import (
	"context"

	"github.com/holiman/uint256"
)

// ISupplyService is the deposit side of the ledger: conversion between
// underlying amounts and proportional claim-shares.
type ISupplyService interface {
	// Deposit transfers amount in from the caller and mints shares to
	// onBehalfOf; returns the shares minted
	Deposit(ctx context.Context, userID, onBehalfOf, assetID string, amount *uint256.Int) (*uint256.Int, error)

	// Withdraw burns shares and pays the corresponding underlying amount to
	// the caller; aborts with WOULD_BECOME_UNHEALTHY when the post-withdraw
	// health factor falls below 1.0. Returns the amount paid out.
	Withdraw(ctx context.Context, userID, assetID string, shares *uint256.Int) (*uint256.Int, error)

	// GetDepositBalance values the user's shares in underlying units
	GetDepositBalance(ctx context.Context, userID, assetID string) (*uint256.Int, error)
}
