package wallet

import (
	"context"

	"lendpool/core"
	"lendpool/pkg/fixnum"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
)

// Service is the vault book. It implements both core.ITransferService and
// core.ITokenService.
type Service struct {
	walletStore core.IWalletStore
}

// New builds the vault book service. It backs both the underlying transfers
// and the claim-share token capability; all balance moves run inside the
// caller's transaction.
func New(walletStr core.IWalletStore) *Service {
	return &Service{walletStore: walletStr}
}

func (s *Service) move(ctx context.Context, tx *db.DB, fromUserID, toUserID, assetID string, amount *uint256.Int, insufficient error) error {
	if fixnum.IsZero(amount) {
		return core.ErrInvalidAmount
	}

	from, err := s.walletStore.Find(ctx, fromUserID, assetID)
	if err != nil {
		return err
	}
	if from.Balance.Cmp(amount) < 0 {
		return insufficient
	}
	if from.Balance, err = fixnum.Sub(from.Balance, amount); err != nil {
		return core.ErrArithmeticOverflow
	}
	if err := s.walletStore.Save(ctx, tx, from); err != nil {
		return err
	}

	to, err := s.walletStore.Find(ctx, toUserID, assetID)
	if err != nil {
		return err
	}
	if to.Balance, err = fixnum.Add(to.Balance, amount); err != nil {
		return core.ErrArithmeticOverflow
	}
	return s.walletStore.Save(ctx, tx, to)
}

// TransferIn moves underlying from the user into the vault.
func (s *Service) TransferIn(ctx context.Context, tx *db.DB, fromUserID, assetID string, amount *uint256.Int) error {
	return s.move(ctx, tx, fromUserID, core.VaultUserID, assetID, amount, core.ErrInsufficientBalance)
}

// TransferOut pays underlying out of the vault to the user.
func (s *Service) TransferOut(ctx context.Context, tx *db.DB, toUserID, assetID string, amount *uint256.Int) error {
	return s.move(ctx, tx, core.VaultUserID, toUserID, assetID, amount, core.ErrInsufficientLiquidity)
}

// Mint credits claim-share tokens to the holder.
func (s *Service) Mint(ctx context.Context, tx *db.DB, holderID, shareAssetID string, amount *uint256.Int) error {
	if fixnum.IsZero(amount) {
		return core.ErrInvalidAmount
	}

	balance, err := s.walletStore.Find(ctx, holderID, shareAssetID)
	if err != nil {
		return err
	}
	if balance.Balance, err = fixnum.Add(balance.Balance, amount); err != nil {
		return core.ErrArithmeticOverflow
	}
	return s.walletStore.Save(ctx, tx, balance)
}

// Burn destroys claim-share tokens held by the holder.
func (s *Service) Burn(ctx context.Context, tx *db.DB, holderID, shareAssetID string, amount *uint256.Int) error {
	if fixnum.IsZero(amount) {
		return core.ErrInvalidAmount
	}

	balance, err := s.walletStore.Find(ctx, holderID, shareAssetID)
	if err != nil {
		return err
	}
	if balance.Balance.Cmp(amount) < 0 {
		return core.ErrInsufficientShares
	}
	if balance.Balance, err = fixnum.Sub(balance.Balance, amount); err != nil {
		return core.ErrArithmeticOverflow
	}
	return s.walletStore.Save(ctx, tx, balance)
}
