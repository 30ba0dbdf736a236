package cmd

import (
	"lendpool/core"
	accountservice "lendpool/service/account"
	"lendpool/service/block"
	borrowservice "lendpool/service/borrow"
	liquidationservice "lendpool/service/liquidation"
	marketservice "lendpool/service/market"
	"lendpool/service/oracle"
	supplyservice "lendpool/service/supply"
	walletservice "lendpool/service/wallet"
	"lendpool/store/market"
	"lendpool/store/position"
	"lendpool/store/price"
	"lendpool/store/transaction"
	"lendpool/store/wallet"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideLedgerConfig() *core.Config {
	return &cfg.Ledger
}

// ---------------store-----------------------------------------

func provideMarketStore(db *db.DB) core.IMarketStore {
	return market.New(db)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return position.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func provideTransactionStore(db *db.DB) core.ITransactionStore {
	return transaction.New(db)
}

func provideWalletStore(db *db.DB) core.IWalletStore {
	return wallet.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.IBlockService {
	return block.New(provideLedgerConfig())
}

func provideWalletService(db *db.DB) *walletservice.Service {
	return walletservice.New(provideWalletStore(db))
}

func providePriceService(db *db.DB, blockSrv core.IBlockService) core.IPriceOracleService {
	return oracle.New(provideLedgerConfig(), providePriceStore(db), provideMarketStore(db), blockSrv)
}

func provideMarketService(db *db.DB, blockSrv core.IBlockService) core.IMarketService {
	return marketservice.New(
		provideLedgerConfig(),
		provideMarketStore(db),
		provideTransactionStore(db),
		provideWalletService(db),
		blockSrv,
		db,
	)
}

func provideAccountService(db *db.DB, blockSrv core.IBlockService, priceSrv core.IPriceOracleService) core.IAccountService {
	return accountservice.New(provideMarketStore(db), providePositionStore(db), priceSrv, blockSrv)
}

func provideSupplyService(db *db.DB, marketSrv core.IMarketService, accountSrv core.IAccountService, blockSrv core.IBlockService) core.ISupplyService {
	walletSrv := provideWalletService(db)
	return supplyservice.New(
		provideMarketStore(db),
		providePositionStore(db),
		provideTransactionStore(db),
		marketSrv,
		accountSrv,
		blockSrv,
		walletSrv,
		walletSrv,
		db,
	)
}

func provideBorrowService(db *db.DB, marketSrv core.IMarketService, accountSrv core.IAccountService, blockSrv core.IBlockService) core.IBorrowService {
	return borrowservice.New(
		provideMarketStore(db),
		providePositionStore(db),
		provideTransactionStore(db),
		marketSrv,
		accountSrv,
		blockSrv,
		provideWalletService(db),
		db,
	)
}

func provideLiquidationService(db *db.DB, marketSrv core.IMarketService, accountSrv core.IAccountService, blockSrv core.IBlockService, priceSrv core.IPriceOracleService) core.ILiquidationService {
	walletSrv := provideWalletService(db)
	return liquidationservice.New(
		provideMarketStore(db),
		providePositionStore(db),
		provideTransactionStore(db),
		marketSrv,
		accountSrv,
		blockSrv,
		priceSrv,
		walletSrv,
		walletSrv,
		db,
	)
}
