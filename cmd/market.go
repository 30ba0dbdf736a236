package cmd

import (
	"fmt"

	"lendpool/core"
	"lendpool/pkg/number"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "manage lending markets",
}

var marketCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "list a new market",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		blockService := provideBlockService()
		marketService := provideMarketService(database, blockService)

		flag := cmd.Flags()
		operator, _ := flag.GetString("operator")

		market := &core.Market{}
		market.AssetID, _ = flag.GetString("asset")
		market.Symbol, _ = flag.GetString("symbol")
		market.ShareAssetID, _ = flag.GetString("share-asset")
		market.CollateralFactorBps, _ = flag.GetUint64("collateral-factor")
		market.LiquidationBonusBps, _ = flag.GetUint64("liquidation-bonus")
		market.ReserveFactorBps, _ = flag.GetUint64("reserve-factor")
		market.CloseFactorBps, _ = flag.GetUint64("close-factor")
		market.Active, _ = flag.GetBool("active")
		market.BorrowEnabled, _ = flag.GetBool("borrow-enabled")

		for _, item := range []struct {
			name string
			dst  **uint256.Int
		}{
			{"borrow-cap", &market.BorrowCap},
			{"base-rate", &market.BaseRate},
			{"multiplier", &market.Multiplier},
			{"jump-multiplier", &market.JumpMultiplier},
			{"kink", &market.Kink},
		} {
			raw, _ := flag.GetString(item.name)
			v, err := number.ToWad(number.Decimal(raw))
			if err != nil {
				return fmt.Errorf("parse --%s: %w", item.name, err)
			}

			*item.dst = v
		}

		if err := marketService.CreateMarket(ctx, operator, market); err != nil {
			return err
		}

		cmd.Println("market created:", market.Symbol)
		return nil
	},
}

var marketUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "update market risk configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		blockService := provideBlockService()
		marketService := provideMarketService(database, blockService)

		flag := cmd.Flags()
		operator, _ := flag.GetString("operator")
		assetID, _ := flag.GetString("asset")
		collateralFactor, _ := flag.GetUint64("collateral-factor")

		rawCap, _ := flag.GetString("borrow-cap")
		borrowCap, err := number.ToWad(number.Decimal(rawCap))
		if err != nil {
			return fmt.Errorf("parse --borrow-cap: %w", err)
		}

		if err := marketService.UpdateMarketConfig(ctx, operator, assetID, collateralFactor, borrowCap); err != nil {
			return err
		}

		cmd.Println("market updated:", assetID)
		return nil
	},
}

var marketReservesCmd = &cobra.Command{
	Use:   "withdraw-reserves",
	Short: "move accumulated reserves to a treasury account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		blockService := provideBlockService()
		marketService := provideMarketService(database, blockService)

		flag := cmd.Flags()
		operator, _ := flag.GetString("operator")
		assetID, _ := flag.GetString("asset")
		to, _ := flag.GetString("to")

		raw, _ := flag.GetString("amount")
		amount, err := number.ToWad(number.Decimal(raw))
		if err != nil {
			return fmt.Errorf("parse --amount: %w", err)
		}

		if err := marketService.WithdrawReserves(ctx, operator, assetID, amount, to); err != nil {
			return err
		}

		cmd.Println("reserves withdrawn:", raw, assetID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)

	marketCmd.PersistentFlags().String("operator", "", "operator user id")
	marketCmd.PersistentFlags().String("asset", "", "market asset id")

	marketCreateCmd.Flags().String("symbol", "", "market symbol")
	marketCreateCmd.Flags().String("share-asset", "", "claim share asset id")
	marketCreateCmd.Flags().Uint64("collateral-factor", 0, "collateral factor in bps")
	marketCreateCmd.Flags().Uint64("liquidation-bonus", 0, "liquidation bonus in bps")
	marketCreateCmd.Flags().Uint64("reserve-factor", 0, "reserve factor in bps")
	marketCreateCmd.Flags().Uint64("close-factor", 5000, "close factor in bps")
	marketCreateCmd.Flags().String("borrow-cap", "0", "borrow cap, 0 for unlimited")
	marketCreateCmd.Flags().String("base-rate", "0", "yearly base borrow rate")
	marketCreateCmd.Flags().String("multiplier", "0", "yearly rate slope below kink")
	marketCreateCmd.Flags().String("jump-multiplier", "0", "yearly rate slope above kink")
	marketCreateCmd.Flags().String("kink", "0", "utilization kink point")
	marketCreateCmd.Flags().Bool("active", false, "accept deposits and withdrawals")
	marketCreateCmd.Flags().Bool("borrow-enabled", false, "accept borrows")

	marketUpdateCmd.Flags().Uint64("collateral-factor", 0, "collateral factor in bps")
	marketUpdateCmd.Flags().String("borrow-cap", "0", "borrow cap, 0 for unlimited")

	marketReservesCmd.Flags().String("amount", "0", "amount to withdraw")
	marketReservesCmd.Flags().String("to", "", "treasury user id")

	marketCmd.AddCommand(marketCreateCmd, marketUpdateCmd, marketReservesCmd)
}
