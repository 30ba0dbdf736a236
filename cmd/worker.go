package cmd

import (
	"sync"

	"lendpool/worker"
	"lendpool/worker/interest"
	"lendpool/worker/priceoracle"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lendpool job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		marketStore := provideMarketStore(database)
		priceStore := providePriceStore(database)
		propertyStore := providePropertyStore(database)

		blockService := provideBlockService()
		priceService := providePriceService(database, blockService)
		marketService := provideMarketService(database, blockService)

		workers := []worker.Worker{
			interest.New(marketStore, blockService, marketService, database),
			priceoracle.New(marketStore, priceStore, propertyStore, blockService, priceService, database),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				_ = worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
