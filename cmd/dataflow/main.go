// Command dataflow queries the configured market-data provider directly,
// without a chat model in between.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dyike/TickerTalk/config"
	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/dataflows"
)

func main() {
	symbol := flag.String("symbol", "AAPL", "ticker symbol")
	key := flag.String("key", consts.DefaultAttributeKey, "stock info attribute")
	days := flag.Int("days", 10, "days of price history, 0 to skip")
	flag.Parse()

	ctx := context.Background()
	cfg := config.DefaultConfig()

	provider, err := dataflows.NewProvider(cfg)
	if err != nil {
		log.Fatal(err)
	}
	data := dataflows.NewStockData(provider)

	value, err := data.FetchAttribute(ctx, *symbol, *key)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[%s] %s %s = %s\n", data.ProviderName(), value.Symbol, value.Key, value)

	if *days <= 0 {
		return
	}
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -*days)
	series, err := data.FetchHistory(ctx, *symbol, start, end)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("[%s] %s %s\n", data.ProviderName(), series.Symbol, dataflows.FormatDateRange(start, end))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(series.Points); err != nil {
		log.Fatal(err)
	}
}
