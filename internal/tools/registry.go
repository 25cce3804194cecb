// Package tools declares the functions the chat model may call.
package tools

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/dyike/TickerTalk/consts"
	"github.com/dyike/TickerTalk/internal/utils"
)

// IsRecognizedKey reports whether key is one of StockInfoKeys.
func IsRecognizedKey(key string) bool {
	return slices.Contains(StockInfoKeys, key)
}

// NewStockInfoTool declares get_stock_info.
func NewStockInfoTool() (*schema.ToolInfo, error) {
	desc, err := utils.LoadPromptWithContext("tools/"+consts.ToolGetStockInfo, map[string]string{
		"Keys": strings.Join(StockInfoKeys, ", "),
	})
	if err != nil {
		return nil, err
	}

	return &schema.ToolInfo{
		Name: consts.ToolGetStockInfo,
		Desc: desc,
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"symbol": {
				Type:     schema.String,
				Desc:     "Stock ticker symbol",
				Required: true,
			},
			"key": {
				Type:     schema.String,
				Desc:     "Stock info key. Use " + consts.DefaultAttributeKey + " for a generic stock price question",
				Enum:     StockInfoKeys,
				Required: true,
			},
		}),
	}, nil
}

// NewHistoricalPriceTool declares get_historical_price.
func NewHistoricalPriceTool() (*schema.ToolInfo, error) {
	desc, err := utils.LoadPrompt("tools/" + consts.ToolGetHistoricalPrice)
	if err != nil {
		return nil, err
	}

	return &schema.ToolInfo{
		Name: consts.ToolGetHistoricalPrice,
		Desc: desc,
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"symbol": {
				Type:     schema.String,
				Desc:     "Stock ticker symbol",
				Required: true,
			},
			"start_date": {
				Type:     schema.String,
				Desc:     "Start date, YYYY-mm-dd. Must be before end_date",
				Required: true,
			},
			"end_date": {
				Type:     schema.String,
				Desc:     "End date, YYYY-mm-dd. Typically today; must be after start_date",
				Required: true,
			},
		}),
	}, nil
}

// Infos returns both tool declarations in a stable order.
func Infos() ([]*schema.ToolInfo, error) {
	stockInfo, err := NewStockInfoTool()
	if err != nil {
		return nil, fmt.Errorf("declare %s: %w", consts.ToolGetStockInfo, err)
	}
	history, err := NewHistoricalPriceTool()
	if err != nil {
		return nil, fmt.Errorf("declare %s: %w", consts.ToolGetHistoricalPrice, err)
	}
	return []*schema.ToolInfo{stockInfo, history}, nil
}
