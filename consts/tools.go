package consts

// Tool names as declared to the chat model.
const (
	ToolGetStockInfo       = "get_stock_info"
	ToolGetHistoricalPrice = "get_historical_price"
)

// InvalidKey is the displayable answer for an attribute the provider does not report.
const InvalidKey = "Invalid key"

// DefaultHistoryStart is used when a historical price call carries no start date.
const DefaultHistoryStart = "1900-01-01"

// DateLayout is the wire format of tool call dates.
const DateLayout = "2006-01-02"

const DefaultAttributeKey = "currentPrice"
