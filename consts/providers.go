package consts

// LLM providers
const (
	ProviderGroq     = "groq"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
)

// Market data providers
const (
	MarketDataYahoo    = "yahoo"
	MarketDataFinnhub  = "finnhub"
	MarketDataLongport = "longport"
)

const (
	OpenAIBaseURL   = "https://api.openai.com/v1"
	GroqBaseURL     = "https://api.groq.com/openai/v1"
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	FinnhubBaseURL  = "https://finnhub.io/api/v1"
)
