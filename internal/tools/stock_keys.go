package tools

// StockInfoKeys are the attribute names get_stock_info accepts.
var StockInfoKeys = []string{
	"address1", "city", "state", "zip", "country", "phone", "website", "industry",
	"industryKey", "industryDisp", "sector", "sectorKey", "sectorDisp", "longBusinessSummary",
	"fullTimeEmployees", "companyOfficers", "auditRisk", "boardRisk", "compensationRisk",
	"shareHolderRightsRisk", "overallRisk", "governanceEpochDate", "compensationAsOfEpochDate",
	"maxAge", "priceHint", "previousClose", "open", "dayLow", "dayHigh", "regularMarketPreviousClose",
	"regularMarketOpen", "regularMarketDayLow", "regularMarketDayHigh", "dividendRate",
	"dividendYield", "exDividendDate", "beta", "trailingPE", "forwardPE", "volume",
	"regularMarketVolume", "averageVolume", "averageVolume10days", "averageDailyVolume10Day",
	"bid", "ask", "bidSize", "askSize", "marketCap", "fiftyTwoWeekLow", "fiftyTwoWeekHigh",
	"priceToSalesTrailing12Months", "fiftyDayAverage", "twoHundredDayAverage",
	"currency", "enterpriseValue", "profitMargins", "floatShares", "sharesOutstanding",
	"sharesShort", "sharesShortPriorMonth", "sharesShortPreviousMonthDate",
	"dateShortInterest", "sharesPercentSharesOut", "heldPercentInsiders", "heldPercentInstitutions",
	"shortRatio", "shortPercentOfFloat", "impliedSharesOutstanding", "bookValue",
	"priceToBook", "lastFiscalYearEnd", "nextFiscalYearEnd", "mostRecentQuarter",
	"earningsQuarterlyGrowth", "netIncomeToCommon", "trailingEps", "forwardEps",
	"pegRatio", "enterpriseToRevenue", "enterpriseToEbitda", "52WeekChange",
	"SandP52WeekChange", "lastDividendValue", "lastDividendDate", "exchange",
	"quoteType", "symbol", "underlyingSymbol", "shortName", "longName", "firstTradeDateEpochUtc",
	"timeZoneFullName", "timeZoneShortName", "uuid", "messageBoardId", "gmtOffSetMilliseconds",
	"currentPrice", "targetHighPrice", "targetLowPrice", "targetMeanPrice",
	"targetMedianPrice", "recommendationMean", "recommendationKey", "numberOfAnalystOpinions",
	"totalCash", "totalCashPerShare", "ebitda", "totalDebt", "quickRatio", "currentRatio",
	"totalRevenue", "debtToEquity", "revenuePerShare", "returnOnAssets", "returnOnEquity",
	"freeCashflow", "operatingCashflow", "earningsGrowth", "revenueGrowth",
	"grossMargins", "ebitdaMargins", "operatingMargins", "financialCurrency",
	"trailingPegRatio",
}
