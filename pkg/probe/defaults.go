package probe

// defaultEntries is the built-in endpoint table for centralized exchanges.
var defaultEntries = []Entry{
	{
		Provider: "WHITEBIT",
		Status:   StatusEndpoint("https://whitebit.com/api/v4/public/platform/status", WhiteBIT),
		Time:     TimeEndpoint("https://whitebit.com/api/v4/public/time"),
	},
	{
		Provider: "BYBIT",
		Status:   StatusEndpoint("https://api.bybit.com/v5/system/status", Bybit),
		Time:     TimeEndpoint("https://api.bybit.com/v5/market/time"),
	},
	{
		Provider: "BINANCE",
		Status:   StatusEndpoint("https://api.binance.com/sapi/v1/system/status", Binance),
		Time:     TimeEndpoint("https://api.binance.com/api/v3/time"),
	},
	{
		Provider: "OKX",
		Status:   StatusEndpoint("https://www.okx.com/api/v5/system/status", OKX),
		Time:     TimeEndpoint("https://www.okx.com/api/v5/public/time"),
	},
	{
		Provider: "HTX",
		Status:   StatusEndpoint("https://api.huobi.pro/v2/market-status", HTX),
		Time:     TimeEndpoint("https://api.huobi.pro/v1/common/timestamp"),
	},
	{
		Provider: "BITFINEX",
		Status:   StatusEndpoint("https://api-pub.bitfinex.com/v2/platform/status", Bitfinex),
		Time:     TimeEndpoint("https://api-pub.bitfinex.com/v2/ticker/tBTCUSD"),
	},
	{Provider: "KUCOIN", Time: TimeEndpoint("https://api.kucoin.com/api/v1/timestamp")},
	{Provider: "MEXC", Time: TimeEndpoint("https://api.mexc.com/api/v3/time")},
	{Provider: "RAPIRA", Time: TimeEndpoint("https://api.rapira.net/open/system/time")},
	{Provider: "COINBASE_EXCHANGE", Time: TimeEndpoint("https://api.exchange.coinbase.com/time")},
	{Provider: "UPBIT", Time: TimeEndpoint("https://api.upbit.com/v1/market/all")},
	{Provider: "BITSTAMP", Time: TimeEndpoint("https://www.bitstamp.net/api/v2/ticker/btcusd/")},
	{Provider: "BINGX", Time: TimeEndpoint("https://open-api.bingx.com/openApi/spot/v1/common/time")},
	{Provider: "GATEIO", Time: TimeEndpoint("https://api.gateio.ws/api/v4/spot/time")},
	{Provider: "BITGET", Time: TimeEndpoint("https://api.bitget.com/api/v2/public/time")},
	{Provider: "GEMINI", Time: TimeEndpoint("https://api.gemini.com/v1/pricefeed")},
	{Provider: "LBANK", Time: TimeEndpoint("https://api.lbkex.com/v2/timestamp.do")},
}

// DefaultEntries returns a copy of the built-in endpoint table.
func DefaultEntries() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

// DefaultRegistry returns a registry holding the built-in endpoint table.
func DefaultRegistry() *Registry {
	return MustRegistry(defaultEntries...)
}
