package provider

// Entry is a catalog row.
type Entry struct {
	ID   string
	Name string
	Kind Kind
}

// Record returns a fresh record for e with the defaults a newly onboarded
// provider gets: available and both directions enabled.
func (e Entry) Record() Record {
	return Record{
		ID:          e.ID,
		Name:        e.Name,
		Kind:        e.Kind,
		CanReceive:  true,
		CanSend:     true,
		IsAvailable: true,
	}
}

var catalog = []Entry{
	{"KUCOIN", "KuCoin", KindCEX},
	{"WHITEBIT", "WhiteBIT", KindCEX},
	{"BYBIT", "ByBit", KindCEX},
	{"RAPIRA", "Rapira", KindCEX},
	{"MEXC", "MEXC", KindCEX},
	{"BINANCE", "Binance", KindCEX},
	{"COINBASE_EXCHANGE", "Coinbase Exchange", KindCEX},
	{"UPBIT", "Upbit", KindCEX},
	{"BITSTAMP", "Bitstamp", KindCEX},
	{"BINGX", "BingX", KindCEX},
	{"BITFINEX", "Bitfinex", KindCEX},
	{"HTX", "HTX", KindCEX},
	{"GATEIO", "Gate.io", KindCEX},
	{"BITGET", "Bitget", KindCEX},
	{"OKX", "OKX", KindCEX},
	{"GEMINI", "Gemini", KindCEX},
	{"LBANK", "LBank", KindCEX},

	{"UNISWAP", "Uniswap", KindDEX},
	{"PANCAKESWAP", "PancakeSwap", KindDEX},

	{"PAYPAL", "PayPal", KindPSP},
	{"ADVCASH", "Advanced Cash", KindPSP},
	{"FIREKASSA", "FireKassa", KindPSP},
	{"APIRONE", "Apirone", KindPSP},

	{"CHANGENOW", "ChangeNOW", KindExchanger},
	{"CHANGELLY", "Changelly", KindExchanger},
	{"FIXEDFLOAT", "ff.io", KindExchanger},
	{"QUICKEX", "Quickex", KindExchanger},
	{"ALFABIT", "Alfabit", KindExchanger},

	{"WESTWALLET", "WestWallet", KindWallet},
	{"TRUSTWALLET", "Trust Wallet", KindWallet},
	{"TRONWALLET", "Tron Wallet", KindWallet},
	{"ANTARCTICWALLET", "Antarctic Wallet", KindWallet},
	{"TELEGRAM_WALLET", "Telegram Wallet", KindWallet},

	{"BTC_NODE", "BTC Node", KindNode},
	{"XMR_NODE", "XMR Node", KindNode},
	{"USDT_NODE", "USDT Node", KindNode},
	{"USDC_NODE", "USDC Node", KindNode},
	{"DASH_NODE", "DASH Node", KindNode},

	{"SBERBANK", "Сбербанк", KindBank},
	{"TBANK", "ТБанк", KindBank},
	{"ALFABANK", "Альфабанк", KindBank},
	{"VTB", "ВТБ банк", KindBank},

	{"MANUAL", "Manual", KindCash},
}

var catalogIndex = func() map[string]Entry {
	idx := make(map[string]Entry, len(catalog))
	for _, e := range catalog {
		idx[e.ID] = e
	}
	return idx
}()

// Catalog returns a copy of the built-in provider catalog.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Entry, bool) {
	e, ok := catalogIndex[NormalizeID(id)]
	return e, ok
}

// Known reports whether id is in the catalog.
func Known(id string) bool {
	_, ok := Lookup(id)
	return ok
}
