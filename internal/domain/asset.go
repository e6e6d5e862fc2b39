package domain

// Asset is one entry in the ledger: total balance plus the portion not
// reserved by open orders, and the last known mark price.
type Asset struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	Available float64 `json:"available"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
}

// Reserved returns the amount currently earmarked by open orders.
func (a *Asset) Reserved() float64 {
	return a.Balance - a.Available
}

// SeedAsset describes a default ledger entry at session start.
type SeedAsset struct {
	Symbol  string
	Name    string
	Price   float64
	Balance float64
}

// DefaultSeed is the asset list every fresh session starts from.
func DefaultSeed() []SeedAsset {
	return []SeedAsset{
		{Symbol: "USDT", Name: "Tether", Price: 1},
		{Symbol: "BTC", Name: "Bitcoin", Price: 60000},
		{Symbol: "ETH", Name: "Ethereum", Price: 3200},
		{Symbol: "BNB", Name: "BNB", Price: 580},
		{Symbol: "SOL", Name: "Solana", Price: 150},
		{Symbol: "XRP", Name: "XRP", Price: 0.52},
	}
}

// GuestSeed is the demo balance set used by guest mode.
func GuestSeed() []SeedAsset {
	seed := DefaultSeed()
	for i := range seed {
		switch seed[i].Symbol {
		case "USDT":
			seed[i].Balance = 10000
		case "BTC":
			seed[i].Balance = 0.245
		}
	}
	return seed
}
