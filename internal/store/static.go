package store

import "github.com/mlc-apps/finance-backend/internal/finance/domain"

var (
	regularCurrencies = []string{
		"USD", "EUR", "GBP", "CHF", "JPY", "CNY", "PLN", "CZK", "TRY", "RUB", "UAH", "KZT",
	}

	cryptoCurrencies = []string{
		"BTC", "ETH", "USDT", "USDC", "BNB", "SOL", "XRP", "ADA", "DOGE", "TON",
	}
)

// Currencies returns the static currency lists. The payload is identical
// across calls within a process lifetime.
func Currencies() domain.Currencies {
	return domain.Currencies{
		Regular: append([]string(nil), regularCurrencies...),
		Crypto:  append([]string(nil), cryptoCurrencies...),
	}
}
