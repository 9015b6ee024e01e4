package helpers

import (
	"math/rand"
	"time"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyz"

func randomLetters(n int) string {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[src.Intn(len(letterBytes))]
	}
	return string(b)
}

func GenerateAgentCode() string {
	return "0" + randomLetters(3)
}

// allowedCountryCurrencies maps a country to the currencies its players may hold.
var allowedCountryCurrencies = map[string][]string{
	"ID": {"IDR", "USD"},
	"MY": {"MYR", "USD"},
	"TH": {"THB", "USD"},
	"VN": {"VND", "USD"},
	"KH": {"KHR", "USD"},
	"US": {"USD"},
}

func CurrencyAllowed(country, currency string) (supported bool, allowed bool) {
	currencies, ok := allowedCountryCurrencies[country]
	if !ok {
		return false, false
	}
	for _, ccy := range currencies {
		if ccy == currency {
			return true, true
		}
	}
	return true, false
}
