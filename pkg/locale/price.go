package locale

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/message"
)

const DefaultCurrency = "UZS"

var supportedCurrencies = []string{"UZS", "USD", "EUR", "RUB"}

func SupportedCurrencies() []string {
	return append([]string(nil), supportedCurrencies...)
}

func IsSupportedCurrency(code string) bool {
	for _, c := range supportedCurrencies {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// FormatPrice renders amount in the given ISO currency using the number
// conventions of lang. Amounts are never converted between currencies.
func FormatPrice(amount float64, code, lang string) string {
	printer := message.NewPrinter(Tag(lang))

	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return printer.Sprintf("%.2f", amount)
	}
	return printer.Sprint(currency.Symbol(unit.Amount(amount)))
}
