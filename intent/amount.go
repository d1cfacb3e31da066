package intent

import (
	"errors"
	"regexp"
	"strings"

	"github.com/dan13ram/omnichain-portal/common"
	"github.com/shopspring/decimal"
)

var amountRegex = regexp.MustCompile(common.AmountPattern)

// ParseAmount accepts non-empty digit strings with at most one decimal point
// whose value is strictly positive.
func ParseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, common.NewError(common.KindInvalidAmountFormat, "amount", raw, errors.New("amount is empty"))
	}
	if !amountRegex.MatchString(raw) {
		return decimal.Zero, common.NewError(common.KindInvalidAmountFormat, "amount", raw, errors.New("amount must be a non-negative decimal"))
	}

	normalized := raw
	if strings.HasPrefix(normalized, ".") {
		normalized = "0" + normalized
	}
	if strings.HasSuffix(normalized, ".") {
		normalized += "0"
	}

	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, common.NewError(common.KindInvalidAmountFormat, "amount", raw, err)
	}
	if !value.IsPositive() {
		return decimal.Zero, common.NewError(common.KindInvalidAmountFormat, "amount", raw, errors.New("amount must be greater than zero"))
	}
	return value, nil
}
