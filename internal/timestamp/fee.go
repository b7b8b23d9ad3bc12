package timestamp

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// estimateFee converts gasLimit * gasPrice wei to the major unit. The fiat
// value uses a static rate and is only an approximation.
func estimateFee(gasLimit uint64, gasPrice *big.Int, symbol string, fiatRate float64, fiatCurrency string) FeeEstimate {
	wei := new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), gasPrice)

	amount := new(big.Rat).SetFrac(wei, big.NewInt(params.Ether))

	fee := FeeEstimate{
		GasLimit: gasLimit,
		GasPrice: gasPrice.String(),
		Wei:      wei.String(),
		Amount:   trimDecimal(amount.FloatString(18)),
		Symbol:   symbol,
	}

	if fiatRate > 0 {
		rate := new(big.Rat)
		if rate.SetFloat64(fiatRate) != nil {
			fee.Fiat = new(big.Rat).Mul(amount, rate).FloatString(2)
			fee.FiatCurrency = fiatCurrency
		}
	}

	return fee
}

func trimDecimal(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}

	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
