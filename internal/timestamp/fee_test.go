package timestamp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateFee(t *testing.T) {
	tt := []struct {
		name     string
		gasLimit uint64
		gasPrice *big.Int
		fiatRate float64

		expectedWei    string
		expectedAmount string
		expectedFiat   string
	}{
		{
			name:           "20 gwei",
			gasLimit:       100_000,
			gasPrice:       big.NewInt(20_000_000_000),
			fiatRate:       2000,
			expectedWei:    "2000000000000000",
			expectedAmount: "0.002",
			expectedFiat:   "4.00",
		},
		{
			name:           "one wei",
			gasLimit:       1,
			gasPrice:       big.NewInt(1),
			fiatRate:       3000,
			expectedWei:    "1",
			expectedAmount: "0.000000000000000001",
			expectedFiat:   "0.00",
		},
		{
			name:           "whole ether without fiat rate",
			gasLimit:       1_000_000,
			gasPrice:       big.NewInt(1_000_000_000_000),
			expectedWei:    "1000000000000000000",
			expectedAmount: "1",
		},
		{
			name:           "zero price",
			gasLimit:       21_000,
			gasPrice:       big.NewInt(0),
			fiatRate:       2000,
			expectedWei:    "0",
			expectedAmount: "0",
			expectedFiat:   "0.00",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			fee := estimateFee(tc.gasLimit, tc.gasPrice, "ETH", tc.fiatRate, "USD")

			assert.Equal(t, tc.expectedWei, fee.Wei)
			assert.Equal(t, tc.expectedAmount, fee.Amount)
			assert.Equal(t, tc.expectedFiat, fee.Fiat)
			assert.Equal(t, "ETH", fee.Symbol)
			assert.Equal(t, tc.gasLimit, fee.GasLimit)
		})
	}
}
