package handler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainstamp/chainstamp/internal/api/handler"
	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/pkg/api"
)

func TestValidator(t *testing.T) {
	tt := []struct {
		name string
		req  any

		expectedFields []string
	}{
		{
			name: "valid register request",
			req: &api.RegisterRequest{
				TransactionHash: txHash,
				DataHash:        dataHash,
				UserAddress:     userAddress,
			},
		},
		{
			name: "every field invalid",
			req: &api.RegisterRequest{
				TransactionHash: "5c504ed4",
				DataHash:        "xyz",
				UserAddress:     "0xzz",
				WebhookURL:      "::",
			},

			expectedFields: []string{"transactionHash", "dataHash", "userAddress", "webhookUrl"},
		},
		{
			name: "missing required fields",
			req:  &api.PrepareRequest{},

			expectedFields: []string{"userAddress", "data"},
		},
		{
			name: "empty hashes",
			req:  &api.VerifyBatchRequest{Hashes: []string{}},

			expectedFields: []string{"hashes"},
		},
	}

	sut := handler.NewValidator()

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			err := sut.Validate(tc.req)

			// then
			if len(tc.expectedFields) == 0 {
				require.NoError(t, err)
				return
			}

			e, ok := errs.As(err)
			require.True(t, ok)
			require.Equal(t, errs.KindValidation, e.Kind)

			fields, ok := e.Details["fields"].(map[string]string)
			require.True(t, ok)
			require.Len(t, fields, len(tc.expectedFields))
			for _, f := range tc.expectedFields {
				require.Contains(t, fields, f)
			}
		})
	}
}
