package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chainstamp/chainstamp/pkg/api"
)

const helloHash = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	RootCmd.SetOut(out)
	RootCmd.SetErr(out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)
	t.Cleanup(func() { RootCmd.SetArgs(nil) })

	err := RootCmd.Execute()
	return out.String(), err
}

func TestHashCmd(t *testing.T) {
	tt := []struct {
		name  string
		stdin string
		args  []string

		expectedHash string
		expectedErr  bool
	}{
		{
			name: "argument",
			args: []string{"hash", `"hello"`},

			expectedHash: helloHash,
		},
		{
			name:  "stdin",
			stdin: `"hello"`,
			args:  []string{"hash", "-"},

			expectedHash: helloHash,
		},
		{
			name: "key order does not matter",
			args: []string{"hash", `{"b":2,"a":1}`},

			expectedHash: "43258cff783fe7036d8a43033f830adfc60ec037382473548ac742b888292777",
		},
		{
			name: "invalid json",
			args: []string{"hash", `{"a":`},

			expectedErr: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			out, err := execute(t, tc.stdin, tc.args...)

			// then
			if tc.expectedErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expectedHash, strings.TrimSpace(out))
		})
	}
}

func TestVerifyCmd(t *testing.T) {
	tt := []struct {
		name     string
		verified bool

		expectedErr error
	}{
		{
			name:     "all verified",
			verified: true,
		},
		{
			name: "not verified",

			expectedErr: ErrNotVerified,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var gotKey string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotKey = r.Header.Get(api.APIKeyHeader)

				summary := api.BatchSummary{Total: 1, NotFound: 1}
				if tc.verified {
					summary = api.BatchSummary{Total: 1, Verified: 1}
				}
				_ = json.NewEncoder(w).Encode(api.BatchVerificationResult{
					Results: []api.VerificationResult{{DataHash: helloHash, Verified: tc.verified, Source: "record"}},
					Summary: summary,
				})
			}))
			defer srv.Close()

			// when
			out, err := execute(t, "", "verify", "--url", srv.URL, "--api-key", "secret", helloHash)

			// then
			require.Equal(t, "secret", gotKey)
			require.Contains(t, out, helloHash)
			require.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestRenderVerification(t *testing.T) {
	// given
	result := &api.BatchVerificationResult{
		Results: []api.VerificationResult{
			{DataHash: "aa", Verified: true, Source: "blockchain", TransactionHash: "0x01", Block: &api.BlockReference{Number: 42}},
			{DataHash: "bb", Source: "blockchain"},
		},
		Summary: api.BatchSummary{Total: 2, Verified: 1, NotFound: 1},
	}

	// when
	out := renderVerification(result)

	// then
	require.Contains(t, out, "0x01")
	require.Contains(t, out, "42")
	require.Contains(t, strings.ToLower(out), "total 2")
}

func TestConfigDumpCmd(t *testing.T) {
	// given
	file := filepath.Join(t.TempDir(), "dump.yaml")

	// when
	_, err := execute(t, "", "config", "dump", file)

	// then
	require.NoError(t, err)

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(b), "loglevel: DEBUG")
}
