package cli_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/malbeclabs/nftstake/client/stakeview/internal/cli"
)

// fakeRPC answers the JSON-RPC methods the read path uses from an in-memory
// account map. Unknown addresses read as not found.
type fakeRPC struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey][]byte
	calls    atomic.Int32
}

func newFakeRPC(t *testing.T) (*fakeRPC, string) {
	t.Helper()
	f := &fakeRPC{accounts: make(map[solana.PublicKey][]byte)}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func (f *fakeRPC) setAccount(t *testing.T, addr solana.PublicKey, serialize func(io.Writer) error) {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := serialize(buf); err != nil {
		t.Fatalf("serialize account: %v", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[addr] = buf.Bytes()
}

func (f *fakeRPC) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)

	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	switch req.Method {
	case "getAccountInfo":
		var addr string
		if len(req.Params) > 0 {
			_ = json.Unmarshal(req.Params[0], &addr)
		}
		pk, err := solana.PublicKeyFromBase58(addr)
		f.mu.Lock()
		data, ok := f.accounts[pk]
		f.mu.Unlock()
		var value any
		if err == nil && ok {
			value = map[string]any{
				"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
				"executable": false,
				"lamports":   1_000_000,
				"owner":      solana.SystemProgramID.String(),
				"rentEpoch":  0,
			}
		}
		resp["result"] = map[string]any{"context": map[string]any{"slot": 1}, "value": value}
	case "getTokenAccountBalance":
		resp["result"] = map[string]any{
			"context": map[string]any{"slot": 1},
			"value": map[string]any{
				"amount":         "1550",
				"decimals":       2,
				"uiAmount":       15.5,
				"uiAmountString": "15.5",
			},
		}
	case "getProgramAccounts":
		resp["result"] = []any{}
	default:
		resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// runCLI executes the root command against rpcURL with no profile file.
func runCLI(t *testing.T, rpcURL string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	base := []string{
		"--env", "localnet",
		"--rpc-url", rpcURL,
		"--profile", filepath.Join(t.TempDir(), "missing.yml"),
	}
	cmd.SetArgs(append(append([]string{args[0]}, base...), args[1:]...))
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}
