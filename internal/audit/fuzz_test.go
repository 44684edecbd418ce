package audit

import (
	"os"
	"path/filepath"
	"testing"
)

func FuzzVerify(f *testing.F) {
	f.Add([]byte(`{"ts":"2026-01-01T00:00:00.000Z","trace_id":"t","subject":{"tool":"x"},"decision":"allow","dispatched":false,"config_hash":"","prev_hash":"` + GenesisHash + `"}` + "\n"))
	f.Add([]byte("not json\n"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		path := filepath.Join(t.TempDir(), "fuzz.jsonl")
		if err := os.WriteFile(path, data, 0600); err != nil {
			t.Fatal(err)
		}
		result := Verify(path)
		if !result.Valid && result.Error == "" {
			t.Fatal("invalid result without error message")
		}
	})
}
