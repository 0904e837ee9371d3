package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestNewStoreFactory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	cases := []struct {
		kind    string
		dsn     string
		wantErr bool
	}{
		{"memory", "", false},
		{"mem", "", false},
		{"file", filepath.Join(dir, "factory_store.json"), false},
		{"file", "", true},
		{"sqlite", filepath.Join(dir, "factory.db"), false},
		{"sqlite", "", true},
		{"postgres", "", true},
		{"redis", mr.Addr(), false},
		{"redis", "", true},
		{"unknown", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.kind+"/"+tc.dsn, func(t *testing.T) {
			st, err := NewStore(ctx, tc.kind, tc.dsn)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for kind %q", tc.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStore %s failed: %v", tc.kind, err)
			}
			if st == nil {
				t.Fatalf("expected non-nil store for %s", tc.kind)
			}
			if err := st.Close(); err != nil {
				t.Fatalf("close failed: %v", err)
			}
		})
	}
}
