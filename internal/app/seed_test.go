package app

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/mailconf/internal/store"
)

func TestSeedStoreSkipsBadEntries(t *testing.T) {
	raw := `{
		"GOOD1": {
			"smtp_server": "smtp.example.org",
			"smtp_port": 587,
			"smtp_username": "mailer@example.org",
			"smtp_password": "secret",
			"from_email": "mailer@example.org",
			"organization_name": "Good Org",
			"organization_code": "GOOD1"
		},
		"BADTYPE": {
			"smtp_server": "smtp.example.org",
			"smtp_port": "not-a-number",
			"organization_code": "BADTYPE"
		},
		"INCOMPLETE": {
			"smtp_server": "smtp.example.org",
			"organization_code": "INCOMPLETE"
		},
		"MISMATCH": {
			"smtp_server": "smtp.example.org",
			"smtp_port": 587,
			"smtp_username": "mailer@example.org",
			"smtp_password": "secret",
			"from_email": "mailer@example.org",
			"organization_name": "Wrong Key",
			"organization_code": "SOMETHINGELSE"
		}
	}`

	st := store.NewConfigStore()
	seedStore(slog.New(slog.NewTextHandler(io.Discard, nil)), st, raw)

	if want := []string{"GOOD1"}; !reflect.DeepEqual(st.List(), want) {
		t.Errorf("seeded codes = %v, want %v", st.List(), want)
	}

	cfg, err := st.Get("GOOD1")
	if err != nil {
		t.Fatalf("Get returned an error: %v", err)
	}
	if !cfg.UseTLS || cfg.UseSSL {
		t.Errorf("expected TLS/SSL defaults on the seeded entry, got %+v", cfg)
	}
}

func TestSeedStoreMalformedBlob(t *testing.T) {
	st := store.NewConfigStore()
	seedStore(slog.New(slog.NewTextHandler(io.Discard, nil)), st, `{not json`)

	if got := st.List(); len(got) != 0 {
		t.Errorf("expected an empty store, got %v", got)
	}
}
