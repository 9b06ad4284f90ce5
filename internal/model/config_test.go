package model

import (
	"encoding/json"
	"testing"
)

func validConfig() EmailConfig {
	return EmailConfig{
		SMTPServer:       "smtp.gmail.com",
		SMTPPort:         587,
		SMTPUsername:     "test@example.com",
		SMTPPassword:     "test-password",
		UseTLS:           true,
		UseSSL:           false,
		FromEmail:        "test@example.com",
		OrganizationName: "Test Organization",
		OrganizationCode: "TEST001",
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	cfg := validConfig()
	if errs := cfg.Validate(); errs != nil {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*EmailConfig)
		field  string
	}{
		{"missing server", func(c *EmailConfig) { c.SMTPServer = "" }, "smtp_server"},
		{"zero port", func(c *EmailConfig) { c.SMTPPort = 0 }, "smtp_port"},
		{"port too large", func(c *EmailConfig) { c.SMTPPort = 70000 }, "smtp_port"},
		{"negative port", func(c *EmailConfig) { c.SMTPPort = -25 }, "smtp_port"},
		{"missing username", func(c *EmailConfig) { c.SMTPUsername = "" }, "smtp_username"},
		{"missing password", func(c *EmailConfig) { c.SMTPPassword = "" }, "smtp_password"},
		{"missing from email", func(c *EmailConfig) { c.FromEmail = "" }, "from_email"},
		{"malformed from email", func(c *EmailConfig) { c.FromEmail = "not-an-email" }, "from_email"},
		{"missing org name", func(c *EmailConfig) { c.OrganizationName = "" }, "organization_name"},
		{"missing org code", func(c *EmailConfig) { c.OrganizationCode = "" }, "organization_code"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			errs := cfg.Validate()
			if errs == nil {
				t.Fatal("expected validation errors, got none")
			}
			if _, ok := errs[tc.field]; !ok {
				t.Errorf("expected an error for field %q, got %v", tc.field, errs)
			}
		})
	}
}

func TestUnmarshalAppliesDefaults(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantTLS bool
		wantSSL bool
	}{
		{"both omitted", `{}`, true, false},
		{"tls disabled", `{"use_tls": false}`, false, false},
		{"ssl enabled", `{"use_ssl": true}`, true, true},
		{"both explicit", `{"use_tls": false, "use_ssl": true}`, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg EmailConfig
			if err := json.Unmarshal([]byte(tc.body), &cfg); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if cfg.UseTLS != tc.wantTLS {
				t.Errorf("UseTLS = %v, want %v", cfg.UseTLS, tc.wantTLS)
			}
			if cfg.UseSSL != tc.wantSSL {
				t.Errorf("UseSSL = %v, want %v", cfg.UseSSL, tc.wantSSL)
			}
		})
	}
}

func TestUnmarshalReportsTypeErrors(t *testing.T) {
	var cfg EmailConfig
	err := json.Unmarshal([]byte(`{"smtp_port": "587"}`), &cfg)
	if err == nil {
		t.Fatal("expected an error for a string smtp_port")
	}
	if _, ok := err.(*json.UnmarshalTypeError); !ok {
		t.Errorf("expected *json.UnmarshalTypeError, got %T", err)
	}
}
