package model

import (
	"encoding/json"
	"net/mail"
)

// EmailConfig holds the SMTP delivery settings for one organization.
// Records are keyed by OrganizationCode, which must match the key they
// are filed under.
type EmailConfig struct {
	SMTPServer       string `json:"smtp_server"`
	SMTPPort         int    `json:"smtp_port"`
	SMTPUsername     string `json:"smtp_username"`
	SMTPPassword     string `json:"smtp_password"`
	UseTLS           bool   `json:"use_tls"`
	UseSSL           bool   `json:"use_ssl"`
	FromEmail        string `json:"from_email"`
	OrganizationName string `json:"organization_name"`
	OrganizationCode string `json:"organization_code"`
}

// UnmarshalJSON applies the use_tls/use_ssl defaults (TLS on, SSL off)
// when those fields are absent from the payload.
func (c *EmailConfig) UnmarshalJSON(data []byte) error {
	type plain EmailConfig
	aux := struct {
		*plain
		UseTLS *bool `json:"use_tls"`
		UseSSL *bool `json:"use_ssl"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.UseTLS = aux.UseTLS == nil || *aux.UseTLS
	c.UseSSL = aux.UseSSL != nil && *aux.UseSSL
	return nil
}

// Validate reports field-level problems with the config, keyed by JSON
// field name. A nil map means the config is valid.
func (c *EmailConfig) Validate() map[string]string {
	errs := make(map[string]string)

	if c.SMTPServer == "" {
		errs["smtp_server"] = "must be provided"
	}
	if c.SMTPPort < 1 || c.SMTPPort > 65535 {
		errs["smtp_port"] = "must be between 1 and 65535"
	}
	if c.SMTPUsername == "" {
		errs["smtp_username"] = "must be provided"
	}
	if c.SMTPPassword == "" {
		errs["smtp_password"] = "must be provided"
	}
	if c.FromEmail == "" {
		errs["from_email"] = "must be provided"
	} else if _, err := mail.ParseAddress(c.FromEmail); err != nil {
		errs["from_email"] = "must be a valid email address"
	}
	if c.OrganizationName == "" {
		errs["organization_name"] = "must be provided"
	}
	if c.OrganizationCode == "" {
		errs["organization_code"] = "must be provided"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
