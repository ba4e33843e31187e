package services

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/spf13/pflag"
)

func TestQuotationConfig_RegisterFlags(t *testing.T) {
	cfg := DefaultQuotationConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--company", "Acme Machining",
		"--company-phone", "918-555-0199",
		"--logo", "https://cdn.example.com/acme.png",
		"--logo-timeout", "500ms",
		"--currency", "USD",
		"--quote-schedule=false",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Issuer.Name != "Acme Machining" {
		t.Errorf("Issuer.Name = %q", cfg.Issuer.Name)
	}
	if cfg.Issuer.Phone != "918-555-0199" {
		t.Errorf("Issuer.Phone = %q", cfg.Issuer.Phone)
	}
	if cfg.Issuer.Email != "admin@j3mfabrication.com" {
		t.Errorf("Issuer.Email changed to %q without a flag", cfg.Issuer.Email)
	}
	if cfg.LogoTimeout != 500*time.Millisecond {
		t.Errorf("LogoTimeout = %v", cfg.LogoTimeout)
	}
	if cfg.CurrencySymbol != "USD" || cfg.IncludeSchedule {
		t.Errorf("currency/schedule = %q/%v", cfg.CurrencySymbol, cfg.IncludeSchedule)
	}
}

func TestQuotationConfig_NewLogoSource(t *testing.T) {
	t.Run("url is fetched and cached", func(t *testing.T) {
		cfg := DefaultQuotationConfig()
		cfg.LogoPath = "https://cdn.example.com/acme.png"
		cached, ok := cfg.NewLogoSource(nil).(*CachedLogo)
		if !ok {
			t.Fatal("expected a cached source")
		}
		if h, ok := cached.source.(HTTPLogo); !ok || h.URL != cfg.LogoPath {
			t.Errorf("wrapped source = %#v", cached.source)
		}
	})

	t.Run("path resolves under the static dir", func(t *testing.T) {
		cfg := DefaultQuotationConfig()
		cfg.LogoPath = "/img/logo.png"
		cfg.LogoCacheTTL = 0
		fsys := fstest.MapFS{}
		src, ok := cfg.NewLogoSource(fsys).(FileLogo)
		if !ok {
			t.Fatal("expected an uncached file source")
		}
		if src.Path != "img/logo.png" {
			t.Errorf("Path = %q, want img/logo.png", src.Path)
		}
	})
}

func TestQuotationConfig_QuotationOptions(t *testing.T) {
	cfg := DefaultQuotationConfig()
	cfg.CurrencySymbol = "USD"
	issuer := Issuer{Name: "Acme Machining", Address: "Tulsa, Oklahoma, US"}
	now := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)

	opts := cfg.QuotationOptions(now, issuer, nil)
	if opts.IssuerName != "Acme Machining" || opts.IssuerAddress != "Tulsa, Oklahoma, US" {
		t.Errorf("issuer = %q/%q", opts.IssuerName, opts.IssuerAddress)
	}
	if opts.Format != PageA4Portrait || !opts.Now.Equal(now) {
		t.Errorf("format/now = %+v/%v", opts.Format, opts.Now)
	}
	if got := opts.Currency.Format(2); got != "USD 2.00" {
		t.Errorf("currency = %q", got)
	}
	if !opts.IncludeSchedule || opts.LogoTimeout != DefaultLogoTimeout {
		t.Errorf("schedule/timeout = %v/%v", opts.IncludeSchedule, opts.LogoTimeout)
	}
}
