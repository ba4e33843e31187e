package services

import (
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// QuotationConfig is the issuer and rendering configuration shared by all
// generated documents. It is filled from command line flags at startup.
type QuotationConfig struct {
	Issuer          Issuer
	LogoPath        string
	LogoTimeout     time.Duration
	LogoCacheTTL    time.Duration
	CurrencySymbol  string
	IncludeSchedule bool
}

// DefaultQuotationConfig returns the J3M defaults.
func DefaultQuotationConfig() QuotationConfig {
	return QuotationConfig{
		Issuer: Issuer{
			Name:    "J3M Fabrication LLC",
			Address: "Houston, Texas, US",
			Email:   "admin@j3mfabrication.com",
			Phone:   "480-900-8401",
		},
		LogoPath:        "j3m_logo.png",
		LogoTimeout:     DefaultLogoTimeout,
		LogoCacheTTL:    10 * time.Minute,
		CurrencySymbol:  DefaultCurrencySymbol,
		IncludeSchedule: true,
	}
}

// RegisterFlags binds the config fields to persistent flags.
func (c *QuotationConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Issuer.Name, "company", c.Issuer.Name, "issuer company name printed on documents")
	flags.StringVar(&c.Issuer.Address, "company-address", c.Issuer.Address, "issuer address printed in the document header")
	flags.StringVar(&c.Issuer.Email, "company-email", c.Issuer.Email, "issuer email printed in the Prepared By block")
	flags.StringVar(&c.Issuer.Phone, "company-phone", c.Issuer.Phone, "issuer phone printed in the Prepared By block")
	flags.StringVar(&c.LogoPath, "logo", c.LogoPath, "logo path under the static dir, or an http(s) URL")
	flags.DurationVar(&c.LogoTimeout, "logo-timeout", c.LogoTimeout, "max wait for the logo before falling back to text")
	flags.StringVar(&c.CurrencySymbol, "currency", c.CurrencySymbol, "currency symbol printed before amounts")
	flags.BoolVar(&c.IncludeSchedule, "quote-schedule", c.IncludeSchedule, "include the project schedule section in quotations")
}

// NewLogoSource resolves LogoPath against staticFS, or as a URL, and wraps it in a cache.
func (c QuotationConfig) NewLogoSource(staticFS fs.FS) LogoSource {
	var src LogoSource
	if strings.HasPrefix(c.LogoPath, "http://") || strings.HasPrefix(c.LogoPath, "https://") {
		src = HTTPLogo{URL: c.LogoPath}
	} else {
		src = FileLogo{FS: staticFS, Path: strings.TrimPrefix(c.LogoPath, "/")}
	}
	if c.LogoCacheTTL <= 0 {
		return src
	}
	return NewCachedLogo(src, c.LogoCacheTTL)
}

// QuotationOptions builds per-call compositor options for issuer.
func (c QuotationConfig) QuotationOptions(now time.Time, issuer Issuer, logo LogoSource) QuotationOptions {
	return QuotationOptions{
		Now:             now,
		Format:          PageA4Portrait,
		Logo:            logo,
		LogoTimeout:     c.LogoTimeout,
		IssuerName:      issuer.Name,
		IssuerAddress:   issuer.Address,
		Currency:        CurrencyFormatter{Symbol: c.CurrencySymbol},
		IncludeSchedule: c.IncludeSchedule,
	}
}
