package bolt

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// DeeplinkScheme selects which parameter naming the link service expects. The
// correct scheme depends on which integration credential is registered with
// the provider's link service, so it is a configuration choice rather than a
// constant.
type DeeplinkScheme string

const (
	// SchemeSnake uses snake_case keys with the link service's short "c"
	// media-source key for the client id.
	SchemeSnake DeeplinkScheme = "snake"
	// SchemeCamel uses camelCase keys with an explicit clientId parameter.
	SchemeCamel DeeplinkScheme = "camel"
)

const (
	defaultOneLinkBase = "https://bolt.onelink.me/ch/sbJ2/32a2267d"
	defaultAppScheme   = "taxify"

	clientIDSnake = "GOOGLE_MAPS"
	clientIDCamel = "ONERIDE_API"

	// DefaultEtaSeconds is used when a ride option carries no parseable eta.
	DefaultEtaSeconds = 300
	// DefaultCurrency is the home-market fallback when no currency marker is
	// present in the price string.
	DefaultCurrency = "RON"
)

// DeeplinkConfig configures link generation. Zero values fall back to the
// snake_case scheme against the production OneLink template.
type DeeplinkConfig struct {
	Scheme      DeeplinkScheme
	ClientID    string
	OneLinkBase string
	AppScheme   string
}

// DeeplinkBuilder produces provider app deep links with a pre-filled single
// trip booking.
type DeeplinkBuilder struct {
	cfg DeeplinkConfig
}

func NewDeeplinkBuilder(cfg DeeplinkConfig) *DeeplinkBuilder {
	if cfg.Scheme == "" {
		cfg.Scheme = SchemeSnake
	}
	if cfg.ClientID == "" {
		if cfg.Scheme == SchemeCamel {
			cfg.ClientID = clientIDCamel
		} else {
			cfg.ClientID = clientIDSnake
		}
	}
	if cfg.OneLinkBase == "" {
		cfg.OneLinkBase = defaultOneLinkBase
	}
	if cfg.AppScheme == "" {
		cfg.AppScheme = defaultAppScheme
	}
	return &DeeplinkBuilder{cfg: cfg}
}

// Scheme reports the key-naming scheme the builder resolved to.
func (b *DeeplinkBuilder) Scheme() DeeplinkScheme {
	return b.cfg.Scheme
}

// linkParam marks which values are display strings needing percent-encoding;
// numeric fields (coordinates, eta, fares) travel unencoded.
type linkParam struct {
	key    string
	value  string
	encode bool
}

// keys returns the per-scheme parameter names in a fixed order:
// client id, pickup address/lat/lng/title, dropoff address/lat/lng/title,
// eta, currency, fare high, fare low, product id.
func (b *DeeplinkBuilder) keys() [13]string {
	if b.cfg.Scheme == SchemeCamel {
		return [13]string{
			"clientId",
			"pickupFormattedAddress", "pickupLatitude", "pickupLongitude", "pickupTitle",
			"dropoffFormattedAddress", "dropoffLatitude", "dropoffLongitude", "dropoffTitle",
			"etaSeconds", "fareCurrency", "fareHigh", "fareLow",
		}
	}
	return [13]string{
		"c",
		"pickup_formatted_address", "pickup_latitude", "pickup_longitude", "pickup_title",
		"dropoff_formatted_address", "dropoff_latitude", "dropoff_longitude", "dropoff_title",
		"eta_seconds", "fare_currency", "fare_high", "fare_low",
	}
}

func (b *DeeplinkBuilder) productKey() string {
	if b.cfg.Scheme == SchemeCamel {
		return "productId"
	}
	return "product_id"
}

// Generate builds the universal link handing the selected ride off to the
// provider app. No validation happens here: missing address fields produce a
// link with empty values, mirroring the upstream behavior.
func (b *DeeplinkBuilder) Generate(req SearchRidesRequest, categoryID, price string, etaSeconds int, fareCurrency string) string {
	if etaSeconds <= 0 {
		etaSeconds = DefaultEtaSeconds
	}
	if fareCurrency == "" {
		fareCurrency = DefaultCurrency
	}
	fare := CleanPrice(price)
	k := b.keys()

	params := []linkParam{
		{k[0], b.cfg.ClientID, false},
		{k[1], req.PickupFormattedAddress, true},
		{k[2], strconv.FormatFloat(req.OriginLat, 'f', -1, 64), false},
		{k[3], strconv.FormatFloat(req.OriginLng, 'f', -1, 64), false},
		{k[4], req.PickupTitle, true},
		{k[5], req.DropoffFormattedAddress, true},
		{k[6], strconv.FormatFloat(req.DestinationLat, 'f', -1, 64), false},
		{k[7], strconv.FormatFloat(req.DestinationLng, 'f', -1, 64), false},
		{k[8], req.DropoffTitle, true},
		{k[9], strconv.Itoa(etaSeconds), false},
		{k[10], fareCurrency, false},
		{k[11], fare, false},
		{k[12], fare, false},
		{b.productKey(), categoryID, false},
	}

	inner := b.cfg.AppScheme + "://action/bookaride?" + joinParams(params)

	outer := make([]linkParam, 0, len(params)+1)
	outer = append(outer, params...)
	outer = append(outer, linkParam{"deep_link_value", inner, true})

	return b.cfg.OneLinkBase + "?" + joinParams(outer)
}

func joinParams(params []linkParam) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		if p.encode {
			sb.WriteString(url.QueryEscape(p.value))
		} else {
			sb.WriteString(p.value)
		}
	}
	return sb.String()
}

var (
	nonPriceChars = regexp.MustCompile(`[^0-9.]`)
	etaMinutes    = regexp.MustCompile(`(\d+)(?:-\d+)?\s*min`)
	trailingCode  = regexp.MustCompile(`[0-9.,]+\s*([A-Z]{3})`)
)

// CleanPrice strips everything but digits and the decimal point and forces
// exactly two decimal places: "$7" -> "7.00", "3.1 USD" -> "3.10". Already
// normalized strings pass through unchanged.
func CleanPrice(price string) string {
	cleaned := nonPriceChars.ReplaceAllString(price, "")
	whole, frac, dotted := strings.Cut(cleaned, ".")
	frac = strings.ReplaceAll(frac, ".", "")
	switch {
	case !dotted || frac == "":
		frac = "00"
	case len(frac) == 1:
		frac += "0"
	case len(frac) > 2:
		frac = frac[:2]
	}
	return whole + "." + frac
}

// ParseEtaSeconds extracts the leading minute count from provider eta strings
// like "5 min" or "5-10 min" and converts it to seconds. Anything unparseable
// defaults to five minutes.
func ParseEtaSeconds(eta string) int {
	m := etaMinutes.FindStringSubmatch(eta)
	if m == nil {
		return DefaultEtaSeconds
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultEtaSeconds
	}
	return minutes * 60
}

// ExtractCurrency infers the ISO code from a formatted price string. Symbol
// markers win, then the provider's "LEI" spelling, then a trailing
// three-letter code next to the amount; the home market is the fallback.
func ExtractCurrency(price string) string {
	switch {
	case strings.Contains(price, "$"):
		return "USD"
	case strings.Contains(price, "€"):
		return "EUR"
	case strings.Contains(price, "£"):
		return "GBP"
	case strings.Contains(price, "LEI"):
		return "RON"
	}
	if m := trailingCode.FindStringSubmatch(price); m != nil {
		return m[1]
	}
	return DefaultCurrency
}
