package bolt

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.50", "12.50"}, // idempotent on normalized input
		{"$7", "7.00"},
		{"3.1 USD", "3.10"},
		{"17", "17.00"},
		{"LEI 17.0", "17.00"},
		{"10.505", "10.50"},
		{"€8.25", "8.25"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPrice(tt.in))
		})
	}
}

func TestParseEtaSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"5 min", 300},
		{"5-10 min", 300},
		{"", 300},
		{"12 min", 720},
		{"soon", 300},
		{"1 min", 60},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEtaSeconds(tt.in))
		})
	}
}

func TestExtractCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$10.50", "USD"},
		{"€10.50", "EUR"},
		{"£10.50", "GBP"},
		{"LEI 17.0", "RON"},
		{"10.50 USD", "USD"},
		{"10.50 SEK", "SEK"},
		{"", "RON"},
		{"17", "RON"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCurrency(tt.in))
		})
	}
}

func deeplinkRequest() SearchRidesRequest {
	return SearchRidesRequest{
		OriginLat:               44.43,
		OriginLng:               26.10,
		DestinationLat:          44.50,
		DestinationLng:          26.20,
		PickupFormattedAddress:  "Strada Aviatorilor 8",
		PickupTitle:             "Home",
		DropoffFormattedAddress: "Calea Victoriei 120",
		DropoffTitle:            "Office",
	}
}

func TestGenerate_SnakeScheme(t *testing.T) {
	b := NewDeeplinkBuilder(DeeplinkConfig{})
	link := b.Generate(deeplinkRequest(), "1120", "LEI 17.0", 420, "RON")

	require.True(t, strings.HasPrefix(link, "https://bolt.onelink.me/ch/sbJ2/32a2267d?"))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	outer := parsed.Query()

	assert.Equal(t, "GOOGLE_MAPS", outer.Get("c"))
	assert.Equal(t, "Strada Aviatorilor 8", outer.Get("pickup_formatted_address"))
	assert.Equal(t, "Office", outer.Get("dropoff_title"))
	assert.Equal(t, "420", outer.Get("eta_seconds"))
	assert.Equal(t, "RON", outer.Get("fare_currency"))
	assert.Equal(t, "17.00", outer.Get("fare_high"))
	assert.Equal(t, "17.00", outer.Get("fare_low"))
	assert.Equal(t, "1120", outer.Get("product_id"))
	assert.Equal(t, "44.43", outer.Get("pickup_latitude"))

	inner := outer.Get("deep_link_value")
	require.True(t, strings.HasPrefix(inner, "taxify://action/bookaride?"))

	innerURL, err := url.Parse(inner)
	require.NoError(t, err)
	innerQ := innerURL.Query()
	assert.Equal(t, "GOOGLE_MAPS", innerQ.Get("c"))
	assert.Equal(t, "420", innerQ.Get("eta_seconds"))
	assert.Equal(t, "Calea Victoriei 120", innerQ.Get("dropoff_formatted_address"))
}

func TestGenerate_CamelScheme(t *testing.T) {
	b := NewDeeplinkBuilder(DeeplinkConfig{Scheme: SchemeCamel})
	link := b.Generate(deeplinkRequest(), "1120", "$10.50", 300, "USD")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	outer := parsed.Query()

	assert.Equal(t, "ONERIDE_API", outer.Get("clientId"))
	assert.Equal(t, "300", outer.Get("etaSeconds"))
	assert.Equal(t, "10.50", outer.Get("fareHigh"))
	assert.Equal(t, "1120", outer.Get("productId"))
	assert.Empty(t, outer.Get("eta_seconds"), "camel scheme must not mix snake keys")

	inner := outer.Get("deep_link_value")
	innerURL, err := url.Parse(inner)
	require.NoError(t, err)
	assert.Equal(t, "ONERIDE_API", innerURL.Query().Get("clientId"))
}

func TestGenerate_EncodesOnlyDisplayFields(t *testing.T) {
	b := NewDeeplinkBuilder(DeeplinkConfig{})
	link := b.Generate(deeplinkRequest(), "1120", "17", 420, "RON")

	// Raw numeric values appear unencoded; titles are escaped.
	assert.Contains(t, link, "pickup_latitude=44.43")
	assert.Contains(t, link, "pickup_formatted_address=Strada+Aviatorilor+8")
	assert.Contains(t, link, "deep_link_value=taxify%3A%2F%2Faction%2Fbookaride%3F")
}

func TestGenerate_DefaultsForUnknownEtaAndCurrency(t *testing.T) {
	b := NewDeeplinkBuilder(DeeplinkConfig{})
	link := b.Generate(deeplinkRequest(), "1120", "17", 0, "")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	outer := parsed.Query()
	assert.Equal(t, "300", outer.Get("eta_seconds"))
	assert.Equal(t, "RON", outer.Get("fare_currency"))
}

func TestGenerate_MissingAddressesStillProducesLink(t *testing.T) {
	b := NewDeeplinkBuilder(DeeplinkConfig{})
	link := b.Generate(SearchRidesRequest{}, "", "", 0, "")

	assert.True(t, strings.HasPrefix(link, "https://bolt.onelink.me/"))
}

func TestScheme_ReportsResolvedScheme(t *testing.T) {
	assert.Equal(t, SchemeSnake, NewDeeplinkBuilder(DeeplinkConfig{}).Scheme())
	assert.Equal(t, SchemeCamel, NewDeeplinkBuilder(DeeplinkConfig{Scheme: SchemeCamel}).Scheme())
}

func TestDeeplinkConfig_Overrides(t *testing.T) {
	b := NewDeeplinkBuilder(DeeplinkConfig{
		Scheme:      SchemeCamel,
		ClientID:    "PARTNER_X",
		OneLinkBase: "https://example.onelink.me/zz/abc",
		AppScheme:   "bolt",
	})
	link := b.Generate(deeplinkRequest(), "1", "17", 300, "RON")

	assert.True(t, strings.HasPrefix(link, "https://example.onelink.me/zz/abc?"))
	assert.Contains(t, link, "clientId=PARTNER_X")
	assert.Contains(t, link, url.QueryEscape("bolt://action/bookaride?"))
}
