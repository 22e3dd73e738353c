package compare

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareURL(t *testing.T) {
	link := CompareURL(
		DefaultBaseURL,
		"0f6dae4afc8959262e7245fddfbdfc7a1de6f34a",
		"80d8f292d82d735f83417221dd63b0dd2bbb8dd2",
		"instructions:u",
		"compile",
	)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "perf.rust-lang.org", parsed.Host)
	require.Equal(t, "/compare.html", parsed.Path)

	query := parsed.Query()
	require.Equal(t, "0f6dae4afc8959262e7245fddfbdfc7a1de6f34a", query.Get("start"))
	require.Equal(t, "80d8f292d82d735f83417221dd63b0dd2bbb8dd2", query.Get("end"))
	require.Equal(t, "instructions:u", query.Get("stat"))
	require.Equal(t, "compile", query.Get("tab"))
	require.Equal(t, "true", query.Get("nonRelevant"))
	require.Equal(t, "true", query.Get("showRawData"))
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, DefaultStat, cfg.Stat)
	require.Equal(t, DefaultTab, cfg.Tab)
	require.Equal(t, DefaultPageTimeout, cfg.PageTimeout())

	cfg = Config{Stat: "faults", TimeoutSeconds: 30}.WithDefaults()
	require.Equal(t, "faults", cfg.Stat)
	require.Equal(t, 30, cfg.TimeoutSeconds)
}
