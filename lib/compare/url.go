package compare

import (
	"net/url"
	"time"
)

const (
	DefaultBaseURL = "https://perf.rust-lang.org/compare.html"
	DefaultStat    = "instructions:u"
	DefaultTab     = "compile"
)

const DefaultPageTimeout = time.Second * 5

// Config is read from an optional scraper.json5 next to the working
// directory. Zero values fall back to the perf.rust-lang.org defaults.
type Config struct {
	BaseURL        string `json:"base_url"`
	Stat           string `json:"stat"`
	Tab            string `json:"tab"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func (c Config) WithDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Stat == "" {
		c.Stat = DefaultStat
	}
	if c.Tab == "" {
		c.Tab = DefaultTab
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = int(DefaultPageTimeout / time.Second)
	}
	return c
}

func (c Config) PageTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CompareURL builds the comparison page url for a commit pair. Commit
// ids are passed through opaquely, malformed ids are the site's
// concern.
func CompareURL(baseURL, start, end, stat, tab string) string {
	query := url.Values{}
	query.Add("start", start)
	query.Add("end", end)
	query.Add("stat", stat)
	query.Add("tab", tab)
	query.Add("nonRelevant", "true")
	query.Add("showRawData", "true")
	return baseURL + "?" + query.Encode()
}
