package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<html><body><table><tr><td>  ripgrep\n\t <b>13.0.0</b>  </td></tr></table></body></html>",
	))
	require.NoError(t, err)

	require.Equal(t, "ripgrep 13.0.0", CleanText(doc.Find("td")))
}
