package opml

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const nestedOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="2.0">
  <head><title>Podcasts</title></head>
  <body>
    <outline text="Tech">
      <outline text="Go Time" type="rss" xmlUrl="https://changelog.com/gotime/feed"/>
      <outline text="Inner">
        <outline title="Deep" text="ignored" xmlUrl=" rsshub://xiaoyuzhou/podcast/1 "/>
      </outline>
    </outline>
    <outline text="Loose" xmlUrl="https://example.com/feed.xml"/>
    <outline text="Empty folder"/>
  </body>
</opml>`

func TestParse_Subscriptions(t *testing.T) {
	doc, err := Parse(strings.NewReader(nestedOPML))
	require.NoError(t, err)
	require.Equal(t, "Podcasts", doc.Head.Title)

	require.Equal(t, []Subscription{
		{Name: "Go Time", Address: "https://changelog.com/gotime/feed", Category: "Tech"},
		{Name: "Deep", Address: "rsshub://xiaoyuzhou/podcast/1", Category: "Inner"},
		{Name: "Loose", Address: "https://example.com/feed.xml", Category: ""},
	}, doc.Subscriptions())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(strings.NewReader("not xml at all"))
	require.Error(t, err)
}

func TestBuildAndEncode(t *testing.T) {
	subs := []Subscription{
		{Name: "A", Address: "https://a.example/feed", Category: "news"},
		{Name: "B", Address: "rsshub://b/route", Category: "podcasts"},
		{Name: "C", Address: "https://c.example/feed", Category: "news"},
	}
	doc := Build("CastMind", subs, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.Len(t, doc.Body.Outlines, 2)
	require.Len(t, doc.Body.Outlines[0].Outlines, 2)

	data, err := Encode(doc)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("<?xml")))

	parsed, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	require.ElementsMatch(t, subs, parsed.Subscriptions())
}
