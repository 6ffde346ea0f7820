// Package opml reads and writes OPML subscription lists.
package opml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

type Document struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

type Head struct {
	Title       string `xml:"title,omitempty"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

type Body struct {
	Outlines []Outline `xml:"outline"`
}

type Outline struct {
	Text     string    `xml:"text,attr,omitempty"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Outlines []Outline `xml:"outline,omitempty"`
}

// Subscription is one feed outline, with the title of its enclosing folder as category.
type Subscription struct {
	Name     string
	Address  string
	Category string
}

func Parse(r io.Reader) (Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode opml: %w", err)
	}
	return doc, nil
}

// Subscriptions flattens the outline tree. Outlines without xmlUrl are folders; the
// innermost folder names the category.
func (d Document) Subscriptions() []Subscription {
	var subs []Subscription
	var walk func(outlines []Outline, category string)
	walk = func(outlines []Outline, category string) {
		for _, o := range outlines {
			address := strings.TrimSpace(o.XMLURL)
			if address == "" {
				walk(o.Outlines, o.label())
				continue
			}
			subs = append(subs, Subscription{Name: o.label(), Address: address, Category: category})
		}
	}
	walk(d.Body.Outlines, "")
	return subs
}

func (o Outline) label() string {
	if t := strings.TrimSpace(o.Title); t != "" {
		return t
	}
	return strings.TrimSpace(o.Text)
}

// Build groups subscriptions into one folder per category, keeping first-seen order.
func Build(title string, subs []Subscription, now time.Time) Document {
	var (
		folders []Outline
		index   = make(map[string]int)
	)
	for _, s := range subs {
		i, ok := index[s.Category]
		if !ok {
			i = len(folders)
			index[s.Category] = i
			folders = append(folders, Outline{Text: s.Category, Title: s.Category})
		}
		folders[i].Outlines = append(folders[i].Outlines, Outline{
			Text:   s.Name,
			Title:  s.Name,
			Type:   "rss",
			XMLURL: s.Address,
		})
	}
	return Document{
		Version: "2.0",
		Head:    Head{Title: title, DateCreated: now.UTC().Format(time.RFC1123Z)},
		Body:    Body{Outlines: folders},
	}
}

func Encode(doc Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return nil, err
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
