package view

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Page is the gradebook page as it was received.
type Page struct {
	Url  string
	Text string
	Doc  *goquery.Document
}

// Renderer runs the scripts of the gradebook page for portals that only
// fill in some values client side. Values it returns take precedence over
// the ones read statically off the page, the keys understood are
// "reloadValue" and "dwd".
type Renderer interface {
	Render(ctx context.Context, page Page) (map[string]string, error)
}

// NoopRenderer renders nothing, every value is read statically.
type NoopRenderer struct{}

func (NoopRenderer) Render(context.Context, Page) (map[string]string, error) {
	return nil, nil
}
