package catalog

import (
	"context"
	"strings"

	"material-manager/core/matcher"
	"material-manager/core/reconcile"
)

// Source names as they appear in matches and logs.
const (
	SourceWooCommerce = "woocommerce"
	SourceInternal    = "internal"
)

// WooSource adapts the WooCommerce search to reconcile.Source.
type WooSource struct {
	client  *WooCommerce
	perPage int
}

// NewWooSource creates a source that searches by raw name with a bounded page.
func NewWooSource(client *WooCommerce, perPage int) *WooSource {
	return &WooSource{client: client, perPage: perPage}
}

// Name implements reconcile.Source.
func (s *WooSource) Name() string {
	return SourceWooCommerce
}

// Lookup takes the first search result for the raw name.
func (s *WooSource) Lookup(ctx context.Context, subject reconcile.Subject) (*reconcile.Match, error) {
	term := strings.TrimSpace(subject.Name)
	if term == "" {
		return nil, nil
	}
	products, err := s.client.SearchProducts(ctx, term, s.perPage)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	p := products[0]
	id := p.ID
	return &reconcile.Match{
		Source:     SourceWooCommerce,
		ExternalID: &id,
		Name:       p.Name,
		Price:      p.Price,
		Stock:      p.StockQuantity,
		Image:      p.Image,
	}, nil
}

// InternalSource adapts the internal catalog to reconcile.Source.
type InternalSource struct {
	catalog *Internal
}

// NewInternalSource creates the fallback source.
func NewInternalSource(catalog *Internal) *InternalSource {
	return &InternalSource{catalog: catalog}
}

// Name implements reconcile.Source.
func (s *InternalSource) Name() string {
	return SourceInternal
}

// Lookup applies the ISBN rule, then the name rule.
func (s *InternalSource) Lookup(ctx context.Context, subject reconcile.Subject) (*reconcile.Match, error) {
	p, err := s.catalog.Find(ctx, matcher.NewQuery(subject.Name, subject.ISBN))
	if err != nil || p == nil {
		return nil, err
	}
	return &reconcile.Match{
		Source:     SourceInternal,
		ExternalID: p.WooCommerceID,
		Name:       p.Nombre,
		Price:      p.Precio,
		Stock:      p.Stock,
		Image:      p.Imagen,
	}, nil
}
