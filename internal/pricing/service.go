package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/internal/sizes"
	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
	"github.com/scentvault/storefront-backend/pkg/logger"
	"github.com/scentvault/storefront-backend/pkg/metrics"
)

// Service serves the enriched catalog, ranked combos and narrated deals.
type Service interface {
	EnrichedCatalog(ctx context.Context, filter ProductFilter) ([]EnrichedProduct, error)
	Combos(ctx context.Context, query ComboQuery) ([]Combo, error)
	TopDeals(ctx context.Context, limit int) ([]Deal, error)
	ProductSizes(ctx context.Context, productID string) (*ProductSizes, error)
}

// ComboQuery controls combo ranking. Zero values fall back to configured defaults.
type ComboQuery struct {
	Sample int
	Limit  int
}

// Deal is a ranked combo with its products and a shopper-facing pitch.
type Deal struct {
	Combo       Combo             `json:"combo"`
	Products    []EnrichedProduct `json:"products"`
	Description string            `json:"description"`
}

// ProductSizes lists a product's canonical size variants.
type ProductSizes struct {
	ProductID string   `json:"product_id"`
	Size      *string  `json:"size"`
	Sizes     []string `json:"sizes"`
}

// Options carries the tunables from config.PricingConfig.
type Options struct {
	DefaultPairSample int
	MaxPairSample     int
	DealsPageSize     int
	CatalogLimit      int
}

type service struct {
	repo    *Repository
	opts    Options
	metrics *metrics.PricingMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService wires the pricing service. pricingMetrics may be nil.
func NewService(repo *Repository, opts Options, pricingMetrics *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.MaxPairSample < 0 {
		opts.MaxPairSample = 0
	}
	if opts.DefaultPairSample > opts.MaxPairSample {
		opts.DefaultPairSample = opts.MaxPairSample
	}
	if opts.DealsPageSize <= 0 {
		opts.DealsPageSize = 10
	}
	return &service{
		repo:    repo,
		opts:    opts,
		metrics: pricingMetrics,
		logg:    logg,
		now:     time.Now,
	}, nil
}

func (s *service) EnrichedCatalog(ctx context.Context, filter ProductFilter) ([]EnrichedProduct, error) {
	started := s.now()
	defer func() { s.metrics.ObserveDuration("enrich", s.now().Sub(started)) }()

	if filter.Limit <= 0 || (s.opts.CatalogLimit > 0 && filter.Limit > s.opts.CatalogLimit) {
		filter.Limit = s.opts.CatalogLimit
	}
	return s.catalog(ctx, filter)
}

func (s *service) catalog(ctx context.Context, filter ProductFilter) ([]EnrichedProduct, error) {
	rows, err := s.repo.ListActiveProducts(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}
	raw := make([]RawProduct, 0, len(rows))
	for _, row := range rows {
		raw = append(raw, rawFromModel(row))
	}
	enriched := Enrich(raw)
	s.metrics.AddEnriched(len(enriched))
	return enriched, nil
}

func (s *service) Combos(ctx context.Context, query ComboQuery) ([]Combo, error) {
	combos, _, err := s.rank(ctx, query)
	return combos, err
}

func (s *service) rank(ctx context.Context, query ComboQuery) ([]Combo, []EnrichedProduct, error) {
	started := s.now()
	defer func() { s.metrics.ObserveDuration("combos", s.now().Sub(started)) }()

	sample := query.Sample
	if sample <= 0 {
		sample = s.opts.DefaultPairSample
	}
	if sample > s.opts.MaxPairSample {
		sample = s.opts.MaxPairSample
	}

	products, err := s.catalog(ctx, ProductFilter{Limit: s.opts.CatalogLimit})
	if err != nil {
		return nil, nil, err
	}

	combos := BuildCombos(products, sample)
	singles := 0
	for _, c := range combos {
		if c.Kind == ComboSingle {
			singles++
		}
	}
	s.metrics.AddCombos(string(ComboSingle), singles)
	s.metrics.AddCombos(string(ComboPair), len(combos)-singles)

	if query.Limit > 0 && query.Limit < len(combos) {
		combos = combos[:query.Limit]
	}
	return combos, products, nil
}

func (s *service) TopDeals(ctx context.Context, limit int) ([]Deal, error) {
	if limit <= 0 || limit > s.opts.DealsPageSize {
		limit = s.opts.DealsPageSize
	}
	combos, products, err := s.rank(ctx, ComboQuery{Limit: limit})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]EnrichedProduct, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	deals := make([]Deal, 0, len(combos))
	for _, combo := range combos {
		items := make([]EnrichedProduct, 0, len(combo.ProductIDs))
		for _, id := range combo.ProductIDs {
			if p, ok := byID[id]; ok {
				items = append(items, p)
			}
		}
		deals = append(deals, Deal{
			Combo:       combo,
			Products:    items,
			Description: DescribeDeal(items, combo),
		})
	}
	return deals, nil
}

func (s *service) ProductSizes(ctx context.Context, productID string) (*ProductSizes, error) {
	id, err := uuid.Parse(strings.TrimSpace(productID))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a uuid")
	}
	product, err := s.repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	variants := []string(product.Sizes)
	if product.Size != nil {
		variants = append([]string{*product.Size}, variants...)
	}
	out := &ProductSizes{ProductID: product.ID.String(), Sizes: sizes.NormalizeList(variants)}
	if product.Size != nil {
		normalized := sizes.NormalizeToken(*product.Size)
		if normalized != "" {
			out.Size = &normalized
		}
	}
	return out, nil
}
