package shipping

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/pkg/db"
	"github.com/scentvault/storefront-backend/pkg/db/models"
	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
	"github.com/scentvault/storefront-backend/pkg/logger"
	"github.com/scentvault/storefront-backend/pkg/metrics"
)

const vendorRuleUniqueConstraint = "idx_vendor_shipping_rules_vendor_min_qty"

// Service quotes carts and manages the shipping configuration tables.
type Service interface {
	Quote(ctx context.Context, input Input) (*Quote, error)
	WeightRateBands(ctx context.Context) ([]WeightRateBand, error)
	ReplaceWeightRateBands(ctx context.Context, bands []WeightRateBand) (*BandReplaceResult, error)
	VendorRules(ctx context.Context) ([]VendorShippingRule, error)
	ReplaceVendorRules(ctx context.Context, rules []VendorShippingRule) ([]VendorShippingRule, error)
}

// BandReplaceResult carries the stored bands plus non-fatal layout warnings.
type BandReplaceResult struct {
	Bands    []WeightRateBand `json:"bands"`
	Warnings []string         `json:"warnings"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo    *Repository
	tx      txRunner
	cache   *SnapshotCache
	metrics *metrics.ShippingMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService wires the shipping service. cache and shippingMetrics may be nil.
func NewService(repo *Repository, tx txRunner, cache *SnapshotCache, shippingMetrics *metrics.ShippingMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipping repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		cache:   cache,
		metrics: shippingMetrics,
		logg:    logg,
		now:     time.Now,
	}, nil
}

var _ txRunner = (*db.Client)(nil)

func (s *service) Quote(ctx context.Context, input Input) (*Quote, error) {
	started := s.now()

	items, err := s.hydrate(ctx, input.Items)
	if err != nil {
		s.metrics.ObserveQuote(s.now().Sub(started), 0, err)
		return nil, err
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		s.metrics.ObserveQuote(s.now().Sub(started), 0, err)
		return nil, err
	}

	quote := Calculate(Input{Items: items, MultiAddress: input.MultiAddress}, snap)
	s.metrics.ObserveQuote(s.now().Sub(started), quote.TotalWeight, nil)

	if quote.Cost == 0 && quote.TotalWeight > 0 {
		reason := zeroCostReason(quote.TotalWeight, snap.Bands)
		s.metrics.IncZeroCost(reason)
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"total_weight_kg": quote.TotalWeight,
			"reason":          reason,
		})
		s.logg.Warn(logCtx, "shipping quote resolved to zero cost")
	}
	return &quote, nil
}

func zeroCostReason(weight float64, bands []WeightRateBand) string {
	switch {
	case len(bands) == 0:
		return "no_bands"
	case BelowConfiguredBands(weight, bands):
		return "below_lowest_band"
	default:
		return "band_gap"
	}
}

// hydrate fills cart lines that arrived without product data from the catalog.
func (s *service) hydrate(ctx context.Context, items []CartItem) ([]CartItem, error) {
	out := make([]CartItem, len(items))
	copy(out, items)

	var ids []uuid.UUID
	for _, item := range out {
		if item.Product != nil {
			continue
		}
		if id, err := uuid.Parse(strings.TrimSpace(item.ProductID)); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return out, nil
	}

	products, err := s.repo.ProductsForCart(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
	}
	byID := make(map[string]*CartProduct, len(products))
	for _, p := range products {
		byID[p.ID.String()] = cartProductFromModel(p)
	}
	for i := range out {
		if out[i].Product != nil {
			continue
		}
		id, err := uuid.Parse(strings.TrimSpace(out[i].ProductID))
		if err != nil {
			continue
		}
		out[i].Product = byID[id.String()]
	}
	return out, nil
}

func (s *service) snapshot(ctx context.Context) (Snapshot, error) {
	if s.cache != nil {
		snap, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.metrics.IncSnapshotCache("error")
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "shipping snapshot cache read failed")
		case ok:
			s.metrics.IncSnapshotCache("hit")
			return snap, nil
		default:
			s.metrics.IncSnapshotCache("miss")
		}
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, snap); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "shipping snapshot cache write failed")
		}
	}
	return snap, nil
}

func (s *service) loadSnapshot(ctx context.Context) (Snapshot, error) {
	bandRows, err := s.repo.ListWeightRateBands(ctx)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load weight rate bands")
	}
	ruleRows, err := s.repo.ListVendorShippingRules(ctx, true)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor shipping rules")
	}

	snap := Snapshot{
		Bands: make([]WeightRateBand, 0, len(bandRows)),
		Rules: make([]VendorShippingRule, 0, len(ruleRows)),
	}
	for _, b := range bandRows {
		snap.Bands = append(snap.Bands, bandFromModel(b))
	}

	seen := map[uuid.UUID]struct{}{}
	var vendorIDs []uuid.UUID
	for _, r := range ruleRows {
		snap.Rules = append(snap.Rules, ruleFromModel(r))
		if _, ok := seen[r.VendorID]; !ok {
			seen[r.VendorID] = struct{}{}
			vendorIDs = append(vendorIDs, r.VendorID)
		}
	}

	snap.VendorNames, err = s.repo.VendorNames(ctx, vendorIDs)
	if err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor names")
	}
	return snap, nil
}

func (s *service) WeightRateBands(ctx context.Context) ([]WeightRateBand, error) {
	rows, err := s.repo.ListWeightRateBands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load weight rate bands")
	}
	out := make([]WeightRateBand, 0, len(rows))
	for _, r := range rows {
		out = append(out, bandFromModel(r))
	}
	return out, nil
}

func (s *service) ReplaceWeightRateBands(ctx context.Context, bands []WeightRateBand) (*BandReplaceResult, error) {
	if err := validateBands(bands); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid weight rate bands").
			WithDetails(errorStrings(err))
	}

	rows := make([]models.WeightRateBand, 0, len(bands))
	for _, b := range bands {
		rows = append(rows, bandToModel(b))
	}
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceWeightRateBands(ctx, rows)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace weight rate bands")
	}
	s.invalidate(ctx)

	ordered := sortedBands(bands)
	result := &BandReplaceResult{Bands: ordered, Warnings: errorStrings(bandLayoutWarnings(ordered))}
	if len(result.Warnings) > 0 {
		s.logg.Warn(s.logg.WithField(ctx, "warnings", result.Warnings), "weight rate bands stored with layout warnings")
	}
	return result, nil
}

func (s *service) VendorRules(ctx context.Context) ([]VendorShippingRule, error) {
	rows, err := s.repo.ListVendorShippingRules(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor shipping rules")
	}
	out := make([]VendorShippingRule, 0, len(rows))
	for _, r := range rows {
		out = append(out, ruleFromModel(r))
	}
	return out, nil
}

func (s *service) ReplaceVendorRules(ctx context.Context, rules []VendorShippingRule) ([]VendorShippingRule, error) {
	rows, err := rulesToModels(rules)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor shipping rules").
			WithDetails(errorStrings(err))
	}
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceVendorShippingRules(ctx, rows)
	}); err != nil {
		if db.IsUniqueViolation(err, vendorRuleUniqueConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "duplicate vendor minimum quantity")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace vendor shipping rules")
	}
	s.invalidate(ctx)

	out := make([]VendorShippingRule, 0, len(rows))
	for _, r := range rows {
		out = append(out, ruleFromModel(r))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VendorID != out[j].VendorID {
			return out[i].VendorID < out[j].VendorID
		}
		return out[i].MinQuantity < out[j].MinQuantity
	})
	return out, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logg.Error(ctx, "shipping snapshot cache invalidation failed", err)
	}
}

func validateBands(bands []WeightRateBand) error {
	var errs error
	for i, b := range bands {
		if b.MinWeight < 0 {
			errs = multierr.Append(errs, fmt.Errorf("band %d: min_weight must be >= 0", i))
		}
		if b.MaxWeight <= b.MinWeight {
			errs = multierr.Append(errs, fmt.Errorf("band %d: max_weight must be greater than min_weight", i))
		}
		if b.Cost < 0 {
			errs = multierr.Append(errs, fmt.Errorf("band %d: cost must be >= 0", i))
		}
	}
	return errs
}

// bandLayoutWarnings flags overlaps and gaps. Both are stored as given: overlaps
// resolve to the first band in ascending order and gaps quote zero.
func bandLayoutWarnings(ordered []WeightRateBand) error {
	var warnings error
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		switch {
		case cur.MinWeight < prev.MaxWeight:
			warnings = multierr.Append(warnings, fmt.Errorf(
				"bands [%g, %g) and [%g, %g) overlap; the lower band wins", prev.MinWeight, prev.MaxWeight, cur.MinWeight, cur.MaxWeight))
		case cur.MinWeight > prev.MaxWeight:
			warnings = multierr.Append(warnings, fmt.Errorf(
				"weights in [%g, %g) match no band and quote zero", prev.MaxWeight, cur.MinWeight))
		}
	}
	if len(ordered) > 0 && ordered[0].MinWeight > 0 {
		warnings = multierr.Append(warnings, fmt.Errorf(
			"weights below %g match no band and quote zero", ordered[0].MinWeight))
	}
	return warnings
}

func rulesToModels(rules []VendorShippingRule) ([]models.VendorShippingRule, error) {
	var errs error
	rows := make([]models.VendorShippingRule, 0, len(rules))
	seen := map[string]int{}
	for i, r := range rules {
		vendorID, err := uuid.Parse(strings.TrimSpace(r.VendorID))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rule %d: vendor_id must be a uuid", i))
		}
		if r.MinQuantity < 1 {
			errs = multierr.Append(errs, fmt.Errorf("rule %d: min_quantity must be >= 1", i))
		}
		schedule := strings.TrimSpace(r.ShippingSchedule)
		if schedule == "" {
			errs = multierr.Append(errs, fmt.Errorf("rule %d: shipping_schedule is required", i))
		}
		key := fmt.Sprintf("%s/%d", vendorID, r.MinQuantity)
		if prev, dup := seen[key]; dup && err == nil {
			errs = multierr.Append(errs, fmt.Errorf("rule %d: duplicates rule %d for the same vendor and min_quantity", i, prev))
		}
		seen[key] = i
		rows = append(rows, models.VendorShippingRule{
			VendorID:         vendorID,
			MinQuantity:      r.MinQuantity,
			ShippingSchedule: schedule,
			IsActive:         r.IsActive,
		})
	}
	if errs != nil {
		return nil, errs
	}
	return rows, nil
}

func errorStrings(err error) []string {
	errs := multierr.Errors(err)
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Error())
	}
	return out
}
