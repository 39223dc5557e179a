package reports

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sagar-developer08/admin-ecom-sub002/internal/orders"
	"github.com/sagar-developer08/admin-ecom-sub002/internal/vendors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/enums"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/errors"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/logger"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/metrics"
	"github.com/sagar-developer08/admin-ecom-sub002/pkg/redis"
)

const (
	ordersSnapshotScope  = "orders"
	vendorsSnapshotScope = "vendors"
)

// OrderSource fetches the raw order snapshot from the upstream order store.
type OrderSource interface {
	FetchAllOrders(ctx context.Context) ([]orders.Order, error)
}

// VendorSource fetches the vendor registry snapshot.
type VendorSource interface {
	FetchAllVendors(ctx context.Context) ([]vendors.Vendor, error)
}

// ScopedOrderSource fetches the orders for a single vendor-store pair.
// Drill-down falls back to it when the full snapshot cannot be loaded.
type ScopedOrderSource interface {
	FetchOrdersForVendorStore(ctx context.Context, vendorID, storeID string) ([]orders.Order, error)
}

// StatsInput narrows the report before aggregation.
type StatsInput struct {
	Statuses  []enums.OrderStatus
	From      time.Time
	To        time.Time
	MinAmount float64
}

// DrillDownInput selects one vendor-store row for expansion.
type DrillDownInput struct {
	VendorID string `validate:"required"`
	StoreID  string `validate:"required"`
	Statuses []enums.OrderStatus
}

// ReturnsReport pairs the returns-view stats with their summary totals.
type ReturnsReport struct {
	Stats           []VendorStoreStat `json:"stats"`
	Summary         ReturnsSummary    `json:"summary"`
	VendorsDegraded bool              `json:"vendors_degraded"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// Service builds vendor-store reports over the last-fetched order snapshot.
type Service interface {
	VendorStoreStats(ctx context.Context, input StatsInput) (*VendorStoreReport, error)
	Returns(ctx context.Context, input StatsInput) (*ReturnsReport, error)
	DrillDown(ctx context.Context, input DrillDownInput) (*DrillDownResult, error)
	RefreshSnapshots(ctx context.Context) error
}

type service struct {
	orderSource  OrderSource
	scopedSource ScopedOrderSource
	vendorSource VendorSource
	cache        redis.SnapshotStore
	cacheTTL     time.Duration
	logger       *logger.Logger
	metrics      *metrics.EngineMetrics
	now          func() time.Time
}

// NewService wires the report service. The cache and metrics are optional;
// everything else is required.
func NewService(orderSource OrderSource, vendorSource VendorSource, cache redis.SnapshotStore, cacheTTL time.Duration, logg *logger.Logger, engineMetrics *metrics.EngineMetrics) (Service, error) {
	if orderSource == nil {
		return nil, errors.New(errors.CodeInternal, "reports service requires an order source")
	}
	if vendorSource == nil {
		return nil, errors.New(errors.CodeInternal, "reports service requires a vendor source")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "reports service requires a logger")
	}
	svc := &service{
		orderSource:  orderSource,
		vendorSource: vendorSource,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logg,
		metrics:      engineMetrics,
		now:          time.Now,
	}
	if scoped, ok := orderSource.(ScopedOrderSource); ok {
		svc.scopedSource = scoped
	}
	return svc, nil
}

// snapshot holds both upstream collections for one report run. The vendor
// fetch degrades to an empty directory instead of failing the report.
type snapshot struct {
	orders          []orders.Order
	directory       *vendors.Directory
	vendorsDegraded bool
}

func (s *service) loadSnapshot(ctx context.Context) (*snapshot, error) {
	var (
		wg         sync.WaitGroup
		orderList  []orders.Order
		vendorList []vendors.Vendor
		orderErr   error
		vendorErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		orderList, orderErr = s.cachedOrders(ctx)
	}()
	go func() {
		defer wg.Done()
		vendorList, vendorErr = s.cachedVendors(ctx)
	}()
	wg.Wait()

	if orderErr != nil {
		return nil, errors.Wrap(errors.CodeDependency, orderErr, "fetching order snapshot")
	}

	snap := &snapshot{orders: orderList}
	if vendorErr != nil {
		// Vendor data may be unavailable due to permission restrictions.
		// Aggregate anyway with the unknown-vendor sentinel.
		warnCtx := s.logger.WithField(ctx, "error", vendorErr.Error())
		s.logger.Warn(warnCtx, "vendor snapshot unavailable, degrading to sentinel names")
		snap.directory = vendors.NewDirectory(nil)
		snap.vendorsDegraded = true
		return snap, nil
	}
	snap.directory = vendors.NewDirectory(vendorList)
	return snap, nil
}

func (s *service) cachedOrders(ctx context.Context) ([]orders.Order, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, s.cache.SnapshotKey(ordersSnapshotScope))
		if err == nil {
			var cached []orders.Order
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				s.recordFetch(ordersSnapshotScope, "cache_hit")
				return cached, nil
			}
		}
	}
	fetched, err := s.orderSource.FetchAllOrders(ctx)
	if err != nil {
		s.recordFetch(ordersSnapshotScope, "error")
		return nil, err
	}
	s.recordFetch(ordersSnapshotScope, "success")
	s.storeSnapshot(ctx, ordersSnapshotScope, fetched)
	return fetched, nil
}

func (s *service) cachedVendors(ctx context.Context) ([]vendors.Vendor, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, s.cache.SnapshotKey(vendorsSnapshotScope))
		if err == nil {
			var cached []vendors.Vendor
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				s.recordFetch(vendorsSnapshotScope, "cache_hit")
				return cached, nil
			}
		}
	}
	fetched, err := s.vendorSource.FetchAllVendors(ctx)
	if err != nil {
		s.recordFetch(vendorsSnapshotScope, "error")
		return nil, err
	}
	s.recordFetch(vendorsSnapshotScope, "success")
	s.storeSnapshot(ctx, vendorsSnapshotScope, fetched)
	return fetched, nil
}

func (s *service) storeSnapshot(ctx context.Context, scope string, value any) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.SnapshotKey(scope), string(encoded), s.cacheTTL); err != nil {
		warnCtx := s.logger.WithFields(ctx, map[string]any{"scope": scope, "error": err.Error()})
		s.logger.Warn(warnCtx, "failed to cache upstream snapshot")
	}
}

func (s *service) recordFetch(source, outcome string) {
	if s.metrics != nil {
		s.metrics.IncUpstreamFetch(source, outcome)
	}
}

func (s *service) VendorStoreStats(ctx context.Context, input StatsInput) (*VendorStoreReport, error) {
	started := s.now()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	filtered := Apply(snap.orders, Predicate{
		Statuses:  input.Statuses,
		From:      input.From,
		To:        input.To,
		MinAmount: input.MinAmount,
	})
	stats := Aggregate(filtered, snap.directory)

	if s.metrics != nil {
		s.metrics.ObserveReportBuild("vendor_store", s.now().Sub(started))
	}
	return &VendorStoreReport{
		Stats:           stats,
		VendorsDegraded: snap.vendorsDegraded,
		GeneratedAt:     s.now(),
	}, nil
}

func (s *service) Returns(ctx context.Context, input StatsInput) (*ReturnsReport, error) {
	started := s.now()
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	predicate := Predicate{
		Statuses:  enums.ReturnOrderStatuses,
		From:      input.From,
		To:        input.To,
		MinAmount: input.MinAmount,
	}
	filtered := Apply(snap.orders, predicate)
	stats := Aggregate(filtered, snap.directory)
	summary := SummarizeReturns(filtered)

	if s.metrics != nil {
		s.metrics.ObserveReportBuild("returns", s.now().Sub(started))
	}
	return &ReturnsReport{
		Stats:           stats,
		Summary:         summary,
		VendorsDegraded: snap.vendorsDegraded,
		GeneratedAt:     s.now(),
	}, nil
}

func (s *service) DrillDown(ctx context.Context, input DrillDownInput) (*DrillDownResult, error) {
	if input.VendorID == "" || input.StoreID == "" {
		return nil, errors.New(errors.CodeValidation, "vendor id and store id are required")
	}
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return s.scopedDrillDown(ctx, input, err)
	}
	return &DrillDownResult{
		VendorID: input.VendorID,
		StoreID:  input.StoreID,
		Orders:   DrillDown(snap.orders, input.VendorID, input.StoreID, input.Statuses),
	}, nil
}

// scopedDrillDown answers a drill-down from the per-vendor-store upstream
// endpoint when the full snapshot fetch failed. The scoped rows still run
// through the same filter so the status selection applies either way.
func (s *service) scopedDrillDown(ctx context.Context, input DrillDownInput, snapErr error) (*DrillDownResult, error) {
	if s.scopedSource == nil {
		return nil, snapErr
	}

	warnCtx := s.logger.WithFields(ctx, map[string]any{
		"vendor_id": input.VendorID,
		"store_id":  input.StoreID,
		"error":     snapErr.Error(),
	})
	s.logger.Warn(warnCtx, "order snapshot unavailable, fetching scoped orders")

	scoped, err := s.scopedSource.FetchOrdersForVendorStore(ctx, input.VendorID, input.StoreID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "fetching scoped orders")
	}
	return &DrillDownResult{
		VendorID: input.VendorID,
		StoreID:  input.StoreID,
		Orders:   DrillDown(scoped, input.VendorID, input.StoreID, input.Statuses),
	}, nil
}

// RefreshSnapshots re-fetches both upstream collections and rewrites the
// cache. Used by the background refresh job so interactive requests mostly
// hit warm data.
func (s *service) RefreshSnapshots(ctx context.Context) error {
	orderList, orderErr := s.orderSource.FetchAllOrders(ctx)
	if orderErr == nil {
		s.recordFetch(ordersSnapshotScope, "success")
		s.storeSnapshot(ctx, ordersSnapshotScope, orderList)
	} else {
		s.recordFetch(ordersSnapshotScope, "error")
	}

	vendorList, vendorErr := s.vendorSource.FetchAllVendors(ctx)
	if vendorErr == nil {
		s.recordFetch(vendorsSnapshotScope, "success")
		s.storeSnapshot(ctx, vendorsSnapshotScope, vendorList)
	} else {
		s.recordFetch(vendorsSnapshotScope, "error")
	}

	if orderErr != nil {
		return errors.Wrap(errors.CodeDependency, orderErr, "refreshing order snapshot")
	}
	if vendorErr != nil {
		return errors.Wrap(errors.CodeDependency, vendorErr, "refreshing vendor snapshot")
	}
	return nil
}
