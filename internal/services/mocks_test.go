package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"vessel-logistics-service/internal/domain"
)

// In-memory repositories for service tests. They are safe for
// concurrent use so coordinator tests can hammer them from many
// goroutines.

type memVesselRepo struct {
	mu      sync.Mutex
	vessels map[string]*domain.Vessel
}

func newMemVesselRepo(vessels ...*domain.Vessel) *memVesselRepo {
	r := &memVesselRepo{vessels: make(map[string]*domain.Vessel)}
	for _, v := range vessels {
		r.vessels[v.VesselID] = v
	}
	return r
}

func (r *memVesselRepo) ListVessels(_ context.Context) ([]*domain.Vessel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Vessel, 0, len(r.vessels))
	for _, v := range r.vessels {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VesselID < out[j].VesselID })
	return out, nil
}

func (r *memVesselRepo) GetVessel(_ context.Context, vesselID string) (*domain.Vessel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.vessels[vesselID]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "vessel", ID: vesselID}
	}
	return v, nil
}

type memAnalysisRepo struct {
	mu      sync.Mutex
	records map[string]*domain.AnalysisRecord
}

func newMemAnalysisRepo() *memAnalysisRepo {
	return &memAnalysisRepo{records: make(map[string]*domain.AnalysisRecord)}
}

func analysisKey(vesselID string, kind domain.AnalysisKind) string {
	return vesselID + "/" + string(kind)
}

func (r *memAnalysisRepo) Get(_ context.Context, vesselID string, kind domain.AnalysisKind) (*domain.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[analysisKey(vesselID, kind)]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "analysis", ID: vesselID}
	}
	cp := *rec
	return &cp, nil
}

func (r *memAnalysisRepo) Put(_ context.Context, rec *domain.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *rec
	r.records[analysisKey(rec.VesselID, rec.Kind)] = &cp
	return nil
}

func (r *memAnalysisRepo) Delete(_ context.Context, vesselID string, kind domain.AnalysisKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, analysisKey(vesselID, kind))
	return nil
}

type memDelayRepo struct {
	mu    sync.Mutex
	preds map[string][]*domain.DelayPrediction
}

func newMemDelayRepo() *memDelayRepo {
	return &memDelayRepo{preds: make(map[string][]*domain.DelayPrediction)}
}

func (r *memDelayRepo) Create(_ context.Context, p *domain.DelayPrediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *p
	r.preds[p.VesselID] = append(r.preds[p.VesselID], &cp)
	return nil
}

func (r *memDelayRepo) ListRecent(_ context.Context, vesselID string, limit int) ([]*domain.DelayPrediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := append([]*domain.DelayPrediction(nil), r.preds[vesselID]...)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memDelayRepo) PruneKeepLast(_ context.Context, vesselID string, keep int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.preds[vesselID]
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) <= keep {
		return 0, nil
	}
	removed := len(all) - keep
	r.preds[vesselID] = append([]*domain.DelayPrediction(nil), all[:keep]...)
	return removed, nil
}

func testVessel() *domain.Vessel {
	return &domain.Vessel{
		VesselID: "MV-TEST-001",
		Name:     "MV Test",
		Capacity: 12000,
		ETA:      time.Date(2026, 9, 10, 6, 0, 0, 0, time.UTC),
		LoadPort: "Paradip",
		Parcels: []domain.Parcel{
			{
				Size:         9500,
				MaterialType: "Coking Coal",
				Allocations: []domain.PlantAllocation{
					{PlantName: "Durgapur Works", RequiredQuantity: 3500, PlantStockAvailability: 2100},
					{PlantName: "Bokaro Works", RequiredQuantity: 6000, PlantStockAvailability: 7500},
				},
			},
		},
		Rail: domain.RailData{
			RakeCapacity:          4000,
			LoadingTimePerDay:     2000,
			Availability:          "High",
			NumberOfRakesRequired: 2,
		},
		Costs: domain.CostParameters{
			FringeRailRate:   100,
			DemurrageRate:    25000,
			PortHandlingRate: 50,
			StorageRate:      12,
			FreeTimeDays:     3,
		},
	}
}

// waitForStatus polls the repository until the record reaches the
// wanted status or the deadline passes.
func waitForStatus(
	t *testing.T,
	repo *memAnalysisRepo,
	vesselID string,
	kind domain.AnalysisKind,
	want domain.AnalysisStatus,
) *domain.AnalysisRecord {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		rec, err := repo.Get(context.Background(), vesselID, kind)
		if err == nil && rec.Status == want {
			return rec
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("record for %s/%s never reached status %q", vesselID, kind, want)
	return nil
}

// waitForRelease polls until the registry no longer holds the key.
func waitForRelease(t *testing.T, reg interface {
	Contains(ctx context.Context, key string) (bool, error)
}, key string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		held, err := reg.Contains(context.Background(), key)
		if err != nil {
			t.Fatalf("contains: %v", err)
		}
		if !held {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("registry key %q was never released", key)
}
