package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"vessel-logistics-service/internal/domain"
	"vessel-logistics-service/internal/ports"
)

// ComputeResult is what a background computation hands back to the
// coordinator for persistence.
type ComputeResult struct {
	Payload     json.RawMessage
	Degraded    bool
	OracleModel string
}

// ComputeFunc produces the full analysis payload for a vessel. It is
// invoked in a detached goroutine and may take arbitrarily long.
type ComputeFunc func(ctx context.Context, v *domain.Vessel) (*ComputeResult, error)

// Coordinator guarantees at most one concurrent computation per
// vessel for its analysis kind, persists a "computing" placeholder
// immediately, and lets clients poll for the result.
//
// The in-flight registry is acquired before any repository I/O on the
// launch path, so two near-simultaneous requests for the same vessel
// cannot both launch the computation. The registry key is released
// strictly after the terminal status has been persisted.
type Coordinator struct {
	Kind     domain.AnalysisKind
	Vessels  ports.VesselRepository
	Analyses ports.AnalysisRepository
	Registry ports.InflightRegistry
	Compute  ComputeFunc

	// StaleAfter bounds how long a computing record may go without a
	// status write before it is considered orphaned and reclaimable
	// even while its registry key is held (covers a hung oracle
	// call). Zero disables the check.
	StaleAfter time.Duration
}

func (c *Coordinator) key(vesselID string) string {
	return string(c.Kind) + ":" + vesselID
}

// Request implements the cache-read / poll / launch decision for one
// vessel. The returned bool reports whether a new background
// computation was launched by this call.
func (c *Coordinator) Request(ctx context.Context, vesselID string) (*domain.AnalysisRecord, bool, error) {
	key := c.key(vesselID)

	acquired, err := c.Registry.TryAcquire(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("request analysis: acquire %q: %w", key, err)
	}

	if !acquired {
		rec, err := c.pollInflight(ctx, vesselID, key)
		return rec, false, err
	}

	// We hold the key from here on: release on every non-launch path.
	rec, err := c.Analyses.Get(ctx, vesselID, c.Kind)
	switch {
	case err == nil && (rec.Status == domain.AnalysisCompleted || rec.Status == domain.AnalysisFailed):
		// Terminal read, no state change.
		c.release(key)
		return rec, false, nil
	case err == nil && rec.Status == domain.AnalysisComputing:
		// Registry has no holder for the key, so this record is
		// orphaned (e.g. a restart cleared the registry). Relaunch.
	case err != nil && !isNotFound(err):
		c.release(key)
		return nil, false, fmt.Errorf("request analysis: load record for %q: %w", vesselID, err)
	}

	vessel, err := c.Vessels.GetVessel(ctx, vesselID)
	if err != nil {
		c.release(key)
		return nil, false, fmt.Errorf("request analysis: %w", err)
	}

	now := time.Now().UTC()
	placeholder := &domain.AnalysisRecord{
		VesselID: vesselID,
		Kind:     c.Kind,
		Status:   domain.AnalysisComputing,
		Metadata: domain.ComputationMetadata{
			GeneratedAt:   now,
			LastUpdatedAt: now,
		},
	}
	if err := c.Analyses.Put(ctx, placeholder); err != nil {
		c.release(key)
		return nil, false, fmt.Errorf("request analysis: persist placeholder for %q: %w", vesselID, err)
	}

	// Detach from the request context: the HTTP response returns
	// before the computation finishes.
	go c.runCompute(vessel, key)

	return placeholder, true, nil
}

// pollInflight answers a request that lost the registry race: return
// the current record as a non-blocking poll response. A computing
// record older than StaleAfter is reclaimed by forcing the key free
// and retrying the launch path once.
func (c *Coordinator) pollInflight(ctx context.Context, vesselID, key string) (*domain.AnalysisRecord, error) {
	rec, err := c.Analyses.Get(ctx, vesselID, c.Kind)
	if isNotFound(err) {
		// Narrow race: the launcher holds the key but has not yet
		// persisted the placeholder. Report computing; the client
		// will poll again.
		now := time.Now().UTC()
		return &domain.AnalysisRecord{
			VesselID: vesselID,
			Kind:     c.Kind,
			Status:   domain.AnalysisComputing,
			Metadata: domain.ComputationMetadata{GeneratedAt: now, LastUpdatedAt: now},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("request analysis: load in-flight record for %q: %w", vesselID, err)
	}

	if rec.Status == domain.AnalysisComputing && c.StaleAfter > 0 &&
		time.Since(rec.Metadata.LastUpdatedAt) > c.StaleAfter {
		log.Printf("analysis stale: kind=%s vessel=%s age=%s", c.Kind, vesselID,
			time.Since(rec.Metadata.LastUpdatedAt).Truncate(time.Second))
		c.release(key)
		rec, _, err := c.Request(ctx, vesselID)
		return rec, err
	}

	return rec, nil
}

// Regenerate discards any cached record and re-enters Request. While
// the key is in flight it refuses with BusyError and no side effects.
func (c *Coordinator) Regenerate(ctx context.Context, vesselID string) (*domain.AnalysisRecord, error) {
	key := c.key(vesselID)

	held, err := c.Registry.Contains(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("regenerate analysis: check %q: %w", key, err)
	}
	if held {
		return nil, &domain.BusyError{Key: vesselID}
	}

	if err := c.Analyses.Delete(ctx, vesselID, c.Kind); err != nil {
		return nil, fmt.Errorf("regenerate analysis: delete record for %q: %w", vesselID, err)
	}

	rec, _, err := c.Request(ctx, vesselID)
	return rec, err
}

// runCompute executes the computation and persists the terminal
// status. Errors are logged and swallowed here: a background failure
// must never crash the process, and the in-flight key is released on
// every exit path, strictly after the status write.
func (c *Coordinator) runCompute(vessel *domain.Vessel, key string) {
	ctx := context.Background()
	defer c.release(key)

	res, err := c.Compute(ctx, vessel)

	now := time.Now().UTC()
	rec := &domain.AnalysisRecord{
		VesselID: vessel.VesselID,
		Kind:     c.Kind,
		Metadata: domain.ComputationMetadata{
			GeneratedAt:   now,
			LastUpdatedAt: now,
		},
	}

	if err != nil {
		log.Printf("analysis failed: kind=%s vessel=%s err=%v", c.Kind, vessel.VesselID, err)
		rec.Status = domain.AnalysisFailed
		rec.ErrorMessage = err.Error()
	} else {
		rec.Status = domain.AnalysisCompleted
		rec.Payload = res.Payload
		rec.Metadata.Degraded = res.Degraded
		rec.Metadata.OracleModel = res.OracleModel
	}

	if err := c.Analyses.Put(ctx, rec); err != nil {
		log.Printf("analysis persist failed: kind=%s vessel=%s err=%v", c.Kind, vessel.VesselID, err)
	}
}

func (c *Coordinator) release(key string) {
	if err := c.Registry.Release(context.Background(), key); err != nil {
		log.Printf("registry release failed: key=%s err=%v", key, err)
	}
}

func isNotFound(err error) bool {
	var nf *domain.NotFoundError
	return errors.As(err, &nf)
}
