package cloud

import (
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"gitlab.com/davidxarnold/costglance/pkg/core"
)

// Resolver resolves the cost-attribution attribute set for an instance. The
// describe call runs first; the three enrichment lookups are independent and
// run concurrently, each consulting the cache before touching the API.
type Resolver struct {
	api    EC2API
	region string
	cache  *Cache
}

// NewResolver creates a resolver over the given API and region. A nil cache
// gets replaced with a fresh one.
func NewResolver(api EC2API, region string, cache *Cache) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{
		api:    api,
		region: region,
		cache:  cache,
	}
}

// Resolve builds the attribute set for the given instance. An empty
// instanceID targets the sole instance in the account (see Describe).
func (r *Resolver) Resolve(ctx context.Context, instanceID string) (core.AttributeSet, error) {
	rec, err := r.Describe(ctx, instanceID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"instance": rec.InstanceID,
		"type":     rec.InstanceType,
		"region":   rec.Region,
	}).Debug("describing instance succeeded")

	var enr core.Enrichment
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		enr.PlatformDetails = r.platformDetails(gctx, rec)
		return nil
	})
	g.Go(func() error {
		pref, err := r.reservationPreference(gctx, rec)
		if err != nil {
			return err
		}
		enr.ReservationPreference = pref
		return nil
	})
	g.Go(func() error {
		fleetID, err := r.fleetMembership(gctx, rec.InstanceID)
		if err != nil {
			return err
		}
		enr.FleetID = fleetID
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return core.BuildAttributes(rec, enr), nil
}

// platformDetails returns the cached clarified platform label, clarifying and
// caching it on a miss. Clarification never fails, so this field is never
// cached as absent.
func (r *Resolver) platformDetails(ctx context.Context, rec core.InstanceRecord) string {
	if entry, ok := r.cache.Get(rec.InstanceID, fieldPlatformDetails); ok && !entry.Absent {
		return entry.Value
	}

	clarified := r.ClarifyPlatform(ctx, rec.PlatformDetails, rec.ImageID)
	r.cache.Put(rec.InstanceID, fieldPlatformDetails, clarified)
	return clarified
}

func (r *Resolver) reservationPreference(ctx context.Context, rec core.InstanceRecord) (string, error) {
	if entry, ok := r.cache.Get(rec.InstanceID, fieldReservationPreference); ok {
		if entry.Absent {
			return "", nil
		}
		return entry.Value, nil
	}

	pref, err := r.ResolveReservation(ctx, rec.CapacityReservationID)
	if err != nil {
		return "", err
	}
	if pref == "" {
		r.cache.PutAbsent(rec.InstanceID, fieldReservationPreference)
		return "", nil
	}

	r.cache.Put(rec.InstanceID, fieldReservationPreference, pref)
	return pref, nil
}

func (r *Resolver) fleetMembership(ctx context.Context, instanceID string) (string, error) {
	if entry, ok := r.cache.Get(instanceID, fieldFleetID); ok {
		if entry.Absent {
			return "", nil
		}
		return entry.Value, nil
	}

	fleetID, err := r.ResolveFleet(ctx, instanceID)
	if err != nil {
		return "", err
	}
	if fleetID == "" {
		r.cache.PutAbsent(instanceID, fieldFleetID)
		return "", nil
	}

	r.cache.Put(instanceID, fieldFleetID, fleetID)
	return fleetID, nil
}
