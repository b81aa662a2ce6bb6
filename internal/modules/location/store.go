// README: Worker presence store backed by Redis GEO.
package location

import (
	"context"

	"github.com/redis/go-redis/v9"

	"crewmatch/internal/types"
)

const workerGeoKey = "presence:workers"

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) SetWorkerPosition(ctx context.Context, id types.ID, p types.Point) error {
	return s.redis.GeoAdd(ctx, workerGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
}

func (s *Store) RemoveWorker(ctx context.Context, id types.ID) error {
	return s.redis.ZRem(ctx, workerGeoKey, string(id)).Err()
}

// NearbyWorkers returns worker IDs within radiusMiles of p, closest first.
func (s *Store) NearbyWorkers(ctx context.Context, p types.Point, radiusMiles float64) ([]types.ID, error) {
	results, err := s.redis.GeoSearch(ctx, workerGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.Lng,
		Latitude:   p.Lat,
		Radius:     radiusMiles,
		RadiusUnit: "mi",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = types.ID(r)
	}
	return ids, nil
}
