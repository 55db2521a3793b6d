package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/CardHaven/CardHaven-Backend/db/store"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/CardHaven/CardHaven-Backend/services/redis"
)

// popularityWindow is the period settled orders count toward a brand's rank.
const popularityWindow = 30 * 24 * time.Hour

type CatalogService struct {
	store  *store.Store
	logger *logging.Logger
	redis  *redis.RedisService
}

func NewCatalogService(store *store.Store, logger *logging.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
	}
}

func NewCatalogServiceWithCache(store *store.Store, logger *logging.Logger, redis *redis.RedisService) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
		redis:  redis,
	}
}

// List returns catalog rows filtered, sorted and annotated with popularity,
// reading through the cache keyed by the filter.
func (c *CatalogService) List(ctx context.Context, params ListParams) ([]Listing, error) {
	if c.redis != nil {
		var cached []Listing
		hit, err := c.redis.GetCatalogListing(ctx, params.cacheKey(), &cached)
		if err != nil {
			c.logger.Error(fmt.Sprintf("catalog cache read failed: %v", err))
		} else if hit {
			return cached, nil
		}
	}

	rates, err := c.store.ListBrandRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch rates: %w", err)
	}

	popularity, err := c.brandPopularity(ctx)
	if err != nil {
		c.logger.Error(fmt.Sprintf("popularity unavailable, ranking degrades to zero: %v", err))
		popularity = map[int64]int64{}
	}

	listings := make([]Listing, 0, len(rates))
	for _, r := range rates {
		listings = append(listings, Listing{
			RateID:      r.ID,
			BrandID:     r.BrandID,
			BrandName:   r.BrandName,
			Category:    r.Category,
			VariantName: r.VariantName,
			Side:        r.Side,
			Rate:        r.Rate,
			FaceValue:   r.FaceValue,
			Popularity:  popularity[r.BrandID],
		})
	}

	result := SortListings(FilterListings(listings, params.Query, params.Side), params.Sort)

	if c.redis != nil {
		if err := c.redis.StoreCatalogListing(ctx, params.cacheKey(), result); err != nil {
			c.logger.Error(fmt.Sprintf("catalog cache store failed: %v", err))
		}
	}

	return result, nil
}

// Invalidate drops every cached listing; called after rate or inventory
// mutations.
func (c *CatalogService) Invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.InvalidateCatalogListings(ctx); err != nil {
		c.logger.Error(fmt.Sprintf("catalog cache invalidation failed: %v", err))
	}
}

// brandPopularity serves the ranking from redis, refreshing from settled
// transaction counts on a miss.
func (c *CatalogService) brandPopularity(ctx context.Context) (map[int64]int64, error) {
	if c.redis != nil {
		counts, err := c.redis.GetBrandPopularity(ctx)
		if err == nil && len(counts) > 0 {
			return counts, nil
		}
	}

	rows, err := c.store.CountBrandTransactionsSince(ctx, time.Now().Add(-popularityWindow))
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.BrandID] = row.Count
	}

	if c.redis != nil {
		if err := c.redis.StoreBrandPopularity(ctx, counts); err != nil {
			c.logger.Error(fmt.Sprintf("popularity cache store failed: %v", err))
		}
	}

	return counts, nil
}

// FilterListings keeps rows matching the side filter and the
// case-insensitive substring query over brand, variant and category.
func FilterListings(listings []Listing, query, side string) []Listing {
	q := strings.ToLower(strings.TrimSpace(query))

	result := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if side != "" && side != "all" && l.Side != side {
			continue
		}
		if q != "" {
			haystack := strings.ToLower(l.BrandName + " " + l.VariantName + " " + l.Category)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		result = append(result, l)
	}
	return result
}

// SortListings orders rows by the requested key: rate descending, name
// alphabetical, or popularity descending. Name is the default.
func SortListings(listings []Listing, by string) []Listing {
	switch by {
	case SortByRate:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Rate.GreaterThan(listings[j].Rate)
		})
	case SortByPopularity:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Popularity > listings[j].Popularity
		})
	default:
		sort.SliceStable(listings, func(i, j int) bool {
			if listings[i].BrandName == listings[j].BrandName {
				return listings[i].VariantName < listings[j].VariantName
			}
			return listings[i].BrandName < listings[j].BrandName
		})
	}
	return listings
}
