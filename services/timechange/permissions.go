package timechange

import (
	"context"
	"encoding/json"
	"time"

	staffRepo "zmina/database/repository/staff"
	"zmina/models"
	"zmina/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	scopeCachePrefix = "scope:"
	scopeCacheTTL    = 5 * time.Minute
)

// PermissionGuard resolves whether a user may act on an apartment. Admins
// always may; everyone else only within their assigned apartment set. The
// guard runs against the final resolved target before any validation so a
// denied user learns nothing about apartments outside their scope.
type PermissionGuard struct {
	Staff staffRepo.StaffRepository
	Cache *redis.Client // optional scope cache
}

// AssignedApartments returns the user's assigned apartment ids, served from
// the Redis scope cache when warm.
func (g *PermissionGuard) AssignedApartments(ctx context.Context, userID string) ([]string, error) {
	key := scopeCachePrefix + userID
	if g.Cache != nil {
		if data, err := g.Cache.Get(ctx, key).Result(); err == nil {
			var ids []string
			if json.Unmarshal([]byte(data), &ids) == nil {
				return ids, nil
			}
		}
	}

	ids, err := g.Staff.GetAssignments(ctx, userID)
	if err != nil {
		return nil, err
	}

	if g.Cache != nil {
		if b, err := json.Marshal(ids); err == nil {
			if err := g.Cache.Set(ctx, key, b, scopeCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache assignment scope",
					zap.String("userId", userID), zap.Error(err))
			}
		}
	}
	return ids, nil
}

// InvalidateScope drops the cached assignment set after an assignment write.
func (g *PermissionGuard) InvalidateScope(ctx context.Context, userID string) {
	if g.Cache == nil {
		return
	}
	if err := g.Cache.Del(ctx, scopeCachePrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate assignment scope",
			zap.String("userId", userID), zap.Error(err))
	}
}

// Authorize reports whether the user may act on the apartment.
func (g *PermissionGuard) Authorize(ctx context.Context, user *models.StaffUser, apartmentID string) (bool, error) {
	if user.IsAdmin() {
		return true, nil
	}
	ids, err := g.AssignedApartments(ctx, user.ID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == apartmentID {
			return true, nil
		}
	}
	return false, nil
}
