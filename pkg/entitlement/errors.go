package entitlement

import "errors"

// Domain errors for entitlement operations
var (
	// Catalog errors
	ErrUnknownPlan         = errors.New("entitlement.errors.unknown_plan")
	ErrInvalidCatalog      = errors.New("entitlement.errors.invalid_catalog")
	ErrInvalidQuota        = errors.New("entitlement.errors.invalid_quota")
	ErrInvalidNode         = errors.New("entitlement.errors.invalid_node")
	ErrNotMonotonic        = errors.New("entitlement.errors.tiers_not_monotonic")
	ErrFailedToLoadCatalog = errors.New("entitlement.errors.failed_to_load_catalog")

	// Quota errors
	ErrQuotaNotFound        = errors.New("entitlement.errors.quota_not_found")
	ErrLimitExceeded        = errors.New("entitlement.errors.limit_exceeded")
	ErrNoCounterRegistered  = errors.New("entitlement.errors.no_counter_registered")
	ErrFailedToCountUsage   = errors.New("entitlement.errors.failed_to_count_usage")
	ErrDowngradeNotPossible = errors.New("entitlement.errors.downgrade_not_possible")
)
