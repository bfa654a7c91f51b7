// Package entitlement decides what a subscription plan lets a user do.
//
// Each plan (free, pro, enterprise) owns an immutable feature tree. Interior
// nodes are groups such as "analytics"; leaves are either flags (on/off
// capabilities) or quotas (a numeric ceiling or unlimited). Leaves are
// addressed with dot paths:
//
//	entitlement.HasFeature(entitlement.Pro, entitlement.PathAnalyticsAdvanced) // true
//	entitlement.FeatureLimit(entitlement.Free, entitlement.PathResponses)      // 100
//	entitlement.IsUnlimited(entitlement.Enterprise, entitlement.PathStorage)   // true
//
// Lookups never fail: unknown plans, missing segments and type mismatches all
// answer false or 0. Only a flag set to true counts as a feature; quotas and
// groups do not, even when they grant capacity.
//
// Denied paths map to an upgrade suggestion:
//
//	s := entitlement.UpgradeSuggestion(entitlement.Free, entitlement.PathIntegrationsAPI)
//	s.Message       // "Upgrade to Pro for API access and integrations"
//	s.ButtonLabel() // "Upgrade to Pro"
//
// The built-in catalog comes from DefaultPlans. Custom catalogs are loaded
// through a Source (NewInMemSource, NewFileSource for YAML) and validated by
// NewCatalog, which rejects malformed quotas and tiers that take away
// something a lower tier grants.
//
// For per-user checks backed by live usage counters, build a Service:
//
//	counters := entitlement.NewRegistry()
//	counters.Register(entitlement.PathSurveys, countSurveys)
//
//	svc, err := entitlement.NewService(ctx, entitlement.DefaultSource(), counters, nil)
//	if err != nil {
//	    return err
//	}
//
//	if err := svc.CanCreate(ctx, userID, entitlement.PathSurveys); errors.Is(err, entitlement.ErrLimitExceeded) {
//	    // show upgrade prompt
//	}
//
// The default PlanResolver reads the plan stored with SetPlanToContext and
// falls back to Free.
package entitlement
