package entitlement_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyguy/surveykit/pkg/entitlement"
)

func TestHasFeature(t *testing.T) {
	t.Parallel()

	t.Run("every enabled flag is reported", func(t *testing.T) {
		t.Parallel()

		for plan, tree := range entitlement.DefaultPlans() {
			tree.Walk(func(path entitlement.Path, leaf entitlement.Node) {
				if leaf.Kind() != entitlement.KindFlag {
					return
				}
				assert.Equal(t, leaf.Enabled(), entitlement.HasFeature(plan, path), "%s %s", plan, path)
			})
		}
	})

	tests := []struct {
		name string
		plan entitlement.Plan
		path entitlement.Path
		want bool
	}{
		{"free basic analytics", entitlement.Free, entitlement.PathAnalyticsBasic, true},
		{"free advanced analytics", entitlement.Free, entitlement.PathAnalyticsAdvanced, false},
		{"pro advanced analytics", entitlement.Pro, entitlement.PathAnalyticsAdvanced, true},
		{"pro realtime analytics", entitlement.Pro, entitlement.PathAnalyticsRealtime, false},
		{"enterprise sso", entitlement.Enterprise, entitlement.PathSecuritySSO, true},
		{"free api integration", entitlement.Free, entitlement.PathIntegrationsAPI, false},
		{"absent group on free", entitlement.Free, entitlement.PathSecurityAdvanced, false},
		{"absent leaf on pro", entitlement.Pro, entitlement.PathSupportAccountManager, false},
		{"unknown path", entitlement.Enterprise, "analytics.magic", false},
		{"empty path", entitlement.Pro, "", false},
		{"group is not a feature", entitlement.Enterprise, "analytics", false},
		{"unlimited quota is not a feature", entitlement.Enterprise, entitlement.PathSurveys, false},
		{"path into quota", entitlement.Free, "surveys.limit", false},
		{"path into unlimited quota", entitlement.Pro, "surveys.unlimited", false},
		{"empty plan", "", entitlement.PathQRCodes, false},
		{"bogus plan", "bogus-plan", entitlement.PathQRCodes, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, entitlement.HasFeature(tt.plan, tt.path))
		})
	}
}

func TestHasFeatureIsIdempotent(t *testing.T) {
	t.Parallel()

	for range 3 {
		assert.True(t, entitlement.HasFeature(entitlement.Pro, entitlement.PathBrandingCustom))
		assert.Equal(t, int64(100), entitlement.FeatureLimit(entitlement.Free, entitlement.PathResponses))
	}
}

func TestTiersAreMonotonic(t *testing.T) {
	t.Parallel()

	plans := entitlement.DefaultPlans()
	for i, lower := range entitlement.Plans() {
		for _, higher := range entitlement.Plans()[i+1:] {
			plans[lower].Walk(func(path entitlement.Path, leaf entitlement.Node) {
				if leaf.Enabled() {
					assert.True(t, entitlement.HasFeature(higher, path), "%s enabled on %s but not on %s", path, lower, higher)
				}
			})
		}
	}
}

func TestQuotaLookups(t *testing.T) {
	t.Parallel()

	t.Run("limits", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, int64(100), entitlement.FeatureLimit(entitlement.Free, entitlement.PathResponses))
		assert.Equal(t, int64(10000), entitlement.FeatureLimit(entitlement.Pro, entitlement.PathResponses))
		assert.Equal(t, int64(5), entitlement.FeatureLimit(entitlement.Free, entitlement.PathSurveys))
		assert.Equal(t, int64(2048), entitlement.FeatureLimit(entitlement.Free, entitlement.PathStorage))
		assert.Equal(t, int64(2), entitlement.FeatureLimit(entitlement.Free, entitlement.PathEvents))
	})

	t.Run("unlimited reports zero limit", func(t *testing.T) {
		t.Parallel()

		assert.True(t, entitlement.IsUnlimited(entitlement.Enterprise, entitlement.PathResponses))
		assert.Equal(t, int64(0), entitlement.FeatureLimit(entitlement.Enterprise, entitlement.PathResponses))
		assert.True(t, entitlement.IsUnlimited(entitlement.Pro, entitlement.PathSurveys))
		assert.False(t, entitlement.IsUnlimited(entitlement.Free, entitlement.PathSurveys))
	})

	t.Run("non quota paths", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, int64(0), entitlement.FeatureLimit(entitlement.Free, entitlement.PathQRCodes))
		assert.False(t, entitlement.IsUnlimited(entitlement.Enterprise, entitlement.PathQRCodes))
		assert.Equal(t, int64(0), entitlement.FeatureLimit("gold", entitlement.PathSurveys))
		assert.Equal(t, int64(0), entitlement.FeatureLimit(entitlement.Free, "analytics"))
	})

	t.Run("QuotaFor distinguishes flags from missing quotas", func(t *testing.T) {
		t.Parallel()

		catalog := entitlement.Default()

		_, ok := catalog.QuotaFor(entitlement.Free, entitlement.PathQRCodes)
		assert.False(t, ok)

		node, ok := catalog.Lookup(entitlement.Free, entitlement.PathQRCodes)
		require.True(t, ok)
		assert.Equal(t, entitlement.KindFlag, node.Kind())

		q, ok := catalog.QuotaFor(entitlement.Free, entitlement.PathSurveys)
		require.True(t, ok)
		assert.Equal(t, int64(5), q.Limit())
	})
}

func TestRequiredPlan(t *testing.T) {
	t.Parallel()

	catalog := entitlement.Default()

	tests := []struct {
		path entitlement.Path
		want entitlement.Plan
	}{
		{entitlement.PathQRCodes, entitlement.Free},
		{entitlement.PathSurveys, entitlement.Free},
		{entitlement.PathAnalyticsAdvanced, entitlement.Pro},
		{entitlement.PathMultiLanguage, entitlement.Pro},
		{entitlement.PathAnalyticsRealtime, entitlement.Enterprise},
		{entitlement.PathSecuritySSO, entitlement.Enterprise},
	}
	for _, tt := range tests {
		got, ok := catalog.RequiredPlan(tt.path)
		require.True(t, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, ok := catalog.RequiredPlan("compliance")
	assert.False(t, ok)
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("default plans are valid", func(t *testing.T) {
		t.Parallel()

		catalog, err := entitlement.NewCatalog(entitlement.DefaultPlans())
		require.NoError(t, err)
		assert.Equal(t, []entitlement.Plan{entitlement.Free, entitlement.Pro, entitlement.Enterprise}, catalog.Plans())
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()

		_, err := entitlement.NewCatalog(nil)
		require.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
	})

	t.Run("unknown plan key", func(t *testing.T) {
		t.Parallel()

		_, err := entitlement.NewCatalog(map[entitlement.Plan]entitlement.Node{
			"gold": entitlement.Group(nil),
		})
		require.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
		assert.ErrorIs(t, err, entitlement.ErrUnknownPlan)
	})

	t.Run("root must be a group", func(t *testing.T) {
		t.Parallel()

		_, err := entitlement.NewCatalog(map[entitlement.Plan]entitlement.Node{
			entitlement.Free: entitlement.Flag(true),
		})
		require.ErrorIs(t, err, entitlement.ErrInvalidNode)
	})

	t.Run("flag removed by higher tier", func(t *testing.T) {
		t.Parallel()

		_, err := entitlement.NewCatalog(map[entitlement.Plan]entitlement.Node{
			entitlement.Free: entitlement.Group(entitlement.Features{"qrCodes": entitlement.Flag(true)}),
			entitlement.Pro:  entitlement.Group(entitlement.Features{"qrCodes": entitlement.Flag(false)}),
		})
		require.ErrorIs(t, err, entitlement.ErrNotMonotonic)
		assert.ErrorIs(t, err, entitlement.ErrInvalidCatalog)
	})

	t.Run("quota shrinks on higher tier", func(t *testing.T) {
		t.Parallel()

		_, err := entitlement.NewCatalog(map[entitlement.Plan]entitlement.Node{
			entitlement.Pro:        entitlement.Group(entitlement.Features{"surveys": entitlement.Unlimited()}),
			entitlement.Enterprise: entitlement.Group(entitlement.Features{"surveys": entitlement.Limit(100)}),
		})
		require.ErrorIs(t, err, entitlement.ErrNotMonotonic)
	})

	t.Run("single plan", func(t *testing.T) {
		t.Parallel()

		catalog, err := entitlement.NewCatalog(map[entitlement.Plan]entitlement.Node{
			entitlement.Pro: entitlement.Group(entitlement.Features{"qrCodes": entitlement.Flag(true)}),
		})
		require.NoError(t, err)
		assert.True(t, catalog.HasFeature(entitlement.Pro, entitlement.PathQRCodes))
		assert.False(t, catalog.HasFeature(entitlement.Free, entitlement.PathQRCodes))
	})
}

func TestCatalogPathsAndQuotas(t *testing.T) {
	t.Parallel()

	catalog := entitlement.Default()

	paths := catalog.Paths(entitlement.Free)
	assert.Contains(t, paths, entitlement.PathQRCodes)
	assert.Contains(t, paths, entitlement.PathSurveys)
	assert.NotContains(t, paths, entitlement.PathSecuritySSO)
	assert.True(t, slices.IsSorted(paths))

	quotas := catalog.Quotas(entitlement.Free)
	assert.Len(t, quotas, 4)
	assert.Equal(t, int64(100), quotas[entitlement.PathResponses].Limit())

	assert.Nil(t, catalog.Paths("gold"))
	assert.Nil(t, catalog.Quotas("gold"))
}

func TestSuggestionDrift(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []entitlement.Path{"compliance"}, entitlement.Default().SuggestionDrift())
}
