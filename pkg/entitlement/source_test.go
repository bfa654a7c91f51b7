package entitlement_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyguy/surveykit/pkg/entitlement"
)

const testCatalogYAML = `
free:
  surveys: {limit: 5, unlimited: false}
  qrCodes: true
  analytics:
    basic: true
    advanced: false
pro:
  surveys: {limit: null, unlimited: true}
  qrCodes: true
  analytics:
    basic: true
    advanced: true
`

func TestYAMLSource(t *testing.T) {
	t.Parallel()

	t.Run("decodes flags quotas and groups", func(t *testing.T) {
		t.Parallel()

		catalog, err := entitlement.LoadCatalog(context.Background(), entitlement.NewYAMLSource([]byte(testCatalogYAML)))
		require.NoError(t, err)

		assert.True(t, catalog.HasFeature(entitlement.Free, entitlement.PathQRCodes))
		assert.False(t, catalog.HasFeature(entitlement.Free, entitlement.PathAnalyticsAdvanced))
		assert.True(t, catalog.HasFeature(entitlement.Pro, entitlement.PathAnalyticsAdvanced))
		assert.Equal(t, int64(5), catalog.FeatureLimit(entitlement.Free, entitlement.PathSurveys))
		assert.True(t, catalog.IsUnlimited(entitlement.Pro, entitlement.PathSurveys))
		assert.Equal(t, []entitlement.Plan{entitlement.Free, entitlement.Pro}, catalog.Plans())
	})

	t.Run("reads from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "plans.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0o600))

		plans, err := entitlement.NewFileSource(path).Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, plans, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := entitlement.LoadCatalog(context.Background(), entitlement.NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")))
		require.ErrorIs(t, err, entitlement.ErrFailedToLoadCatalog)
	})

	invalid := []struct {
		name string
		doc  string
		err  error
	}{
		{"unlimited with limit", "free:\n  surveys: {limit: 5, unlimited: true}\n", entitlement.ErrInvalidQuota},
		{"limited without limit", "free:\n  surveys: {limit: null, unlimited: false}\n", entitlement.ErrInvalidQuota},
		{"only unlimited false", "free:\n  surveys: {unlimited: false}\n", entitlement.ErrInvalidQuota},
		{"negative limit", "free:\n  surveys: {limit: -1}\n", entitlement.ErrInvalidQuota},
		{"non boolean flag", "free:\n  qrCodes: maybe\n", entitlement.ErrInvalidNode},
		{"sequence node", "free:\n  qrCodes: [1, 2]\n", entitlement.ErrInvalidNode},
		{"unknown plan", "gold:\n  qrCodes: true\n", entitlement.ErrUnknownPlan},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := entitlement.LoadCatalog(context.Background(), entitlement.NewYAMLSource([]byte(tt.doc)))
			require.ErrorIs(t, err, entitlement.ErrFailedToLoadCatalog)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("non monotonic tiers", func(t *testing.T) {
		t.Parallel()

		doc := "free:\n  qrCodes: true\npro:\n  qrCodes: false\n"
		_, err := entitlement.LoadCatalog(context.Background(), entitlement.NewYAMLSource([]byte(doc)))
		require.ErrorIs(t, err, entitlement.ErrNotMonotonic)
	})
}

func TestInMemSource(t *testing.T) {
	t.Parallel()

	plans := entitlement.DefaultPlans()
	src := entitlement.NewInMemSource(plans)
	delete(plans, entitlement.Pro)

	loaded, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded, 3)

	catalog, err := entitlement.LoadCatalog(context.Background(), entitlement.DefaultSource())
	require.NoError(t, err)
	assert.True(t, catalog.HasFeature(entitlement.Enterprise, entitlement.PathSecuritySSO))
}
