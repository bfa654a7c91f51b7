package entitlement

import "maps"

// Suggestion tells a user which plan unlocks a feature they were denied.
type Suggestion struct {
	RequiredPlan Plan   `json:"required_plan"`
	Message      string `json:"message"`
}

// ButtonLabel returns the call-to-action copy, e.g. "Upgrade to Pro".
func (s Suggestion) ButtonLabel() string {
	return "Upgrade to " + s.RequiredPlan.DisplayName()
}

// suggestions is keyed by exact path. It is maintained separately from the
// feature trees; see Catalog.SuggestionDrift.
var suggestions = map[Path]Suggestion{
	PathAnalyticsAdvanced: {
		RequiredPlan: Pro,
		Message:      "Upgrade to Pro for advanced analytics and custom reporting",
	},
	PathBrandingCustom: {
		RequiredPlan: Pro,
		Message:      "Upgrade to Pro for custom branding and white-label options",
	},
	PathCollaborationTeam: {
		RequiredPlan: Pro,
		Message:      "Upgrade to Pro for team collaboration features",
	},
	PathIntegrationsAPI: {
		RequiredPlan: Pro,
		Message:      "Upgrade to Pro for API access and integrations",
	},
	PathSecuritySSO: {
		RequiredPlan: Enterprise,
		Message:      "Upgrade to Enterprise for Single Sign-On (SSO)",
	},
	PathCustomDevelopment: {
		RequiredPlan: Enterprise,
		Message:      "Upgrade to Enterprise for custom development",
	},
	"compliance": {
		RequiredPlan: Enterprise,
		Message:      "Upgrade to Enterprise for GDPR and HIPAA compliance",
	},
}

// GenericSuggestion is returned for paths without a dedicated message.
var GenericSuggestion = Suggestion{
	RequiredPlan: Pro,
	Message:      "Upgrade your plan to access this feature",
}

// UpgradeSuggestion returns the suggestion for a denied path.
// The lookup depends only on the path; the current plan does not change the result.
func UpgradeSuggestion(_ Plan, path Path) Suggestion {
	if s, ok := suggestions[path]; ok {
		return s
	}
	return GenericSuggestion
}

// Suggestions returns a copy of the suggestion table.
func Suggestions() map[Path]Suggestion {
	return maps.Clone(suggestions)
}
