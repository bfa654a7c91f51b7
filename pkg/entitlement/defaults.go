package entitlement

var (
	on  = Flag(true)
	off = Flag(false)
)

// DefaultPlans returns the built-in feature trees for every tier.
// Storage limits are expressed in megabytes; response limits apply per survey.
func DefaultPlans() map[Plan]Node {
	return map[Plan]Node{
		Free:       freeFeatures(),
		Pro:        proFeatures(),
		Enterprise: enterpriseFeatures(),
	}
}

func freeFeatures() Node {
	return Group(Features{
		"surveys":   Limit(5),
		"responses": Limit(100),
		"questionTypes": Group(Features{
			"basic":    on,
			"advanced": on,
			"quiz":     on,
			"scales":   on,
		}),
		"fileUploads": on,
		"analytics": Group(Features{
			"basic":         on,
			"advanced":      off,
			"realtime":      off,
			"customReports": off,
		}),
		"templates": Group(Features{
			"standard": on,
			"premium":  off,
			"custom":   off,
		}),
		"support": Group(Features{
			"email":     on,
			"priority":  off,
			"phone":     off,
			"dedicated": off,
		}),
		"exports": Group(Features{
			"pdf":   on,
			"excel": off,
			"csv":   on,
		}),
		"branding": Group(Features{
			"custom":     off,
			"whiteLabel": off,
		}),
		"collaboration": Group(Features{
			"team":    off,
			"roles":   off,
			"sharing": on,
		}),
		"integrations": Group(Features{
			"api":      off,
			"webhooks": off,
			"zapier":   off,
		}),
		"storage": Limit(2048),
		"qrCodes": on,
		"events":  Limit(2),
	})
}

func proFeatures() Node {
	return Group(Features{
		"surveys":   Unlimited(),
		"responses": Limit(10000),
		"questionTypes": Group(Features{
			"basic":    on,
			"advanced": on,
			"quiz":     on,
			"scales":   on,
		}),
		"fileUploads": on,
		"analytics": Group(Features{
			"basic":         on,
			"advanced":      on,
			"realtime":      off,
			"customReports": on,
		}),
		"templates": Group(Features{
			"standard": on,
			"premium":  on,
			"custom":   on,
		}),
		"support": Group(Features{
			"email":     on,
			"priority":  on,
			"phone":     off,
			"dedicated": off,
		}),
		"exports": Group(Features{
			"pdf":   on,
			"excel": on,
			"csv":   on,
		}),
		"branding": Group(Features{
			"custom":     on,
			"whiteLabel": on,
		}),
		"collaboration": Group(Features{
			"team":    on,
			"roles":   on,
			"sharing": on,
		}),
		"integrations": Group(Features{
			"api":      on,
			"webhooks": off,
			"zapier":   on,
		}),
		"storage": Limit(20480),
		"qrCodes": on,
		"events":  Unlimited(),
		"security": Group(Features{
			"advanced":   on,
			"encryption": on,
			"audit":      on,
		}),
		"multiLanguage": on,
	})
}

func enterpriseFeatures() Node {
	return Group(Features{
		"surveys":   Unlimited(),
		"responses": Unlimited(),
		"questionTypes": Group(Features{
			"basic":    on,
			"advanced": on,
			"quiz":     on,
			"scales":   on,
		}),
		"fileUploads": on,
		"analytics": Group(Features{
			"basic":            on,
			"advanced":         on,
			"realtime":         on,
			"customReports":    on,
			"customDashboards": on,
		}),
		"templates": Group(Features{
			"standard": on,
			"premium":  on,
			"custom":   on,
		}),
		"support": Group(Features{
			"email":          on,
			"priority":       on,
			"phone":          on,
			"dedicated":      on,
			"accountManager": on,
		}),
		"exports": Group(Features{
			"pdf":   on,
			"excel": on,
			"csv":   on,
			"api":   on,
		}),
		"branding": Group(Features{
			"custom":            on,
			"whiteLabel":        on,
			"fullCustomization": on,
		}),
		"collaboration": Group(Features{
			"team":     on,
			"roles":    on,
			"sharing":  on,
			"advanced": on,
		}),
		"integrations": Group(Features{
			"api":      on,
			"webhooks": on,
			"zapier":   on,
			"custom":   on,
		}),
		"storage": Unlimited(),
		"qrCodes": on,
		"events":  Unlimited(),
		"security": Group(Features{
			"advanced":   on,
			"encryption": on,
			"audit":      on,
			"sso":        on,
			"compliance": on,
		}),
		"multiLanguage":     on,
		"customDevelopment": on,
		"onPremise":         on,
		"sla":               on,
		"customTraining":    on,
		"priorityFeatures":  on,
		"customWorkflows":   on,
	})
}
