package entitlement

// Path is a dot-separated key identifying a node in a plan's feature tree.
// Paths are not validated: an unknown path simply grants nothing.
type Path string

func (p Path) String() string {
	return string(p)
}

// Quota paths.
const (
	PathSurveys   Path = "surveys"
	PathResponses Path = "responses" // per survey
	PathStorage   Path = "storage"   // megabytes
	PathEvents    Path = "events"
)

// Flag paths.
const (
	PathQuestionTypesBasic    Path = "questionTypes.basic"
	PathQuestionTypesAdvanced Path = "questionTypes.advanced"
	PathQuestionTypesQuiz     Path = "questionTypes.quiz"
	PathQuestionTypesScales   Path = "questionTypes.scales"

	PathFileUploads Path = "fileUploads"
	PathQRCodes     Path = "qrCodes"

	PathAnalyticsBasic            Path = "analytics.basic"
	PathAnalyticsAdvanced         Path = "analytics.advanced"
	PathAnalyticsRealtime         Path = "analytics.realtime"
	PathAnalyticsCustomReports    Path = "analytics.customReports"
	PathAnalyticsCustomDashboards Path = "analytics.customDashboards"

	PathTemplatesStandard Path = "templates.standard"
	PathTemplatesPremium  Path = "templates.premium"
	PathTemplatesCustom   Path = "templates.custom"

	PathSupportEmail          Path = "support.email"
	PathSupportPriority       Path = "support.priority"
	PathSupportPhone          Path = "support.phone"
	PathSupportDedicated      Path = "support.dedicated"
	PathSupportAccountManager Path = "support.accountManager"

	PathExportsPDF   Path = "exports.pdf"
	PathExportsExcel Path = "exports.excel"
	PathExportsCSV   Path = "exports.csv"
	PathExportsAPI   Path = "exports.api"

	PathBrandingCustom            Path = "branding.custom"
	PathBrandingWhiteLabel        Path = "branding.whiteLabel"
	PathBrandingFullCustomization Path = "branding.fullCustomization"

	PathCollaborationTeam     Path = "collaboration.team"
	PathCollaborationRoles    Path = "collaboration.roles"
	PathCollaborationSharing  Path = "collaboration.sharing"
	PathCollaborationAdvanced Path = "collaboration.advanced"

	PathIntegrationsAPI      Path = "integrations.api"
	PathIntegrationsWebhooks Path = "integrations.webhooks"
	PathIntegrationsZapier   Path = "integrations.zapier"
	PathIntegrationsCustom   Path = "integrations.custom"

	PathSecurityAdvanced   Path = "security.advanced"
	PathSecurityEncryption Path = "security.encryption"
	PathSecurityAudit      Path = "security.audit"
	PathSecuritySSO        Path = "security.sso"
	PathSecurityCompliance Path = "security.compliance"

	PathMultiLanguage     Path = "multiLanguage"
	PathCustomDevelopment Path = "customDevelopment"
	PathOnPremise         Path = "onPremise"
	PathSLA               Path = "sla"
	PathCustomTraining    Path = "customTraining"
	PathPriorityFeatures  Path = "priorityFeatures"
	PathCustomWorkflows   Path = "customWorkflows"
)
