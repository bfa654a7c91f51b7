// Package logger builds *slog.Logger instances for the service.
//
// New applies functional options on top of an info-level JSON default.
// WithEnvironment selects a preset per deployment (text and debug level in
// development, JSON elsewhere). Context extractors registered with
// WithContextExtractors or WithContextValue add request-scoped attributes,
// such as the caller's plan, to every record logged with a context.
//
// Attribute helpers (Error, UserID, Plan, Feature, Currency, ...) keep key
// names consistent across packages. Error and Errors return an empty
// attribute for nil errors, so they can be passed unconditionally:
//
//	log.WarnContext(ctx, "feature usage event dropped",
//	    logger.UserID(userID),
//	    logger.Feature("integrations.api"),
//	    logger.Error(err),
//	)
package logger
