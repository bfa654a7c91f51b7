// Package usage records feature usage analytics.
//
// A Tracker hands each event to a Sink in the background and never reports
// failure to the caller's control flow: the event is written at most once,
// sink errors are logged and dropped. The returned Delivery can be waited on
// when the outcome matters, for example in tests:
//
//	tracker := usage.NewTracker(usage.NewPostgresSink(pool), usage.WithLogger(log))
//	defer tracker.Close(ctx)
//
//	tracker.BestEffortTrack(ctx, userID, "analytics.advanced", map[string]any{"source": "dashboard"})
//
// Sinks are provided for PostgreSQL (analytics table), Redis streams, MongoDB
// collections, OpenSearch indices, the application log, and memory.
package usage
