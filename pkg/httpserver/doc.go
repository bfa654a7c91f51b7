// Package httpserver runs the API with graceful shutdown.
//
//	srv := httpserver.New(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithShutdownHook("usage tracker", tracker.Close),
//	)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	return srv.Run(ctx, router)
//
// On cancellation the server stops accepting connections, waits for
// in-flight requests up to ShutdownTimeout and then runs the hooks, newest
// first, within the same deadline.
package httpserver
