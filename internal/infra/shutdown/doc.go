// Package shutdown runs cleanup hooks exactly once. SIGINT and SIGTERM
// cancel the watched context; the caller then runs the hooks.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(saveState)
//	ctx, stop := h.Watch(context.Background())
//	defer stop()
//	run(ctx)
//	return h.Shutdown()
package shutdown
