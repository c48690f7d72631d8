// Package server streams a live vdom tree to WebSocket clients.
//
// The server owns one tree rendered into an htmlhost container through a
// journal.Journal. Each update patches the tree, flushes the recorded
// mutations as a numbered batch and broadcasts it to every connected client
// as a FrameMutations frame. A client joining late first receives a
// FrameSnapshot frame that rebuilds the current tree, so it can apply the
// following batches in order.
//
// Routes:
//
//	GET  /ws        WebSocket stream of binary protocol frames
//	POST /render    replace the tree with a YAML or JSON tree document
//	GET  /snapshot  current tree as HTML
//	GET  /metrics   Prometheus metrics (when enabled)
//	GET  /healthz   liveness
//
// Example usage:
//
//	srv := server.New(server.DefaultConfig())
//	if _, _, err := srv.Update(ctx, tree); err != nil {
//		return err
//	}
//	return srv.Run()
package server
