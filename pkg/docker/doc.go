// Package docker runs temporary ClickHouse servers with testcontainers.
//
// It backs the integration tests that execute compiled statements against a real
// server, checking that the generated SQL and its parameter bindings are accepted end
// to end.
//
//	ch := docker.New(docker.Options{Version: "25.7"})
//	if err := ch.Start(ctx); err != nil {
//		t.Fatal(err)
//	}
//	defer ch.Stop(ctx)
package docker
