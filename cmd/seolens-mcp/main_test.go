package main

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestSessionRegistryLifecycle(t *testing.T) {
	reg := newSessionRegistry()
	id := generateSessionID()
	transport := &mcp.SSEServerTransport{Endpoint: "/mcp/session/" + id}

	reg.add(id, transport)
	got, ok := reg.get(id)
	if !ok || got != transport {
		t.Fatalf("get after add = %v, %v", got, ok)
	}

	// removing on session end must leave nothing behind
	reg.remove(id)
	if _, ok := reg.get(id); ok {
		t.Fatalf("session still registered after remove")
	}
	if reg.len() != 0 {
		t.Fatalf("registry not empty: %d", reg.len())
	}
}

func TestSessionRegistryUnknownID(t *testing.T) {
	reg := newSessionRegistry()
	if _, ok := reg.get("nope"); ok {
		t.Fatalf("expected miss for unknown session")
	}
}

func TestGenerateSessionID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := generateSessionID()
		if len(id) != 32 {
			t.Fatalf("id length %d, want 32", len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}
