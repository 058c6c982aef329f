package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// Every adapter, engine and app node must declare exactly the nodes it resolves with graft.Dep.
func TestNodeDependenciesAreDeclared(t *testing.T) {
	graft.AssertDepsValid(t, "../../internal")
}
