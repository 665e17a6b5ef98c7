// Package observability provides hooks for instrumenting forest operations.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about structural mutations and codec activity.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core library free of logging or metrics framework
// dependencies.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetForestHooks(&myForestHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Forest().OnInsert(id, parent)
package observability

import (
	"sync"
	"time"

	"github.com/ThatTimothy/rbx-dom/pkg/ref"
)

// ForestHooks receives events from structural forest mutations.
//
// All forest operations are synchronous in-memory mutations, so hook
// implementations must be fast; a slow hook slows every mutation.
type ForestHooks interface {
	// OnInsert records a newly inserted instance and its parent
	// (ref.Nil when the instance was inserted as a root).
	OnInsert(id, parent ref.Ref)

	// OnRemove records a subtree detachment. moved is the number of
	// instances that left the forest, including the subtree root.
	OnRemove(root ref.Ref, moved int)

	// OnTransplant records a subtree moving between forests. moved is the
	// number of instances transferred, including the subtree root.
	OnTransplant(root, newParent ref.Ref, moved int)
}

// CodecHooks receives events from forest encoding and decoding.
type CodecHooks interface {
	// OnEncode records a completed encode of a forest.
	OnEncode(instances int, duration time.Duration, err error)

	// OnDecode records a completed decode of a forest.
	OnDecode(instances int, duration time.Duration, err error)
}

// NoopForestHooks is a no-op implementation of ForestHooks.
type NoopForestHooks struct{}

func (NoopForestHooks) OnInsert(ref.Ref, ref.Ref)          {}
func (NoopForestHooks) OnRemove(ref.Ref, int)              {}
func (NoopForestHooks) OnTransplant(ref.Ref, ref.Ref, int) {}

// NoopCodecHooks is a no-op implementation of CodecHooks.
type NoopCodecHooks struct{}

func (NoopCodecHooks) OnEncode(int, time.Duration, error) {}
func (NoopCodecHooks) OnDecode(int, time.Duration, error) {}

var (
	forestHooks ForestHooks = NoopForestHooks{}
	codecHooks  CodecHooks  = NoopCodecHooks{}
	hooksMu     sync.RWMutex
)

// SetForestHooks registers custom forest hooks.
// This should be called once at application startup before any forest operations.
func SetForestHooks(h ForestHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		forestHooks = h
	}
}

// SetCodecHooks registers custom codec hooks.
// This should be called once at application startup before any codec operations.
func SetCodecHooks(h CodecHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		codecHooks = h
	}
}

// Forest returns the registered forest hooks.
func Forest() ForestHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return forestHooks
}

// Codec returns the registered codec hooks.
func Codec() CodecHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return codecHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	forestHooks = NoopForestHooks{}
	codecHooks = NoopCodecHooks{}
}
