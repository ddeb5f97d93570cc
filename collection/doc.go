// Package collection applies a blocking per-element operation to every element
// of a slice, sequentially or concurrently, and returns results in input order.
//
// # Execution policies
//
// The sequential adapters (ForEach, Map, CompactMap, FlatMap) run one element
// at a time and stop at the first error without touching later elements.
//
// The concurrent adapters (ConcurrentForEach, ConcurrentMap,
// ConcurrentCompactMap, ConcurrentFlatMap) fan the slice out:
//
//   - without WithLimit every element is launched at once. Nothing caps
//     goroutines, connections or memory; choose this only when the input is
//     small or the per-element cost is trivial.
//   - with WithLimit(n) at most n operations are in flight. A replacement is
//     launched, in input order, as soon as any running operation finishes.
//
// # Failures
//
// The first failure observed by the orchestrator wins. No further elements
// are admitted, running operations are not cancelled, and the call returns
// only after every launched operation has finished. The error is returned
// exactly as the operation produced it and no partial results are returned.
// When several elements fail, which of them is reported depends on timing.
//
// A panicking operation is recovered and reported as a *PanicError.
//
// # Launchers
//
// Tasks are started through a Launcher, which receives the WithPriority hint.
// The default starts one goroutine per task. A Pool shares a fixed set of
// workers between calls and starts queued tasks highest priority first.
//
// # Usage
//
//	digests, err := collection.ConcurrentMap(ctx, paths,
//	    func(ctx context.Context, path string) (string, error) {
//	        return hashFile(ctx, path)
//	    },
//	    collection.WithLimit(8),
//	    collection.WithPriority(collection.PriorityUserInitiated),
//	)
package collection
