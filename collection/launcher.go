package collection

// Launcher starts a task. Implementations must eventually run every task they
// accept; the orchestration call blocks until all of them have finished.
type Launcher interface {
	Launch(p Priority, task func())
}

// LauncherFunc adapts a function to a Launcher.
type LauncherFunc func(p Priority, task func())

// Launch calls f(p, task).
func (f LauncherFunc) Launch(p Priority, task func()) { f(p, task) }

// GoLauncher starts every task on its own goroutine and ignores the priority.
type GoLauncher struct{}

// Launch runs task on a new goroutine.
func (GoLauncher) Launch(_ Priority, task func()) { go task() }
