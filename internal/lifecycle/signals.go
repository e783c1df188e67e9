//go:build !windows

package lifecycle

import (
	"log"
	"os"
	"os/signal"
	"syscall"
)

// SignalNotifier maps POSIX signals onto lifecycle events for the agent
// daemon: SIGUSR1 means background, SIGUSR2 means foreground.
type SignalNotifier struct {
	*ManualNotifier
	ch   chan os.Signal
	done chan struct{}
}

func NewSignalNotifier() *SignalNotifier {
	n := &SignalNotifier{
		ManualNotifier: NewManualNotifier(),
		ch:             make(chan os.Signal, 1),
		done:           make(chan struct{}),
	}

	signal.Notify(n.ch, syscall.SIGUSR1, syscall.SIGUSR2)

	go func() {
		for {
			select {
			case sig := <-n.ch:
				switch sig {
				case syscall.SIGUSR1:
					log.Printf("lifecycle: SIGUSR1 -> background")
					n.Emit(Background)
				case syscall.SIGUSR2:
					log.Printf("lifecycle: SIGUSR2 -> foreground")
					n.Emit(Foreground)
				}
			case <-n.done:
				return
			}
		}
	}()

	return n
}

// Close stops signal delivery and the dispatch goroutine.
func (n *SignalNotifier) Close() {
	signal.Stop(n.ch)
	close(n.done)
}
