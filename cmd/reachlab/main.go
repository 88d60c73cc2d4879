package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
	"syscall"
)

var (
	resetMu        sync.Mutex
	emergencyReset func()
)

// setEmergencyReset registers the terminal restore run on panic
func setEmergencyReset(fn func()) {
	resetMu.Lock()
	emergencyReset = fn
	resetMu.Unlock()
}

func main() {
	// Panic Recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			resetMu.Lock()
			reset := emergencyReset
			resetMu.Unlock()
			if reset != nil {
				reset()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mREACHLAB CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
