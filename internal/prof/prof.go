// Package prof wires the Go runtime profilers into a dtype command. A
// Session is started from the profiling flags and stopped once the command
// has finished with its values, so profiles cover script execution only.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
)

// Config names the output files; empty paths disable that profiler.
type Config struct {
	CPU     string
	Heap    string
	Runtime string
}

func (c Config) enabled() bool {
	return c.CPU != "" || c.Heap != "" || c.Runtime != ""
}

// Session owns the open profile files. Stop is safe to call more than once.
type Session struct {
	cfg     Config
	cpu     *os.File
	rt      *os.File
	once    sync.Once
	stopErr error
}

// Start enables the profilers cfg asks for. On error anything already
// started is stopped again.
func Start(cfg Config) (*Session, error) {
	s := &Session{cfg: cfg}
	if !cfg.enabled() {
		return s, nil
	}
	if cfg.CPU != "" {
		f, err := os.Create(cfg.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpu = f
	}
	if cfg.Runtime != "" {
		f, err := os.Create(cfg.Runtime)
		if err == nil {
			err = trace.Start(f)
			if err != nil {
				_ = f.Close()
			}
		}
		if err != nil {
			s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		s.rt = f
	}
	return s, nil
}

// Stop ends the runtime trace and CPU profile, then writes the heap profile.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		var errs []error
		if s.rt != nil {
			trace.Stop()
			errs = append(errs, s.rt.Close())
			s.rt = nil
		}
		errs = append(errs, s.stopCPU())
		if s.cfg.Heap != "" {
			errs = append(errs, writeHeap(s.cfg.Heap))
		}
		s.stopErr = errors.Join(errs...)
	})
	return s.stopErr
}

func (s *Session) stopCPU() error {
	if s.cpu == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpu.Close()
	s.cpu = nil
	return err
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	return nil
}
