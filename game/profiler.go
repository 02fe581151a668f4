package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// ErrProfilerBusy is returned while a capture is running or cooling down.
var ErrProfilerBusy = errors.New("profiler busy")

// Profiler captures a CPU profile and an execution trace when the frame rate
// sags, so a slow particle mix can be inspected afterwards.
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
}

// NewProfiler creates a profiler writing into dir.
func NewProfiler(dir string) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create profiles dir: %w", err)
	}
	return &Profiler{
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
	}, nil
}

// CaptureProfile starts a background capture tagged with reason.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("%w: capture in progress", ErrProfilerBusy)
	}
	if since := time.Since(p.lastCaptureTime); since < p.captureCooldown {
		return fmt.Errorf("%w: last capture was %v ago", ErrProfilerBusy, since.Round(time.Second))
	}
	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	baseName := captureName(reason)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()
		if err := p.capture(baseName, p.captureDuration); err != nil {
			fmt.Printf("Error capturing profile: %v\n", err)
		}
	}()
	return nil
}

// IsProfiling returns whether a profile capture is currently in progress. A
// nil profiler never captures.
func (p *Profiler) IsProfiling() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func captureName(reason string) string {
	return fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405"), reason)
}

// capture records the CPU profile and the trace in parallel.
func (p *Profiler) capture(baseName string, duration time.Duration) error {
	var wg sync.WaitGroup
	var cpuErr, traceErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		cpuErr = p.captureCPUProfile(baseName, duration)
	}()
	go func() {
		defer wg.Done()
		traceErr = p.captureTrace(baseName, duration)
	}()
	wg.Wait()

	p.analyzeProfile(baseName)
	return errors.Join(cpuErr, traceErr)
}

func (p *Profiler) captureCPUProfile(baseName string, duration time.Duration) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(duration)
	pprof.StopCPUProfile()

	fmt.Printf("CPU profile saved to: %s\n", profilePath)
	return nil
}

func (p *Profiler) captureTrace(baseName string, duration time.Duration) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")
	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(duration)
	trace.Stop()

	fmt.Printf("Trace saved to: %s\n", tracePath)
	return nil
}

// analyzeProfile prints where the capture went and the heap at that moment.
func (p *Profiler) analyzeProfile(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")
	info, err := os.Stat(profilePath)
	if err != nil {
		fmt.Printf("Warning: Could not analyze profile: %v\n", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("\n=== Performance Analysis: %s ===\n", baseName)
	fmt.Printf("Profile file: %s (%.2f KB)\n", profilePath, float64(info.Size())/1024)
	fmt.Printf("View with: go tool pprof -http=:8080 %s\n", profilePath)
	fmt.Printf("Heap: Alloc=%d KB Sys=%d KB NumGC=%d HeapObjects=%d\n",
		m.Alloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects)
	fmt.Printf("=== End Analysis ===\n\n")
}
