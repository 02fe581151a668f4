package game

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"atmos/atmosphere"
	"atmos/phase"
	"atmos/preset"
	"atmos/sink/ebitensink"
)

// ticksPerSecond converts wall time to nominal particle frames.
const ticksPerSecond = 60.0

// Game hosts the landing page, the seasonal map backdrop and the atmosphere
// on top of them.
type Game struct {
	config   Config
	phase    *phase.Controller
	atmos    *atmosphere.Controller
	sink     *ebitensink.Sink
	layer    *ebiten.Image
	renderer *Renderer
	input    *Input

	// Current layout size
	width, height int

	// FPS tracking
	fps              float64
	fpsUpdateCounter int
	fpsUpdateTimer   float64

	// Performance profiling, nil when disabled
	profiler *Profiler

	// FPS drop detection
	lastFPSDropTime time.Time
	fpsDropCooldown time.Duration

	// Game start time to ignore FPS drops during startup
	gameStartTime time.Time

	// Last update time for delta time calculation
	lastUpdateTime time.Time
}

// NewGame creates a new game instance. A broken preset script is logged and
// the built-in presets are used instead.
func NewGame(config Config) *Game {
	presets := preset.Default()
	if config.PresetPath != "" {
		loaded, err := presets.LoadScript(config.PresetPath)
		if err != nil {
			log.Printf("Failed to load presets, using defaults: %v", err)
		} else {
			log.Printf("Loaded presets from %s", config.PresetPath)
			presets = loaded
		}
	}

	pc := phase.NewController(config.Season)
	opts := []atmosphere.Option{
		atmosphere.WithPresets(presets),
		atmosphere.WithMode(pc.Mode()),
		atmosphere.WithWind(config.Wind),
	}
	if config.Seed != 0 {
		opts = append(opts, atmosphere.WithSeed(config.Seed))
	}
	atmos := atmosphere.New(opts...)
	pc.Subscribe(atmos.Follow)

	g := &Game{
		config:          config,
		phase:           pc,
		atmos:           atmos,
		sink:            ebitensink.New(),
		renderer:        NewRenderer(),
		input:           NewInput(),
		fps:             ticksPerSecond,
		fpsDropCooldown: 10 * time.Second,
		gameStartTime:   time.Now(),
		lastUpdateTime:  time.Now(),
	}
	GetDebugState().ShowLayers = config.Debug

	if config.ProfileOnFPSDrop {
		p, err := NewProfiler(config.ProfilesDir)
		if err != nil {
			log.Printf("Profiling disabled: %v", err)
		} else {
			g.profiler = p
		}
	}
	return g
}

// Phase returns the phase controller driving the scene
func (g *Game) Phase() *phase.Controller { return g.phase }

// Atmosphere returns the particle controller
func (g *Game) Atmosphere() *atmosphere.Controller { return g.atmos }

// Handle applies one user command
func (g *Game) Handle(cmd Command) {
	switch cmd.Kind {
	case CommandExplore:
		if err := g.phase.Explore(); err != nil {
			log.Printf("Ignoring explore: %v", err)
		}
	case CommandCycleSeason:
		s := g.phase.CycleSeason()
		log.Printf("Season: %s", s)
	case CommandSetSeason:
		g.phase.SetSeason(cmd.Season)
	case CommandToggleDebug:
		d := GetDebugState()
		d.ShowLayers = !d.ShowLayers
	}
}

func (g *Game) Update() error {
	// Calculate delta time
	now := time.Now()
	deltaTime := now.Sub(g.lastUpdateTime).Seconds()
	g.lastUpdateTime = now

	// Clamp delta time to prevent large jumps
	if deltaTime > 0.1 {
		deltaTime = 0.1
	}

	for _, cmd := range g.input.Poll() {
		g.Handle(cmd)
	}

	g.trackFPS(deltaTime)

	g.phase.Update()
	g.atmos.Advance(deltaTime * ticksPerSecond)
	return nil
}

// trackFPS updates the FPS estimate every half second and captures a profile
// when it sags.
func (g *Game) trackFPS(deltaTime float64) {
	g.fpsUpdateTimer += deltaTime
	g.fpsUpdateCounter++
	if g.fpsUpdateTimer < 0.5 {
		return
	}
	g.fps = float64(g.fpsUpdateCounter) / g.fpsUpdateTimer
	g.fpsUpdateCounter = 0
	g.fpsUpdateTimer = 0.0

	// Skip the first seconds after launch while sprites are baked
	if g.profiler == nil || g.fps >= g.config.FPSDropThreshold ||
		time.Since(g.gameStartTime) < 3*time.Second ||
		time.Since(g.lastFPSDropTime) < g.fpsDropCooldown {
		return
	}
	g.lastFPSDropTime = time.Now()

	particles := 0
	for _, s := range g.atmos.Stats() {
		particles += s.Count
	}
	reason := fmt.Sprintf("fps%.0f-%s-particles%d", g.fps, g.phase.Mode().Season, particles)
	fmt.Printf("FPS drop detected (%.0f FPS). Saving performance profile...\n", g.fps)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("GC stats: NumGC=%d, PauseTotal=%v, HeapAlloc=%d KB\n",
		m.NumGC, time.Duration(m.PauseTotalNs), m.HeapAlloc/1024)

	if err := g.profiler.CaptureProfile(reason); err != nil {
		fmt.Printf("Failed to capture profile: %v\n", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	mode := g.phase.Mode()
	scale, alpha := g.phase.Hero()
	g.renderer.DrawBackdrop(screen, mode, scale, alpha)

	if g.width > 0 && g.height > 0 {
		if g.layer == nil || g.layer.Bounds().Dx() != g.width || g.layer.Bounds().Dy() != g.height {
			if g.layer != nil {
				g.layer.Deallocate()
			}
			g.layer = ebiten.NewImage(g.width, g.height)
		}
		g.sink.SetTarget(g.layer)
		g.atmos.Render(g.sink)
		screen.DrawImage(g.layer, nil)
	}

	if GetDebugState().ShowLayers {
		g.renderer.DrawDebug(screen, mode, g.atmos.Stats(), g.fps, g.profiler.IsProfiling())
	}
}

// Layout follows the window size and reports every change to the atmosphere.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.atmos.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
