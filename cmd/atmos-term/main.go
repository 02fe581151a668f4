// Command atmos-term previews the atmosphere in the terminal.
//
// Keys: enter explores, s cycles the season, 1-4 pick one, q or esc quits.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"atmos/atmosphere"
	"atmos/phase"
	"atmos/sink/term"
)

func main() {
	seasonName := flag.String("season", "winter", "starting season")
	fps := flag.Int("fps", 30, "ticks per second")
	logPath := flag.String("log", "", "append log output to this file while the screen is open (default discards it)")
	flag.Parse()

	season, ok := phase.ParseSeason(*seasonName)
	if !ok {
		log.Fatalf("Unknown season %q", *seasonName)
	}
	if *fps <= 0 {
		log.Fatalf("-fps must be positive, got %d", *fps)
	}

	sink, err := term.Open()
	if err != nil {
		log.Fatalf("Atmosphere disabled: %v", err)
	}
	defer sink.Close()
	restoreLog, err := redirectLog(*logPath)
	if err != nil {
		sink.Close()
		log.Fatalf("Atmosphere disabled: %v", err)
	}
	defer restoreLog()
	screen := sink.Screen()

	pc := phase.NewController(season)
	ctrl := atmosphere.New(atmosphere.WithMode(pc.Mode()))
	pc.Subscribe(ctrl.Follow)
	ctrl.Resize(term.PixelSize(screen.Size()))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := ctrl.Start(ctx, sink, time.Second/time.Duration(*fps)); err != nil {
		log.Printf("Atmosphere disabled: %v", err)
		return
	}
	defer ctrl.Stop()

	// The hero dive runs on its own ticker; the atmosphere only follows.
	go func() {
		t := time.NewTicker(atmosphere.DefaultInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				pc.Update()
			}
		}
	}()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				ctrl.Resize(term.PixelSize(screen.Size()))
			case *tcell.EventKey:
				if !handleKey(ev, pc) {
					return
				}
			}
		}
	}
}

// handleKey applies a key press and reports whether to keep running.
func handleKey(ev *tcell.EventKey, pc *phase.Controller) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		if err := pc.Explore(); err != nil {
			log.Printf("Ignoring explore: %v", err)
		}
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case 's':
		pc.CycleSeason()
	case '1', '2', '3', '4':
		pc.SetSeason(phase.Seasons()[ev.Rune()-'1'])
	}
	return true
}
