//go:build js
// +build js

// Command atmos-web runs the atmosphere on a page canvas. Build it with
// gopherjs and serve it next to a page holding <canvas id="atmos">.
package main

import (
	"log"

	"github.com/gopherjs/gopherjs/js"

	"atmos/atmosphere"
	"atmos/phase"
	"atmos/sink/canvas"
)

func main() {
	sink, err := canvas.Lookup("atmos")
	if err != nil {
		// The page still works without the atmosphere.
		log.Printf("Atmosphere disabled: %v", err)
		return
	}

	pc := phase.NewController(phase.Summer)
	ctrl := atmosphere.New(atmosphere.WithMode(pc.Mode()))
	pc.Subscribe(ctrl.Follow)
	// The hero dive ticks on the same animation frames, so one stop ends both.
	stop := sink.Run(ctrl, pc.Update)

	js.Global.Set("Atmos", map[string]interface{}{
		"explore": func() {
			if err := pc.Explore(); err != nil {
				log.Printf("Ignoring explore: %v", err)
			}
		},
		"season": func(name string) {
			if s, ok := phase.ParseSeason(name); ok {
				pc.SetSeason(s)
			}
		},
		"stop": stop,
	})
}
