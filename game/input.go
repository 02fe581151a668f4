package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"atmos/phase"
)

// CommandKind identifies a user action
type CommandKind int

const (
	CommandExplore     CommandKind = iota // leave the landing screen
	CommandCycleSeason                    // advance to the next season
	CommandSetSeason                      // jump to Command.Season
	CommandToggleDebug                    // show or hide the layer overlay
)

// Command is one user action decoded from input
type Command struct {
	Kind   CommandKind
	Season phase.Season
}

// Input turns key and mouse presses into commands
type Input struct {
	keys []ebiten.Key
	cmds []Command
}

// NewInput creates a new input decoder
func NewInput() *Input {
	return &Input{
		keys: make([]ebiten.Key, 0, 8),
		cmds: make([]Command, 0, 4),
	}
}

// Poll returns the commands triggered since the previous frame. The slice is
// reused by the next call.
func (in *Input) Poll() []Command {
	in.cmds = in.cmds[:0]
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		if cmd, ok := keyCommand(k); ok {
			in.cmds = append(in.cmds, cmd)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.cmds = append(in.cmds, Command{Kind: CommandExplore})
	}
	return in.cmds
}

// keyCommand maps a key to its command
func keyCommand(k ebiten.Key) (Command, bool) {
	switch k {
	case ebiten.KeyEnter, ebiten.KeySpace:
		return Command{Kind: CommandExplore}, true
	case ebiten.KeyS, ebiten.KeyTab:
		return Command{Kind: CommandCycleSeason}, true
	case ebiten.KeyDigit1:
		return Command{Kind: CommandSetSeason, Season: phase.Spring}, true
	case ebiten.KeyDigit2:
		return Command{Kind: CommandSetSeason, Season: phase.Summer}, true
	case ebiten.KeyDigit3:
		return Command{Kind: CommandSetSeason, Season: phase.Autumn}, true
	case ebiten.KeyDigit4:
		return Command{Kind: CommandSetSeason, Season: phase.Winter}, true
	case ebiten.KeyF1:
		return Command{Kind: CommandToggleDebug}, true
	}
	return Command{}, false
}
