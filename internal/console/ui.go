// Package console draws a session on a terminal and turns mouse clicks into intents.
package console

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	boardX    = 1
	boardY    = 2
	cellWidth = 3
	panelX    = 16
	sortY     = 2
	movesY    = 4
	hint      = "click to play, q to quit"
)

type intent int

const (
	intentPlay intent = iota
	intentJump
	intentOrder
)

// region - clickable area remembered from the last draw.
type region struct {
	x, y, width int
	intent      intent
	value       int
}

func (that region) contains(x, y int) bool {
	return y == that.y && x >= that.x && x < that.x+that.width
}

var (
	styleDefault = tcell.StyleDefault
	styleX       = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleO       = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWinning = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack).Bold(true)
	styleButton  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleCurrent = tcell.StyleDefault.Bold(true)
	styleGrid    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type UI struct {
	logger  *slog.Logger
	screen  tcell.Screen
	game    *tictactoe.Game
	opts    presenter.Options
	regions []region
	pressed bool
}

func New(logger *slog.Logger, screen tcell.Screen, game *tictactoe.Game, opts presenter.Options) *UI {
	return &UI{
		logger: logger.With("component", "console"),
		screen: screen,
		game:   game,
		opts:   opts,
	}
}

// Run - draws and handles events until the player quits.
func (that *UI) Run() {
	that.screen.EnableMouse()
	that.Draw()

	for {
		ev := that.screen.PollEvent()
		if ev == nil {
			return
		}

		if quit := that.HandleEvent(ev); quit {
			return
		}
	}
}

// HandleEvent - applies one event and redraws. Reports whether the player asked to quit.
func (that *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		that.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return true
		}
	case *tcell.EventMouse:
		// act on the press only, not on drag or release
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !that.pressed {
			x, y := ev.Position()
			that.click(x, y)
		}
		that.pressed = down
	}

	that.Draw()

	return false
}

func (that *UI) click(x, y int) {
	for _, r := range that.regions {
		if !r.contains(x, y) {
			continue
		}

		log := that.logger.With("method", "click", "x", x, "y", y)

		switch r.intent {
		case intentPlay:
			if !that.game.Play(r.value) {
				log.Debug("play ignored", "cell", r.value)
			}
		case intentJump:
			if err := that.game.JumpTo(r.value); err != nil {
				log.Error("failed to jump", "error", err)
			}
		case intentOrder:
			that.game.ToggleOrder()
		}

		return
	}
}

// Draw - renders the current projection and records the clickable regions.
func (that *UI) Draw() {
	view := presenter.Project(that.game, that.opts)

	that.screen.Clear()
	that.regions = that.regions[:0]

	drawText(that.screen, boardX, 0, styleCurrent, view.Status)
	that.drawBoard(view)
	that.drawPanel(view)

	_, height := that.screen.Size()
	drawText(that.screen, boardX, height-1, styleGrid, hint)

	that.screen.Show()
}

func (that *UI) drawBoard(view presenter.View) {
	for _, cell := range view.Cells {
		row, col := cell.Index/3, cell.Index%3
		x, y := boardX+col*(cellWidth+1), boardY+row*2

		style := markStyle(cell.Mark)
		if cell.Winning {
			style = styleWinning
		}

		mark := " "
		if cell.Mark != entity.EmptyCell {
			mark = string(cell.Mark)
		}

		drawText(that.screen, x, y, style, " "+mark+" ")
		that.regions = append(that.regions, region{x: x, y: y, width: cellWidth, intent: intentPlay, value: cell.Index})

		if col < 2 {
			drawText(that.screen, x+cellWidth, y, styleGrid, "|")
		}

		if row < 2 && col == 0 {
			drawText(that.screen, boardX, y+1, styleGrid, "---+---+---")
		}
	}
}

func (that *UI) drawPanel(view presenter.View) {
	sortButton := "[" + view.SortLabel + "]"
	drawText(that.screen, panelX, sortY, styleButton, sortButton)
	that.regions = append(that.regions, region{x: panelX, y: sortY, width: len(sortButton), intent: intentOrder})

	for i, move := range view.Moves {
		y := movesY + i

		if move.Current {
			drawText(that.screen, panelX, y, styleCurrent, " "+move.Label)
			continue
		}

		button := "[" + move.Label + "]"
		drawText(that.screen, panelX, y, styleButton, button)
		that.regions = append(that.regions, region{x: panelX, y: y, width: len(button), intent: intentJump, value: move.Move})
	}
}

func markStyle(mark entity.Mark) tcell.Style {
	switch mark {
	case entity.PlayerX:
		return styleX
	case entity.PlayerO:
		return styleO
	default:
		return styleDefault
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
