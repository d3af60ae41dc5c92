package cli

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/glitchcube"
	"github.com/SeamusWaldron/glitchcube/internal/cube"
	"github.com/SeamusWaldron/glitchcube/internal/recorder"
	"github.com/SeamusWaldron/glitchcube/internal/render"
	"github.com/SeamusWaldron/glitchcube/internal/snapshot"
	"github.com/SeamusWaldron/glitchcube/internal/sound"
	"github.com/SeamusWaldron/glitchcube/internal/storage"
)

var (
	playEventLog bool
	playNoRecord bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play in the terminal with mouse support.

Drag across stickers of one face to turn the layer under the drag. Drag off
the cube or use the arrow keys to orbit, scroll to zoom.

Keyboard shortcuts:
  z x c v   - X0+ X0- X2+ X2-
  a s d f   - Y0+ Y0- Y2+ Y2-
  q w e r   - Z0+ Z0- Z2+ Z2-
  tab       - Switch camera preset
  p         - Pause / resume
  n         - New game
  m         - Mute / unmute
  Esc       - Quit`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playEventLog, "log", false, "Write a JSONL event log to ~/.glitchcube/logs")
	playCmd.Flags().BoolVar(&playNoRecord, "no-record", false, "Do not store games in the database")
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const (
	headerLines = 2
	footerLines = 1

	frameInterval = time.Second / 30
	// Terminals send no key release; an arrow counts as held until it
	// stops repeating for this long.
	keyHold  = 150 * time.Millisecond
	winDelay = 2 * time.Second

	// Half-block pixels are coarse; a few of them already cross a cell.
	terminalDragThreshold = 3
)

var terminalBackground = color.RGBA{R: 0x14, G: 0x14, B: 0x1a, A: 0xff}

var arrowKeys = map[string]glitchcube.Key{
	"left":  glitchcube.KeyLeft,
	"right": glitchcube.KeyRight,
	"up":    glitchcube.KeyUp,
	"down":  glitchcube.KeyDown,
}

// Messages
type frameMsg time.Time
type keyReleaseMsg struct{ key glitchcube.Key }

type playModel struct {
	game   *glitchcube.Game
	prefs  *recorder.StateFile
	player *sound.Player

	canvas    *render.Canvas
	width     int
	height    int
	lastFrame time.Time
	arrowAt   map[glitchcube.Key]time.Time

	wonAt    time.Time
	wonMoves int

	err      error
	quitting bool
}

func newPlayModel(g *glitchcube.Game, prefs *recorder.StateFile, player *sound.Player) *playModel {
	m := &playModel{
		game:    g,
		prefs:   prefs,
		player:  player,
		arrowAt: make(map[glitchcube.Key]time.Time),
	}
	m.resize(80, 24)
	g.OnMoveStart(func(cube.Move) { player.PlayCue() })
	g.OnSolved(func(moves int) {
		m.wonAt = time.Now()
		m.wonMoves = moves
	})
	return m
}

func (m *playModel) Init() tea.Cmd {
	return frameCmd()
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// resize fits the canvas between the header and footer. Each terminal row
// holds two pixels.
func (m *playModel) resize(w, h int) {
	rows := h - headerLines - footerLines
	if rows < 1 {
		rows = 1
	}
	if w < 1 {
		w = 1
	}
	m.width, m.height = w, h
	m.canvas = render.ForTerminal(w, rows, terminalBackground)
	m.game.SetViewport(float64(w), float64(rows*2))
}

// pixel maps a terminal cell to the centre of its upper pixel.
func pixel(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y-headerLines)*2 + 0.5
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case keyReleaseMsg:
		if time.Since(m.arrowAt[msg.key]) >= keyHold {
			m.game.KeyUp(msg.key)
		}

	case frameMsg:
		now := time.Time(msg)
		elapsed := frameInterval
		if !m.lastFrame.IsZero() {
			elapsed = now.Sub(m.lastFrame)
		}
		m.lastFrame = now

		if !m.wonAt.IsZero() && now.Sub(m.wonAt) >= winDelay {
			m.wonAt = time.Time{}
			m.game.Reset()
		}
		m.game.Tick(elapsed)
		return m, frameCmd()
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "left", "right", "up", "down":
		k := arrowKeys[key]
		m.game.KeyDown(k)
		m.arrowAt[k] = time.Now()
		return m, tea.Tick(keyHold, func(time.Time) tea.Msg {
			return keyReleaseMsg{key: k}
		})

	case "tab":
		next := "iso"
		if m.game.CameraPreset() == "iso" {
			next = "default"
		}
		m.game.SetCameraPreset(next)
		m.savePref(m.prefs.SetCameraPreset(next))

	case "p":
		if m.wonAt.IsZero() {
			m.game.SetPaused(!m.game.Paused())
		}

	case "n":
		m.wonAt = time.Time{}
		m.game.Reset()

	case "m":
		muted := !m.player.Muted()
		m.player.SetMuted(muted)
		m.savePref(m.prefs.SetMuted(muted))

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			m.game.TurnKey(msg.Runes[0])
		}
	}
	return m, nil
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	x, y := pixel(msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.game.Wheel(-1)
		return
	case tea.MouseButtonWheelDown:
		m.game.Wheel(1)
		return
	case tea.MouseButtonRight:
		if msg.Action == tea.MouseActionPress {
			m.game.PointerOut()
		}
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.game.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		m.game.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.game.PointerUp(x, y)
	}
}

func (m *playModel) savePref(err error) {
	if err != nil {
		m.err = err
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("glitchcube"))
	b.WriteString("  ")
	b.WriteString(m.status())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")

	if err := snapshot.Terminal(m.canvas, m.game.Scene()); err != nil {
		m.err = err
	}
	b.WriteString(m.canvas.String())
	b.WriteString("\n")

	mute := "m mute"
	if m.player.Muted() {
		mute = "m unmute"
	}
	b.WriteString(helpStyle.Render("zxcv asdf qwer turn  arrows orbit  tab camera  p pause  n new  " + mute + "  esc quit"))
	return b.String()
}

func (m *playModel) status() string {
	switch {
	case !m.wonAt.IsZero():
		return wonStyle.Render(fmt.Sprintf("Solved in %d moves!", m.wonMoves))
	case m.game.Paused():
		return pausedStyle.Render("PAUSED")
	}
	elapsed := time.Since(m.game.StartedAt()).Truncate(100 * time.Millisecond)
	return statusStyle.Render(fmt.Sprintf("Moves: %d  Time: %s", m.game.MoveCount(), formatDuration(elapsed)))
}

func runPlay(cmd *cobra.Command, args []string) error {
	prefs, err := recorder.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	// The alternate screen owns stderr; verbose logs go to a file.
	logger := slog.New(slog.DiscardHandler)
	if verbose {
		dir, err := storage.DefaultDir()
		if err != nil {
			return err
		}
		f, err := os.OpenFile(filepath.Join(dir, "play.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = newLogger(f)
	}
	glitchcube.SetLogger(logger)

	opts := append(gameOptions(cmd, prefs), glitchcube.WithDragThreshold(terminalDragThreshold))
	game := glitchcube.New(opts...)

	player := sound.NewPlayer(logger)
	if err := player.Init(); err != nil {
		logger.Warn("sound disabled", "error", err)
	}
	defer player.Close()
	player.SetMuted(prefs.State().Muted)

	var session *recorder.Session
	if !playNoRecord {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		var eventLog *recorder.EventLog
		if playEventLog {
			dir, err := storage.DefaultDir()
			if err != nil {
				return err
			}
			eventLog, err = recorder.OpenEventLog(filepath.Join(dir, "logs"))
			if err != nil {
				return err
			}
			defer eventLog.Close()
		}

		session = recorder.NewSession(db, prefs, eventLog, logger)
		if err := session.Attach(game); err != nil {
			return fmt.Errorf("failed to start recording: %w", err)
		}
	}

	model := newPlayModel(game, prefs, player)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if session != nil {
		if err := session.Close(); err != nil {
			return err
		}
		fmt.Printf("Last game: %s (%d moves)\n", shortID(session.GameID()), session.MoveCount())
	}
	return nil
}
