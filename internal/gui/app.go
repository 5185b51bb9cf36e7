// Package gui is the desktop build editor. Every edit goes through the
// build console, so clicks and typed commands share one code path.
package gui

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/starbuild/internal/build"
	"github.com/appengine-ltd/starbuild/internal/console"
	"github.com/appengine-ltd/starbuild/internal/parser"
	uitheme "github.com/appengine-ltd/starbuild/internal/ui/theme"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	Console   *console.Console
	// CatalogLoad delivers the result of the background catalog load.
	CatalogLoad <-chan error
	// AssetDir holds optional fonts/ and ui/ skin textures.
	AssetDir string
	Scale    float32
	Logger   *slog.Logger
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

func (a *App) Run() error {
	return newEditorUI(a.cfg).Run()
}

type screen int

const (
	screenLoadout screen = iota
	screenSkills
	screenSummary
	screenCount
)

var screenNames = [screenCount]string{"Loadout", "Skills", "Captain & Crew"}

const (
	maxLog       = 300
	maxHistory   = 200
	maxInput     = 200
	candidateMax = 14
)

type editorUI struct {
	cfg    AppConfig
	logger *slog.Logger

	width  int32
	height int32
	quit   bool
	screen screen

	env    build.Environment
	cursor int
	scroll int

	input   string
	history []string
	histIdx int
	pending *parser.ClarifyQuestion

	log     []string
	status  string
	loading bool

	queue *commandQueue
	hover *skillTarget
}

func newEditorUI(cfg AppConfig) *editorUI {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &editorUI{
		cfg:     cfg,
		logger:  logger,
		width:   int32(1366 * cfg.Scale),
		height:  int32(800 * cfg.Scale),
		env:     build.Space,
		loading: cfg.CatalogLoad != nil,
		status:  "Type a command, or click a slot or skill. Tab switches screens.",
		queue:   newCommandQueue(32),
	}
}

func (ui *editorUI) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, "starbuild")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)
	initTypography(ui.cfg.AssetDir)
	uitheme.InitSkin(filepath.Join(ui.cfg.AssetDir, "ui"))

	for !ui.quit && !rl.WindowShouldClose() {
		ui.width = int32(rl.GetScreenWidth())
		ui.height = int32(rl.GetScreenHeight())

		ui.pollCatalog()
		ui.update()
		ui.processQueue()

		rl.BeginDrawing()
		rl.ClearBackground(uitheme.BG)
		ui.draw()
		rl.EndDrawing()
	}

	uitheme.UnloadSkin()
	shutdownTypography()
	rl.CloseWindow()
	return nil
}

func (ui *editorUI) pollCatalog() {
	if ui.cfg.CatalogLoad == nil || !ui.loading {
		return
	}
	select {
	case err, ok := <-ui.cfg.CatalogLoad:
		ui.catalogLoaded(err, ok)
	default:
	}
}

func (ui *editorUI) catalogLoaded(err error, ok bool) {
	ui.loading = false
	if ok && err != nil {
		ui.status = "Catalog unavailable: " + err.Error()
		ui.logger.Warn("catalog unavailable", "err", err)
		return
	}
	ui.status = fmt.Sprintf("Catalog loaded: %d items.", ui.cfg.Console.Session().Catalog().Len())
}

func (ui *editorUI) update() {
	if rl.IsKeyPressed(rl.KeyTab) {
		if shiftDown() {
			ui.screen = screen(wrapIndex(int(ui.screen)-1, int(screenCount)))
		} else {
			ui.screen = screen(wrapIndex(int(ui.screen)+1, int(screenCount)))
		}
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		ui.toggleEnv()
	}
	if CtrlPressedKey(rl.KeyS) {
		ui.exec("save")
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		ui.input = ""
		if ui.pending != nil {
			ui.pending = nil
			ui.status = "Cancelled."
		}
	}
	if rl.IsKeyPressed(rl.KeyPageUp) {
		ui.recall(-1)
	}
	if rl.IsKeyPressed(rl.KeyPageDown) {
		ui.recall(1)
	}

	ui.captureTextInput()
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && strings.TrimSpace(ui.input) != "" {
		ui.submitInput()
		return
	}

	switch ui.screen {
	case screenLoadout:
		ui.updateLoadout()
	case screenSkills:
		ui.updateSkills()
	}
}

func (ui *editorUI) captureTextInput() {
	if ctrlDown() {
		return
	}
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= 32 && ch <= 126 && len(ui.input) < maxInput {
			ui.input += string(rune(ch))
		}
	}
	if keyPressedOrRepeat(rl.KeyBackspace) && len(ui.input) > 0 {
		ui.input = ui.input[:len(ui.input)-1]
	}
}

func (ui *editorUI) recall(delta int) {
	if len(ui.history) == 0 {
		return
	}
	ui.histIdx = clampInt(ui.histIdx+delta, 0, len(ui.history))
	if ui.histIdx == len(ui.history) {
		ui.input = ""
		return
	}
	ui.input = ui.history[ui.histIdx]
}

// submitInput runs the command line. While a clarification is pending a
// bare number picks one of its options.
func (ui *editorUI) submitInput() {
	line := strings.TrimSpace(ui.input)
	ui.input = ""
	if line == "" {
		return
	}
	if ui.pending != nil {
		q := ui.pending
		ui.pending = nil
		if n, err := strconv.Atoi(line); err == nil {
			if n < 1 || n > len(q.Options) {
				ui.pending = q
				ui.status = fmt.Sprintf("Pick 1-%d, or Esc to cancel.", len(q.Options))
				return
			}
			line = parser.CommandString(q.Options[n-1])
		}
	}
	ui.history = append(ui.history, line)
	if len(ui.history) > maxHistory {
		ui.history = ui.history[len(ui.history)-maxHistory:]
	}
	ui.histIdx = len(ui.history)
	ui.exec(line)
}

// exec runs one console line and records the outcome in the log.
func (ui *editorUI) exec(line string) console.Result {
	res := ui.cfg.Console.Exec(line)
	ui.appendLog("> " + line)
	if q := res.Intent.Clarify; q != nil && len(q.Options) > 0 {
		ui.pending = q
		ui.appendLog(q.Prompt)
		for i, o := range q.Options {
			ui.appendLog(fmt.Sprintf("  %d. %s", i+1, parser.CommandString(o)))
		}
		ui.status = "Type a number to choose."
		return res
	}
	for _, l := range strings.Split(res.Text, "\n") {
		ui.appendLog(l)
	}
	if res.OK {
		ui.status = ""
		ui.followSection(res.Intent)
	} else {
		ui.status = firstLine(res.Text)
		ui.logger.Debug("command rejected", "line", line, "reason", ui.status)
	}
	if res.Quit {
		ui.quit = true
	}
	return res
}

// followSection switches screens to match what a command touched.
func (ui *editorUI) followSection(in parser.Intent) {
	switch in.Verb {
	case "skill", "unlock":
		ui.screen = screenSkills
	case "captain", "boff", "doff":
		ui.screen = screenSummary
	case "set", "copy", "paste":
		if len(in.Args) > 0 {
			ui.env = build.Environment(in.Args[0])
		}
		ui.screen = screenLoadout
	case "show":
		if len(in.Args) == 0 {
			return
		}
		switch in.Args[0] {
		case "space", "ground":
			ui.env = build.Environment(in.Args[0])
			ui.screen = screenLoadout
		case "skills":
			ui.screen = screenSkills
		case "captain", "boffs", "doffs":
			ui.screen = screenSummary
		}
	}
}

func (ui *editorUI) processQueue() {
	for line, ok := ui.queue.Dequeue(); ok; line, ok = ui.queue.Dequeue() {
		ui.exec(line)
	}
}

func (ui *editorUI) appendLog(message string) {
	line := strings.TrimRight(message, " ")
	if line == "" {
		return
	}
	ui.log = append(ui.log, line)
	if len(ui.log) > maxLog {
		ui.log = append([]string(nil), ui.log[len(ui.log)-maxLog:]...)
	}
}

func (ui *editorUI) toggleEnv() {
	if ui.env == build.Space {
		ui.env = build.Ground
	} else {
		ui.env = build.Space
	}
	ui.cursor, ui.scroll = 0, 0
}

func (ui *editorUI) rows() []slotRow {
	s := ui.cfg.Console.Session()
	b := s.Store().Build()
	return slotRows(&b, ui.env, s.Limits())
}

func (ui *editorUI) selectedRow() (slotRow, bool) {
	rows := ui.rows()
	if len(rows) == 0 {
		return slotRow{}, false
	}
	ui.cursor = clampInt(ui.cursor, 0, len(rows)-1)
	return rows[ui.cursor], true
}

func (ui *editorUI) moveCursor(delta int) {
	ui.cursor = wrapIndex(ui.cursor+delta, len(ui.rows()))
}

// prefillSet starts a "set" command for the selected slot on the input line.
func (ui *editorUI) prefillSet() {
	if r, ok := ui.selectedRow(); ok {
		ui.input = slotCommand("set", ui.env, r) + " "
	}
}

func (ui *editorUI) slotAction(verb string) {
	if r, ok := ui.selectedRow(); ok {
		ui.queue.EnqueueCommand(slotCommand(verb, ui.env, r))
	}
}

// candidates lists catalog items that fit the selected slot.
func (ui *editorUI) candidates() []string {
	r, ok := ui.selectedRow()
	if !ok {
		return nil
	}
	names := ui.cfg.Console.Session().Compat().Candidates(r.Category)
	if len(names) > candidateMax {
		names = names[:candidateMax]
	}
	return names
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (ui *editorUI) unsaved() bool {
	return ui.cfg.Console.Session().Store().IsModified(time.Time{})
}
