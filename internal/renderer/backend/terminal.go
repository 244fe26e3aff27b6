package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/duet/internal/renderer/core"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(tcell.StyleDefault)
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	if cell.IsContinuation() {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Style)
	width, height := t.screen.Size()

	for y := max(rect.Top, 0); y < rect.Bottom && y < height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < width; x++ {
			t.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// PollEvent blocks on the tcell event queue. It returns EventNone once the
// screen has been finalized.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

func (t *Terminal) PostEvent(event Event) {
	switch event.Type {
	case EventKey:
		key, r, mod := convertToTcellKey(event)
		_ = t.screen.PostEvent(tcell.NewEventKey(key, r, mod)) // best-effort; queue may be full
	case EventInterrupt:
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if !s.Foreground.IsDefault() {
		style = style.Foreground(tcell.PaletteColor(int(s.Foreground.Index)))
	}
	if !s.Background.IsDefault() {
		style = style.Background(tcell.PaletteColor(int(s.Background.Index)))
	}

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}

	return style
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKeyEvent(e.Key(), e.Rune(), e.Modifiers())

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}

// convertKeyEvent maps a tcell key to our Key. Control letters become runes
// with ModCtrl so the session can treat Ctrl+<letter> uniformly.
func convertKeyEvent(k tcell.Key, r rune, m tcell.ModMask) Event {
	mod := convertMod(m)

	switch k {
	case tcell.KeyRune:
		return RuneEvent(r, mod)
	case tcell.KeyEscape:
		return KeyEvent(KeyEscape, mod)
	case tcell.KeyEnter:
		return KeyEvent(KeyEnter, mod&^ModCtrl)
	case tcell.KeyTab:
		return KeyEvent(KeyTab, mod&^ModCtrl)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent(KeyBackspace, mod&^ModCtrl)
	case tcell.KeyDelete:
		return KeyEvent(KeyDelete, mod)
	case tcell.KeyHome:
		return KeyEvent(KeyHome, mod)
	case tcell.KeyEnd:
		return KeyEvent(KeyEnd, mod)
	case tcell.KeyPgUp:
		return KeyEvent(KeyPageUp, mod)
	case tcell.KeyPgDn:
		return KeyEvent(KeyPageDown, mod)
	case tcell.KeyUp:
		return KeyEvent(KeyUp, mod)
	case tcell.KeyDown:
		return KeyEvent(KeyDown, mod)
	case tcell.KeyLeft:
		return KeyEvent(KeyLeft, mod)
	case tcell.KeyRight:
		return KeyEvent(KeyRight, mod)
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return RuneEvent('a'+rune(k-tcell.KeyCtrlA), mod|ModCtrl)
	}
	return Event{Type: EventKey, Key: KeyNone, Mod: mod}
}

// convertToTcellKey converts our key event to tcell's representation.
func convertToTcellKey(ev Event) (tcell.Key, rune, tcell.ModMask) {
	mod := convertToTcellMod(ev.Mod)

	switch ev.Key {
	case KeyRune:
		if ev.Mod.Has(ModCtrl) && ev.Rune >= 'a' && ev.Rune <= 'z' {
			return tcell.KeyCtrlA + tcell.Key(ev.Rune-'a'), ev.Rune, mod
		}
		return tcell.KeyRune, ev.Rune, mod
	case KeyEscape:
		return tcell.KeyEscape, 0, mod
	case KeyEnter:
		return tcell.KeyEnter, 0, mod
	case KeyTab:
		return tcell.KeyTab, 0, mod
	case KeyBackspace:
		return tcell.KeyBackspace2, 0, mod
	case KeyDelete:
		return tcell.KeyDelete, 0, mod
	case KeyHome:
		return tcell.KeyHome, 0, mod
	case KeyEnd:
		return tcell.KeyEnd, 0, mod
	case KeyPageUp:
		return tcell.KeyPgUp, 0, mod
	case KeyPageDown:
		return tcell.KeyPgDn, 0, mod
	case KeyUp:
		return tcell.KeyUp, 0, mod
	case KeyDown:
		return tcell.KeyDown, 0, mod
	case KeyLeft:
		return tcell.KeyLeft, 0, mod
	case KeyRight:
		return tcell.KeyRight, 0, mod
	default:
		return tcell.KeyRune, ev.Rune, mod
	}
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		result |= ModAlt
	}
	return result
}

// convertToTcellMod converts our ModMask to tcell.ModMask.
func convertToTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	if m&ModShift != 0 {
		result |= tcell.ModShift
	}
	if m&ModCtrl != 0 {
		result |= tcell.ModCtrl
	}
	if m&ModAlt != 0 {
		result |= tcell.ModAlt
	}
	return result
}
