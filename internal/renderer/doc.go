// Package renderer paints the editor screen.
//
// The screen is split into four bands:
//
//	┌─────────────────────────────────────────┐
//	│ title bar: name, version, file          │  row 0
//	├─────────────────────────────────────────┤
//	│ text area (optional line-number gutter) │  rows 1 .. H-3
//	├─────────────────────────────────────────┤
//	│ status bar or active prompt             │  row H-2
//	│ help bar                                │  row H-1
//	└─────────────────────────────────────────┘
//
// When the help bar is hidden the text area grows by one row.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.Options{ShowLineNumbers: true, ShowHelpBar: true})
//	r.Render(buf)
//
// The renderer reads the document through the View interface and never
// changes it. Scroll offsets are owned by the buffer; the renderer draws
// whatever window the buffer's offsets describe. Layout().TextSize() is the
// size the session passes to buffer navigation so both agree on what is
// visible.
package renderer
