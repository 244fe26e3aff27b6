// Package config provides the editor's settings.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment (DUET_*)    │
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/duet/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The config file is TOML unless its name ends in .yaml or .yml.
//
// # Basic Usage
//
//	cfg := config.New(config.WithPath(path))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//
//	editor := cfg.Editor()
//	fmt.Println(editor.TabWidth)
//
// # Configuration Files
//
//	# ~/.config/duet/config.toml
//	[editor]
//	lineNumbers = true
//	tabWidth = 4
//	expandTabs = false
//	watchFile = true
//
//	[ui]
//	showHelpBar = true
//
//	[logging]
//	level = "info"
//	file = "/tmp/duet.log"
//
// # Environment
//
// DUET_EDITOR_TAB_WIDTH=2 sets editor.tabWidth. The shortcuts DUET_LOG_LEVEL,
// DUET_LOG_FILE, DUET_LINE_NUMBERS, DUET_TAB_WIDTH and DUET_EXPAND_TABS are
// also recognized.
package config
