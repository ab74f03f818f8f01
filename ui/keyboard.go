package ui

import (
	"sync"

	"github.com/eiannone/keyboard"
)

// Runes emitted for special keys.
const (
	KeyEsc   rune = 27
	KeyLeft  rune = '['
	KeyRight rune = ']'
)

// One reader goroutine feeds a shared buffered channel, so the terminal is
// opened at most once per process.
var (
	keyCh     chan rune
	startOnce sync.Once
)

// StartKeyEvents returns a channel of single key presses read without Enter.
// Arrow keys arrive as KeyLeft/KeyRight and Escape as KeyEsc. When the
// keyboard cannot be opened the channel never emits.
func StartKeyEvents() <-chan rune {
	startOnce.Do(func() {
		keyCh = make(chan rune, 64)
		if err := keyboard.Open(); err != nil {
			return
		}
		go func() {
			defer keyboard.Close()
			for {
				char, key, err := keyboard.GetKey()
				if err != nil {
					close(keyCh)
					return
				}
				r, ok := translateKey(char, key)
				if !ok {
					continue
				}
				// drop the key rather than block the reader
				select {
				case keyCh <- r:
				default:
				}
			}
		}()
	})
	return keyCh
}

func translateKey(char rune, key keyboard.Key) (rune, bool) {
	switch key {
	case 0:
		return char, true
	case keyboard.KeyEsc:
		return KeyEsc, true
	case keyboard.KeyArrowLeft:
		return KeyLeft, true
	case keyboard.KeyArrowRight:
		return KeyRight, true
	case keyboard.KeySpace:
		return ' ', true
	}
	return 0, false
}

// DrainKeys discards any key presses already buffered.
func DrainKeys() {
	ch := StartKeyEvents()
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
