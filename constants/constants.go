package constants

import (
	"os"
	"strconv"
)

func GetOutDir() string {
	path := os.Getenv("GABC2LY_OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetAddr() string {
	addr := os.Getenv("GABC2LY_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetTempo is the quarter-note tempo used by the playback block and by
// rendered MIDI files.
func GetTempo() int {
	tempo, err := strconv.Atoi(os.Getenv("GABC2LY_TEMPO"))
	if err != nil || tempo <= 0 {
		return DefaultTempo
	}
	return tempo
}

const DefaultTempo = 170

const LilypondVersion = "2.22.2"

const LilypondLanguage = "english"
