// Package options contains the program options.
package options

// Flags contains behavior options.
type Flags struct {
	ProgramType string `flag:"program" usage:"program type: chip8, eti660"`
	IPS         int    `flag:"ips" usage:"instructions per second to execute"`
	Debug       bool   `flag:"debug" usage:"enable debug logging"`
	Quiet       bool   `flag:"q" usage:"quiet mode"`
	Version     bool   `flag:"version" usage:"print version information"`
}

// Program options of the emulator.
type Program struct {
	Input string // ROM file to run

	Flags
}
