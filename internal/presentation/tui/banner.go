package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the PermitPath banner for interactive sessions.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Subtle teal-to-blue gradient.
	s1 := termenv.String(` ____                     _ _   ____       _   _     `).Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(`|  _ \ ___ _ __ _ __ ___ (_) |_|  _ \ __ _| |_| |__  `).Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(`| |_) / _ \ '__| '_ ` + "`" + ` _ \| | __| |_) / _` + "`" + ` | __| '_ \ `).Foreground(p.Color("#38bdf8"))
	s4 := termenv.String(`|  __/  __/ |  | | | | | | | |_|  __/ (_| | |_| | | |`).Foreground(p.Color("#60a5fa"))
	s5 := termenv.String(`|_|   \___|_|  |_| |_| |_|_|\__|_|   \__,_|\__|_| |_|`).Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
	fmt.Println(termenv.String("  "+strings.TrimSpace(version)).Faint())
	fmt.Println()
}

// ProgressBar renders a simple percentage bar for the current walkthrough.
func ProgressBar(percent int, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := width * percent / 100
	p := termenv.ColorProfile()
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", termenv.String(bar).Foreground(p.Color("#38bdf8")), percent)
}
