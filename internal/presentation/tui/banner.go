package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` _____         _     ____                              `, "#38bdf8"},
	{`|_   _|__  ___| |_  |  _ \ _   _ _ __  _ __   ___ _ __ `, "#22d3ee"},
	{`  | |/ _ \/ __| __| | |_) | | | | '_ \| '_ \ / _ \ '__|`, "#2dd4bf"},
	{`  | |  __/\__ \ |_  |  _ <| |_| | | | | | | |  __/ |   `, "#34d399"},
	{`  |_|\___||___/\__| |_| \_\\__,_|_| |_|_| |_|\___|_|   `, "#4ade80"},
}

// PrintBanner writes the colored server banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
