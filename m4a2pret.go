// This file is part of m4a2pret.
//
// m4a2pret is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// m4a2pret is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with m4a2pret.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/m4a2pret/m4a2pret/extraction"
	"github.com/m4a2pret/m4a2pret/logger"
	"github.com/m4a2pret/m4a2pret/m4a"
	"github.com/m4a2pret/m4a2pret/modalflag"
	"github.com/m4a2pret/m4a2pret/pret"
	"github.com/m4a2pret/m4a2pret/rom"
	"github.com/m4a2pret/m4a2pret/romloader"
	"github.com/m4a2pret/m4a2pret/samples"
	"github.com/m4a2pret/m4a2pret/statsview"
	"github.com/m4a2pret/m4a2pret/version"
)

// exit values.
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
	exitInterrupt  = 30
)

// number of log entries shown after an error.
const errorLogTail = 10

func main() {
	// #ctrlc an extraction cannot be cancelled part way through. the output
	// directory should be discarded
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	done := make(chan int)
	go func() {
		done <- launch(os.Stdout, os.Args[1:])
	}()

	select {
	case <-intChan:
		fmt.Println("\r")
		os.Exit(exitInterrupt)
	case v := <-done:
		os.Exit(v)
	}
}

// launch runs the mode selected by the arguments and returns the exit value.
func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("EXTRACT", "INFO", "BASELINE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	switch md.Mode() {
	case "EXTRACT":
		err = extract(md)

	case "INFO":
		err = info(md)

	case "BASELINE":
		err = baseline(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		if logger.Len() > 0 {
			fmt.Fprintln(output, "* last log entries:")
			logger.Tail(output, errorLogTail)
		}
		return exitModeError
	}

	return exitOK
}

func extract(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp(fmt.Sprintf("converters: %s\n\nthe exec converter runs the -convertcmd template for every direct sound\nsample. {in} and {out} in the template are replaced by the filenames.", strings.Join(samples.ConverterNames, ", ")))

	first := md.AddInt("min", 1, "first song of the song table to extract (one based)")
	last := md.AddInt("max", m4a.MaxSongs, "last song of the song table to extract (inclusive)")
	table := md.AddHex("table", 0, "offset of the song table (required for unknown ROMs)")
	songs := md.AddInt("songs", 0, "last song number used in the pret tree")
	vgs := md.AddInt("vgs", 0, "last voicegroup number used in the pret tree")
	keysplits := md.AddInt("keysplits", 0, "last keysplit table number used in the pret tree")
	pretDir := md.AddString("pret", "", "take song, voicegroup and keysplit numbers from a pret tree")
	outDir := md.AddString("out", "", "output directory (default is a unique name in the current directory)")
	converter := md.AddString("converter", samples.ConverterWAV, "sample converter")
	convertCmd := md.AddString("convertcmd", "", "command template for the exec converter")
	log := md.AddBool("log", false, "echo log to stdout")
	verbose := md.AddBool("verbose", false, "log every decoded song, voicegroup and sample")
	graph := md.AddString("memviz", "", "write the pointer graph to a Graphviz file")
	stats := md.AddBool("statsview", false, "run the statsview server during extraction")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(md.Output)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		defer statsview.Launch(md.Output)()
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("ROM file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	conv, err := samples.NewConverter(*converter, *convertCmd)
	if err != nil {
		return err
	}

	cfg := extraction.NewConfig(md.GetArg(0))
	cfg.TableOffset = *table
	cfg.Min = *first
	cfg.Max = *last
	cfg.Baselines = m4a.Baselines{Songs: *songs, VoiceGroups: *vgs, Keysplits: *keysplits}
	cfg.PretDir = *pretDir
	cfg.OutputDir = *outDir
	cfg.Converter = conv
	cfg.Verbose = *verbose

	if *graph != "" {
		f, err := os.Create(*graph)
		if err != nil {
			return err
		}
		defer f.Close()
		cfg.Graph = f
	}

	// progress is only shown on a terminal and never when the log is being
	// echoed to the same output
	var pl *progressLine
	if !*log {
		pl = newProgressLine(md.Output)
		if pl != nil {
			cfg.Progress = pl.update
		}
	}

	rep, err := extraction.Run(cfg)
	if pl != nil {
		pl.end()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output, rep)
	if rep.Placeholders > 0 {
		fmt.Fprintf(md.Output, "%d instruments could not be decoded\n", rep.Placeholders)
	}
	if rep.Project != "" && !rep.ProjectMatch {
		fmt.Fprintf(md.Output, "ROM is not the one built by %s\n", rep.Project)
	}

	return nil
}

func info(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("ROM file required for %s mode", md)
	}

	ld := romloader.NewLoader(md.GetArg(0))
	if err := ld.Load(); err != nil {
		return err
	}
	r := rom.New(ld.Data)

	fmt.Fprintf(md.Output, "file:   %s\n", ld.Filename)
	fmt.Fprintf(md.Output, "size:   %d\n", r.Size())
	fmt.Fprintf(md.Output, "sha1:   %s\n", ld.Hash)

	ver, ok := romloader.Fingerprint(r)
	fmt.Fprintf(md.Output, "code:   %s\n", ver.Code)
	if !ok {
		fmt.Fprintln(md.Output, "game:   unknown")
		return nil
	}
	fmt.Fprintf(md.Output, "game:   %s\n", ver.Name)
	if ver.Project != "" {
		fmt.Fprintf(md.Output, "pret:   %s\n", ver.Project)
	}

	table, ok := ver.SongTable(r)
	if !ok {
		fmt.Fprintln(md.Output, "songs:  no song table found")
		return nil
	}
	fmt.Fprintf(md.Output, "table:  %#07x\n", table)
	fmt.Fprintf(md.Output, "songs:  %d\n", m4a.TableLength(r, table))

	return nil
}

func baseline(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("pret directory required for %s mode", md)
	}

	tr, err := pret.Inspect(md.GetArg(0))
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output, tr)
	if tr.SHA1 != "" {
		fmt.Fprintf(md.Output, "sha1: %s\n", tr.SHA1)
	}
	fmt.Fprintf(md.Output, "extract with: -songs %d -vgs %d -keysplits %d\n", tr.Songs, tr.VoiceGroups, tr.Keysplits)

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, ver)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
