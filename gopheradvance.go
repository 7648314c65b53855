// This file is part of Gopheradvance.
//
// Gopheradvance is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopheradvance is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopheradvance.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jetsetilly/gopheradvance/cartridgeloader"
	"github.com/jetsetilly/gopheradvance/debugger"
	"github.com/jetsetilly/gopheradvance/debugger/terminal"
	"github.com/jetsetilly/gopheradvance/debugger/terminal/colorterm"
	"github.com/jetsetilly/gopheradvance/debugger/terminal/plainterm"
	"github.com/jetsetilly/gopheradvance/environment"
	"github.com/jetsetilly/gopheradvance/hardware"
	"github.com/jetsetilly/gopheradvance/hardware/preferences"
	"github.com/jetsetilly/gopheradvance/modalflag"
	"github.com/jetsetilly/gopheradvance/performance"
	"github.com/jetsetilly/gopheradvance/performance/limiter"
	"github.com/jetsetilly/gopheradvance/prefs"
	"github.com/jetsetilly/gopheradvance/statsview"
	"github.com/jetsetilly/gopheradvance/trace"
	"github.com/jetsetilly/gopheradvance/version"
	"github.com/jetsetilly/gopheradvance/wavwriter"
	"golang.org/x/term"
)

const defaultInitScript = "debuggerInit"

// the time allowed for the frame rate to settle in PERFORMANCE mode
const performanceLeadtime = 2 * time.Second

func main() {
	os.Exit(launch(os.Stdout, os.Args[1:]))
}

// launch the mode selected by the arguments. returns the value to use with
// os.Exit().
func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "INFO", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(md, output)

	case "DEBUG":
		err = debug(md, output)

	case "INFO":
		err = info(md, output)

	case "PERFORMANCE":
		err = perform(md, output)

	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return 20
	}

	return 0
}

// newEnvironment creates the environment for the main emulation. preferences
// are loaded from the user's configuration directory. if that is not possible
// the default preferences are used.
func newEnvironment(output io.Writer, echo bool) (*environment.Environment, error) {
	var p *preferences.Preferences

	fn, err := prefs.DefaultPrefsFile()
	if err == nil {
		p, err = preferences.NewPreferences(fn)
	}
	if err != nil {
		fmt.Fprintf(output, "! using default preferences: %v\n", err)
		p, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	env, err := environment.NewEnvironment(p, nil)
	if err != nil {
		return nil, err
	}

	if echo || env.Prefs.LogEcho.Get().(bool) {
		env.Log.SetEcho(os.Stderr)
	}

	return env, nil
}

// newConsole loads the cartridge and optional BIOS and creates the console.
func newConsole(env *environment.Environment, md *modalflag.Modes, bios string) (*hardware.Console, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("cartridge required for %s mode", md)
	case 1:
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	cartload := cartridgeloader.NewLoader(md.GetArg(0))
	if err := cartload.Load(); err != nil {
		return nil, err
	}

	if h, err := cartload.Header(); err != nil {
		env.Logs("main", err)
	} else {
		env.Logs("main", h)
	}

	var biosData []byte
	if bios != "" {
		var err error
		biosData, err = cartridgeloader.LoadBIOS(bios)
		if err != nil {
			return nil, err
		}
	}

	return hardware.NewConsole(env, biosData, cartload.Data)
}

func run(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	frames := md.AddInt("frames", 0, "number of frames to run (0 runs until interrupted)")
	wav := md.AddString("wav", "", "record audio to wav file")
	traceFile := md.AddString("trace", "", "record execution trace to file")
	stats := md.AddBool("statsview", false, "run stats server")
	bios := md.AddString("bios", "", "BIOS image to use instead of the boot stub")
	fpsCap := md.AddBool("fpscap", false, "cap frame rate to that of the console")
	profile := md.AddString("profile", "none", "run emulation through profiler: CPU, MEM, TRACE, ALL (comma separated)")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	env, err := newEnvironment(output, *log)
	if err != nil {
		return err
	}

	con, err := newConsole(env, md, *bios)
	if err != nil {
		return err
	}

	if *stats {
		statsview.Launch(output, statsview.DefaultAddress)
	}

	var aw *wavwriter.WavWriter
	if *wav != "" {
		aw, err = wavwriter.New(env, *wav)
		if err != nil {
			return err
		}
		con.AttachAudio(aw)
	}

	var tw *trace.Writer
	if *traceFile != "" {
		f, err := os.Create(*traceFile)
		if err != nil {
			return err
		}
		defer f.Close()

		tw, err = trace.NewWriter(f)
		if err != nil {
			return err
		}
		con.CPU.AttachTracer(tw)
	}

	var lim *limiter.FpsLimiter
	if *fpsCap {
		lim, err = limiter.NewFPSLimiter(performance.RefreshRate)
		if err != nil {
			return err
		}
		defer lim.Stop()
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	runner := func() error {
		for n := 0; *frames <= 0 || n < *frames; n++ {
			if err := con.RunFrame(); err != nil {
				return err
			}
			if lim != nil {
				lim.Wait()
			}
			select {
			case <-intChan:
				return nil
			default:
			}
		}
		return nil
	}

	runErr := performance.RunProfiler(prf, "run", runner)

	if aw != nil {
		if err := aw.EndMixing(); err != nil && runErr == nil {
			runErr = err
		}
	}

	if tw != nil {
		if err := tw.Close(); err != nil && runErr == nil {
			runErr = err
		}
		fmt.Fprintf(output, "%d instructions traced\n", tw.Count())
	}

	fmt.Fprintf(output, "%d frames\n", con.Display.Frame())

	return runErr
}

func debug(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	defInitScript, err := prefs.ConfigFile(defaultInitScript)
	if err != nil {
		defInitScript = ""
	}

	termType := md.AddString("term", "AUTO", "terminal type to use in debug mode: COLOR, PLAIN, AUTO")
	initScript := md.AddString("initscript", defInitScript, "script to run on debugger start")
	bios := md.AddString("bios", "", "BIOS image to use instead of the boot stub")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, err := newEnvironment(output, *log)
	if err != nil {
		return err
	}

	con, err := newConsole(env, md, *bios)
	if err != nil {
		return err
	}

	var trm terminal.Terminal

	switch strings.ToUpper(*termType) {
	default:
		fmt.Fprintf(output, "! unknown terminal type (%s) defaulting to AUTO\n", *termType)
		fallthrough
	case "AUTO":
		if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
			trm = &colorterm.ColorTerminal{}
		} else {
			trm = &plainterm.PlainTerminal{}
		}
	case "PLAIN":
		trm = &plainterm.PlainTerminal{}
	case "COLOR":
		trm = &colorterm.ColorTerminal{}
	}

	dbg, err := debugger.NewDebugger(env, con, trm)
	if err != nil {
		return err
	}

	// the default init script is optional
	script := *initScript
	if script == defInitScript {
		if _, err := os.Stat(script); err != nil {
			script = ""
		}
	}

	return dbg.Start(script)
}

func info(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("one cartridge required for %s mode", md)
	}

	cartload := cartridgeloader.NewLoader(md.GetArg(0))
	if err := cartload.Load(); err != nil {
		return err
	}

	fmt.Fprintf(output, "%s\n", cartload.ShortName())
	fmt.Fprintf(output, "sha1: %s\n", cartload.Hash)
	fmt.Fprintf(output, "size: %d bytes\n", len(cartload.Data))

	h, err := cartload.Header()
	if err != nil {
		fmt.Fprintf(output, "header: %s (%v)\n", h, err)
		return nil
	}
	fmt.Fprintf(output, "header: %s\n", h)

	return nil
}

func perform(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration (with an additional 2s leadtime)")
	profile := md.AddString("profile", "none", "run performance check with profiling: CPU, MEM, TRACE, ALL (comma separated)")
	bios := md.AddString("bios", "", "BIOS image to use instead of the boot stub")
	log := md.AddBool("log", false, "echo debugging log to stderr")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	env, err := newEnvironment(output, *log)
	if err != nil {
		return err
	}

	con, err := newConsole(env, md, *bios)
	if err != nil {
		return err
	}

	return performance.Check(output, prf, con, *duration, performanceLeadtime)
}
