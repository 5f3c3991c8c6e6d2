// Command veridiff is the differential fuzzer's CLI entry point (spec.md
// §6). Flags are parsed by hand off os.Args, matching the teacher's
// cmd/funxy/main.go convention of small handleX() dispatchers rather than
// the flag package.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/veridiff/internal/ast"
	"github.com/funvibe/veridiff/internal/config"
	"github.com/funvibe/veridiff/internal/hiergen"
	"github.com/funvibe/veridiff/internal/loopgen"
	"github.com/funvibe/veridiff/internal/orchestrator"
	"github.com/funvibe/veridiff/internal/session"
	"github.com/funvibe/veridiff/internal/store"
	"github.com/funvibe/veridiff/internal/tool"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  %s run [--config veridiff.yaml] [--db veridiff.db] [--seed N] [--iterations N]
  %s history --db veridiff.db <session-id>
  %s -help
`, os.Args[0], os.Args[0], os.Args[0])
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	switch os.Args[1] {
	case "-help", "--help", "help":
		usage()
		return true
	}
	return false
}

func handleHistory() bool {
	if len(os.Args) < 2 || os.Args[1] != "history" {
		return false
	}
	dbPath := "veridiff.db"
	var sessionID string
	for i := 2; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--db":
			if i+1 < len(os.Args) {
				i++
				dbPath = os.Args[i]
			}
		default:
			sessionID = os.Args[i]
		}
	}
	if sessionID == "" {
		fmt.Fprintln(os.Stderr, "history: a session id is required")
		os.Exit(1)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	hist, err := st.History(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "history: %v\n", err)
		os.Exit(1)
	}
	for _, h := range hist {
		fmt.Printf("%04d  %-10s  %-20s  %s\n", h.Seq, h.Outcome, h.Module, h.CreatedAt)
	}
	return true
}

func handleRun() bool {
	if len(os.Args) < 2 || os.Args[1] != "run" {
		return false
	}

	runCfg := config.DefaultRunConfig()
	dbPath := ""
	var seedFlag *int64
	var iterationsFlag *int
	configGiven := false

	for i := 2; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--config":
			if i+1 >= len(os.Args) {
				break
			}
			i++
			c, err := config.Load(os.Args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "run: %v\n", err)
				os.Exit(1)
			}
			runCfg = *c
			configGiven = true
		case "--db":
			if i+1 < len(os.Args) {
				i++
				dbPath = os.Args[i]
			}
		case "--seed":
			if i+1 < len(os.Args) {
				i++
				v, err := strconv.ParseInt(os.Args[i], 10, 64)
				if err != nil {
					fmt.Fprintf(os.Stderr, "run: bad --seed value %q\n", os.Args[i])
					os.Exit(1)
				}
				seedFlag = &v
			}
		case "--iterations":
			if i+1 < len(os.Args) {
				i++
				v, err := strconv.Atoi(os.Args[i])
				if err != nil {
					fmt.Fprintf(os.Stderr, "run: bad --iterations value %q\n", os.Args[i])
					os.Exit(1)
				}
				iterationsFlag = &v
			}
		}
	}
	// With no explicit --config, fall back to the same directory-walking
	// discovery the teacher's ext.FindConfig does for funxy.yaml (spec.md
	// §6, "--config"), rather than silently ignoring a veridiff.yaml the
	// user placed in or above the working directory.
	if !configGiven {
		if found, err := config.Find("."); err == nil && found != "" {
			c, err := config.Load(found)
			if err != nil {
				fmt.Fprintf(os.Stderr, "run: %v\n", err)
				os.Exit(1)
			}
			runCfg = *c
		}
	}
	if seedFlag != nil {
		runCfg.Seed = *seedFlag
	}
	if iterationsFlag != nil {
		runCfg.Iterations = *iterationsFlag
	}
	if dbPath != "" {
		runCfg.DBPath = dbPath
	}

	os.Exit(exitCode(runCampaign(runCfg)))
	return true
}

// runCampaign drives one full fuzzing campaign and returns its final
// counters, which main uses to compute the process exit code (spec.md §6,
// "exit-code dominance").
func runCampaign(runCfg config.RunConfig) orchestrator.Counters {
	sess, err := session.New(".veridiff-sessions")
	if err != nil {
		log.Fatalf("creating session: %v", err)
	}

	st, err := store.Open(runCfg.DBPath)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer st.Close()

	timeout := time.Duration(runCfg.TimeoutSeconds) * time.Second
	runner := orchestrator.New(nil, timeout)

	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	for i := 0; i < runCfg.Iterations; i++ {
		// Each iteration rebuilds its own Tool set rooted at a fresh,
		// dedicated per-iteration, per-tool directory (spec.md §4.4/§6) —
		// reusing one Tool instance across iterations would let every
		// iteration's dut.v/tb.v/logs overwrite the previous one's.
		var tools []tool.Tool
		for _, name := range runCfg.Tools {
			t, err := tool.New(name, sess.ToolDir(i, name))
			if err != nil {
				log.Fatalf("run: %v", err)
			}
			tools = append(tools, t)
		}
		runner.Tools = tools

		d := drawDesign(runCfg, i)
		it := runner.RunIteration(i, d)
		if err := st.RecordIteration(sess.ID.String(), it); err != nil {
			log.Printf("recording iteration %d: %v", i, err)
		}
		if isTTY {
			fmt.Printf("\r[%d/%d] pass=%d mismatch=%d crash=%d timeout=%d",
				i+1, runCfg.Iterations, runner.Counters.Pass, runner.Counters.Mismatch,
				runner.Counters.Crash, runner.Counters.Timeout)
		}
	}
	if isTTY {
		fmt.Println()
	}

	fmt.Printf("session %s: total=%d pass=%d mismatch=%d crash=%d timeout=%d\n",
		sess.ID, runner.Counters.Total, runner.Counters.Pass, runner.Counters.Mismatch,
		runner.Counters.Crash, runner.Counters.Timeout)

	return runner.Counters
}

// exitCode implements spec.md §6/§8's exit-code dominance rule:
// 0 clean, 1 if any mismatch, 2 if any timeout, 3 if any non-timeout
// crash, with crash > timeout > mismatch.
func exitCode(c orchestrator.Counters) int {
	switch {
	case c.RealCrash > 0:
		return 3
	case c.Timeout > 0:
		return 2
	case c.Mismatch > 0:
		return 1
	default:
		return 0
	}
}

// drawDesign picks a generator for iteration i according to runCfg.Generator
// ("loop", "hier", or "both" alternating) and seeds it from runCfg.Seed
// offset by i, so each iteration draws an independent, reproducible design.
func drawDesign(runCfg config.RunConfig, i int) orchestrator.Design {
	useHier := runCfg.Generator == "hier" || (runCfg.Generator == "both" && i%2 == 1)
	seed := runCfg.Seed + int64(i)

	if useHier {
		cfg := runCfg.Hier.ToHiergen(seed)
		res := hiergen.New(cfg).Generate("top")
		return orchestrator.Design{ModuleName: res.ModuleName, Verilog: res.Verilog, Oracle: res.Oracle}
	}
	cfg := runCfg.Loop.ToLoopgen(seed)
	res := loopgen.New(cfg).Generate("top")
	verilog := res.Verilog
	if res.UsesConstBlock {
		verilog = ast.ConstBlock + "\n\n" + verilog
	}
	return orchestrator.Design{ModuleName: res.ModuleName, Verilog: verilog, Oracle: res.Oracle}
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	if handleHelp() {
		return
	}
	if handleHistory() {
		return
	}
	if handleRun() {
		return
	}

	usage()
	os.Exit(1)
}
