// Command endo runs the Endo DNA/RNA interpreter against a prefix DNA
// file and reports the RNA words it emits.
//
// Grounded on texere's cmd/main.go (a single flag-configured main with
// stdlib log output and graceful shutdown) and original_source's
// runner.rs (run_with_logs's periodic progress line and wall-clock
// cutoff).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/dnarope/endo/internal/checkpoint"
	"github.com/dnarope/endo/internal/cursor"
	"github.com/dnarope/endo/internal/interpreter"
	"github.com/dnarope/endo/internal/pattern"
	"github.com/dnarope/endo/internal/patterngraph"
	"github.com/dnarope/endo/internal/sequence"
	"github.com/dnarope/endo/internal/symbol"
	"github.com/dnarope/endo/internal/viewer"
)

func main() {
	dnaPath := flag.String("dna", "", "path to the prefix DNA file (required)")
	prefix := flag.String("prefix", "", "literal DNA prefix to prepend before -dna's contents")
	maxSteps := flag.Int("max-steps", 0, "stop after this many steps (0 = unbounded)")
	timeout := flag.Duration("timeout", 10*time.Minute, "wall-clock budget for the run")
	checkpointPath := flag.String("checkpoint", "", "path to a checkpoint store (empty disables checkpointing)")
	checkpointEvery := flag.Int("checkpoint-every", 1000, "save a checkpoint every N steps")
	viewerAddr := flag.String("viewer-addr", "", "if set, serve a live checkpoint viewer at this address (e.g. :8090)")
	patternGraphPath := flag.String("pattern-graph", "", "if set, decode a single pattern from -dna and write its DOT graph here, then exit")
	flag.Parse()

	if *dnaPath == "" {
		fmt.Fprintln(os.Stderr, "endo: -dna is required")
		flag.Usage()
		os.Exit(2)
	}

	log.Printf("endo: cpu features: avx2=%v sse42=%v", cpu.X86.HasAVX2, cpu.X86.HasSSE42)

	raw, err := os.ReadFile(*dnaPath)
	if err != nil {
		log.Fatalf("endo: reading %s: %v", *dnaPath, err)
	}
	seq, err := sequence.FromText(*prefix + string(raw))
	if err != nil {
		log.Fatalf("endo: parsing DNA: %v", err)
	}

	if *patternGraphPath != "" {
		runPatternGraph(seq, *patternGraphPath)
		return
	}

	ictx := interpreter.New(seq)
	log.Printf("endo: starting run=%s sequence-length=%d", ictx.RunID, ictx.Seq.Len())

	var store *checkpoint.Store
	if *checkpointPath != "" {
		store, err = checkpoint.Create(*checkpointPath)
		if err != nil {
			log.Fatalf("endo: opening checkpoint store: %v", err)
		}
		defer store.Close()
	}

	var view *viewer.Server
	var httpServer *http.Server
	if *viewerAddr != "" {
		view = viewer.NewServer()
		mux := http.NewServeMux()
		view.RegisterHandler(mux)
		httpServer = &http.Server{Addr: *viewerAddr, Handler: mux}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("endo: viewer server: %v", err)
			}
		}()
		log.Printf("endo: viewer listening on ws://%s/checkpoints", *viewerAddr)
	}

	goCtx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("endo: received interrupt, stopping")
		cancel()
	}()

	opts := interpreter.Options{MaxSteps: *maxSteps, LogEvery: 100}
	if store != nil || view != nil {
		opts.OnStep = func(step int, c *interpreter.Context) {
			if *checkpointEvery <= 0 || step%*checkpointEvery != 0 {
				return
			}
			rec := checkpoint.Record{
				RunID:        c.RunID.String(),
				Step:         step,
				SequenceText: c.Seq.Text(),
				RNAWordCount: len(c.RNA),
				LastRNAWords: lastWords(c.RNA, 5),
			}
			if store != nil {
				if err := store.Save(rec); err != nil {
					log.Printf("endo: checkpoint save failed: %v", err)
				}
			}
			if view != nil {
				view.Publish(rec)
			}
		}
	}

	reason, err := interpreter.Run(goCtx, ictx, opts)
	log.Printf("endo: run finished: reason=%s err=%v rna-words=%d", reason, err, len(ictx.RNA))

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
		view.Close()
	}

	for _, w := range ictx.RNA {
		fmt.Println(w.String())
	}
}

func lastWords(words []symbol.Word, n int) []string {
	if len(words) > n {
		words = words[len(words)-n:]
	}
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.String()
	}
	return out
}

func runPatternGraph(seq sequence.Sequence, path string) {
	c := cursor.New(seq)
	p, err := pattern.Decode(c)
	if err != nil {
		log.Fatalf("endo: decoding pattern for -pattern-graph: %v", err)
	}
	dot, err := patterngraph.Render(p)
	if err != nil {
		log.Fatalf("endo: rendering pattern graph: %v", err)
	}
	if err := os.WriteFile(path, dot, 0o644); err != nil {
		log.Fatalf("endo: writing pattern graph: %v", err)
	}
	log.Printf("endo: wrote pattern graph to %s", path)
}
