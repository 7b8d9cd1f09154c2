// Package interpreter runs the Endo step loop: decode a pattern, decode a
// template, match the pattern against the live sequence, and (on a
// successful match) replace it, per spec §4.3/§4.8.
//
// Grounded on original_source/src/interpreterv2/interpreter.rs (Context,
// do_step, execute) and runner.rs (run_with_logs's periodic logging and
// wall-clock cutoff).
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dnarope/endo/internal/cursor"
	"github.com/dnarope/endo/internal/match"
	"github.com/dnarope/endo/internal/pattern"
	"github.com/dnarope/endo/internal/replace"
	"github.com/dnarope/endo/internal/sequence"
	"github.com/dnarope/endo/internal/symbol"
	"github.com/dnarope/endo/internal/template"
)

// Sentinel errors a caller can classify a failed Step against with
// errors.Is, without string matching the wrapped detail.
//
// ErrInvariant is match.ErrInvariant re-exported here so callers of this
// package never need to import internal/match themselves just to
// classify a Step error with errors.Is; Step never constructs it, only
// propagates whatever match.Match returned.
var (
	ErrPatternDecode  = errors.New("interpreter: pattern decode failed")
	ErrTemplateDecode = errors.New("interpreter: template decode failed")
	ErrInvariant      = match.ErrInvariant
)

// TerminationReason records why Run stopped.
type TerminationReason int

const (
	// StepLimitReached means Run stopped because it performed MaxSteps
	// steps without a decode failure. A canceled or expired ctx is
	// reported as Deadline instead.
	StepLimitReached TerminationReason = iota
	// PatternDecodeFailure means the current step's pattern could not be
	// decoded; the run stopped with the sequence exactly as it stood
	// before that step began.
	PatternDecodeFailure
	// TemplateDecodeFailure is PatternDecodeFailure's template-side twin.
	TemplateDecodeFailure
	// InvariantViolation means the match step detected a condition that
	// should be impossible for any pattern a well-formed decode can
	// produce (spec §7's internal-invariant-violation class), e.g. a
	// Search item with an empty target.
	InvariantViolation
	// Deadline means ctx was canceled or its deadline elapsed.
	Deadline
)

func (r TerminationReason) String() string {
	switch r {
	case StepLimitReached:
		return "step-limit-reached"
	case PatternDecodeFailure:
		return "pattern-decode-failure"
	case TemplateDecodeFailure:
		return "template-decode-failure"
	case InvariantViolation:
		return "invariant-violation"
	case Deadline:
		return "deadline"
	default:
		return "unknown"
	}
}

// Context is one interpreter run's live state: the sequence being
// rewritten and the RNA words emitted so far. RunID correlates this run's
// steps across the checkpoint and viewer sidecars.
type Context struct {
	RunID uuid.UUID
	Seq   sequence.Sequence
	RNA   []symbol.Word
}

// New returns a fresh Context over seq with a freshly generated RunID and
// no RNA emitted yet.
func New(seq sequence.Sequence) *Context {
	return &Context{RunID: uuid.New(), Seq: seq}
}

// Step performs exactly one pattern-decode/template-decode/match/replace
// cycle, per spec §4.3. On a successful match, ctx.Seq becomes the
// replacement; on a failed match, ctx.Seq is left as the decoders left it
// (the matched pattern's bytes have already been consumed from the
// cursor, win or lose — only the replace step is conditional). Any RNA
// words produced by III escapes during decoding are appended to ctx.RNA
// unconditionally, including when a subsequent pattern or template decode
// in the same step fails: per spec §7/§9 there is no partial RNA
// rollback, so whatever was emitted before the failure stays in the log.
// Step also propagates match.Match's ErrInvariant verbatim on the rare
// invariant-violation path; that case carries no RNA of its own to merge.
func Step(ctx *Context) error {
	c := cursor.New(ctx.Seq)

	p, err := pattern.Decode(c)
	if err != nil {
		ctx.RNA = append(ctx.RNA, c.RNA...)
		return fmt.Errorf("%w: %v", ErrPatternDecode, err)
	}

	t, err := template.Decode(c)
	if err != nil {
		ctx.RNA = append(ctx.RNA, c.RNA...)
		return fmt.Errorf("%w: %v", ErrTemplateDecode, err)
	}

	ctx.RNA = append(ctx.RNA, c.RNA...)

	env, rest, ok, err := match.Match(c.Seq, p)
	if err != nil {
		return err
	}
	if ok {
		ctx.Seq = replace.Replace(t, env, rest)
	} else {
		ctx.Seq = c.Seq
	}
	return nil
}

// Options configures Run.
type Options struct {
	// MaxSteps bounds the number of steps Run will perform; zero means
	// unbounded (Run then stops only on a decode failure or ctx
	// cancellation).
	MaxSteps int
	// LogEvery, if positive, makes Run log progress every LogEvery steps
	// (runner.rs logs every 100th step; zero disables logging).
	LogEvery int
	// OnStep, if set, is called synchronously after every completed step
	// with the step index (0-based) and the Context as it stands
	// immediately after that step. Intended for the checkpoint sidecar;
	// Run blocks on it, so a slow OnStep slows the whole run.
	OnStep func(step int, ictx *Context)
}

// Run drives the interpreter until a decode failure, Options.MaxSteps is
// reached, or ctx is canceled/its deadline elapses, returning the reason
// it stopped and the error that stopped it: the wrapped decode or
// invariant error from Step, ctx.Err() for Deadline, or nil for
// StepLimitReached.
func Run(goCtx context.Context, ictx *Context, opts Options) (TerminationReason, error) {
	for step := 0; ; step++ {
		select {
		case <-goCtx.Done():
			return Deadline, goCtx.Err()
		default:
		}

		if opts.LogEvery > 0 && step%opts.LogEvery == 0 {
			log.Printf("interpreter: run=%s step=%d seq-len=%d rna-words=%d", ictx.RunID, step, ictx.Seq.Len(), len(ictx.RNA))
		}

		if err := Step(ictx); err != nil {
			switch {
			case errors.Is(err, ErrPatternDecode):
				return PatternDecodeFailure, err
			case errors.Is(err, ErrTemplateDecode):
				return TemplateDecodeFailure, err
			default:
				return InvariantViolation, err
			}
		}

		if opts.OnStep != nil {
			opts.OnStep(step, ictx)
		}

		if opts.MaxSteps > 0 && step+1 >= opts.MaxSteps {
			return StepLimitReached, nil
		}
	}
}

// RunWithTimeout is a convenience wrapper matching runner.rs's 600-second
// wall-clock cutoff (execute/run_with_logs): it derives a deadline-bound
// context.Context from timeout and delegates to Run.
func RunWithTimeout(ictx *Context, timeout time.Duration, opts Options) (TerminationReason, error) {
	goCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return Run(goCtx, ictx, opts)
}
