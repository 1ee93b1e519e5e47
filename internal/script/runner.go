package script

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"

	"dtype/internal/box"
	"dtype/internal/diag"
	"dtype/internal/trace"
)

// Config describes the environment a Runner builds for its value.
type Config struct {
	Name     string
	Out      io.Writer     // command output: get, peek, print, debug, type, len
	Reporter diag.Reporter // receives box diagnostics stamped with the statement position
	Options  box.Options
	Env      []box.EnvOption // allocator, target, tracer, exit
}

// Runner executes statements against a single boxed value.
//
// Box errors never stop a run: they are reported as diagnostics, positioned
// at the offending statement, and the run moves on. Only cancellation and
// failed writes to Out abort.
type Runner struct {
	name string
	out  io.Writer
	env  *box.Env
	val  *box.Value
	cur  diag.Pos
	n    int
}

func NewRunner(cfg Config) *Runner {
	r := &Runner{name: cfg.Name, out: cfg.Out}
	if r.out == nil {
		r.out = io.Discard
	}
	rep := diag.PosReporter{Next: cfg.Reporter, Where: func() diag.Pos { return r.cur }}
	opts := append([]box.EnvOption{}, cfg.Env...)
	opts = append(opts,
		box.WithOptions(cfg.Options),
		box.WithReporter(rep),
		box.WithOutput(r.out),
	)
	r.env = box.NewEnv(opts...)
	r.val = r.env.New()
	return r
}

func (r *Runner) Env() *box.Env { return r.env }

func (r *Runner) Value() *box.Value { return r.val }

// Executed is the number of statements run so far.
func (r *Runner) Executed() int { return r.n }

// Run executes prog in order, checking ctx between statements.
func (r *Runner) Run(ctx context.Context, prog *Program) error {
	tracer := r.env.Tracer()
	span := trace.Begin(tracer, trace.ScopeSession, "script", trace.CurrentSpan(ctx).SpanID)
	span.WithExtra("file", prog.File)
	defer func() { span.End(strconv.Itoa(r.n) + " statements") }()

	for i := range prog.Stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Exec(prog.Stmts[i]); err != nil {
			return fmt.Errorf("%s: %w", prog.Stmts[i].Pos, err)
		}
	}
	return nil
}

// Exec runs one statement. The returned error is an output failure; box
// errors are reported, not returned.
func (r *Runner) Exec(st Stmt) error {
	r.cur = st.Pos
	r.n++
	v := r.val
	switch st.Op {
	case OpSet:
		r.fail(st, r.set(st))
	case OpGet:
		return r.get(st)
	case OpResize:
		r.fail(st, v.ChangeSize(st.N))
	case OpPoke:
		buf := v.Bytes()
		if !fits(len(buf), st.Offset, len(st.Bytes)) {
			r.fail(st, fmt.Errorf("poke of %d bytes at %d: %w", len(st.Bytes), st.Offset, box.ErrShortBuffer))
			return nil
		}
		copy(buf[st.Offset:], st.Bytes)
	case OpPeek:
		buf := v.Bytes()
		if !fits(len(buf), st.Offset, st.N) {
			r.fail(st, fmt.Errorf("peek of %d bytes at %d: %w", st.N, st.Offset, box.ErrShortBuffer))
			return nil
		}
		return r.println(hexBytes(buf[st.Offset : st.Offset+st.N]))
	case OpClear:
		v.Clear()
	case OpPrint:
		if _, err := v.Print(); err != nil {
			return r.printErr(st, err)
		}
		return r.println("")
	case OpDebug:
		if _, err := v.DebugPrint(); err != nil {
			return r.printErr(st, err)
		}
	case OpType:
		return r.println(v.TypeName())
	case OpLen:
		return r.println(strconv.Itoa(v.Len()))
	case OpOption:
		r.option(st)
	}
	return nil
}

// fits reports whether [off, off+n) lies within a buffer of size bytes
// without computing off+n.
func fits(size, off, n int) bool {
	return off <= size && n <= size-off
}

func (r *Runner) set(st Stmt) error {
	v := r.val
	if st.Tag == box.TagCustom {
		return v.SetCustom(st.Bytes)
	}
	switch x := st.Value.(type) {
	case bool:
		return v.SetBool(x)
	case byte:
		return v.SetChar(x)
	case int16:
		return v.SetShort(x)
	case uint16:
		return v.SetUShort(x)
	case int32:
		return v.SetInt(x)
	case uint32:
		return v.SetUInt(x)
	case int64:
		return v.SetLong(x)
	case uint64:
		return v.SetULong(x)
	case float32:
		return v.SetFloat(x)
	case float64:
		return v.SetDouble(x)
	case string:
		return v.SetString(x)
	}
	return fmt.Errorf("set %s: unsupported literal %T", st.Tag.Keyword(), st.Value)
}

func (r *Runner) get(st Stmt) error {
	v := r.val
	var (
		text string
		err  error
	)
	switch st.Tag {
	case box.TagBool:
		var b bool
		b, err = v.AsBool()
		text = strconv.FormatBool(b)
	case box.TagChar:
		var c byte
		c, err = v.AsChar()
		text = string([]byte{c})
	case box.TagShort:
		var n int16
		n, err = v.AsShort()
		text = strconv.FormatInt(int64(n), 10)
	case box.TagUShort:
		var n uint16
		n, err = v.AsUShort()
		text = strconv.FormatUint(uint64(n), 10)
	case box.TagInt:
		var n int32
		n, err = v.AsInt()
		text = strconv.FormatInt(int64(n), 10)
	case box.TagUInt:
		var n uint32
		n, err = v.AsUInt()
		text = strconv.FormatUint(uint64(n), 10)
	case box.TagLong:
		var n int64
		n, err = v.AsLong()
		text = strconv.FormatInt(n, 10)
	case box.TagULong:
		var n uint64
		n, err = v.AsULong()
		text = strconv.FormatUint(n, 10)
	case box.TagFloat:
		var f float32
		f, err = v.AsFloat()
		text = strconv.FormatFloat(float64(f), 'g', -1, 32)
	case box.TagDouble:
		var f float64
		f, err = v.AsDouble()
		text = strconv.FormatFloat(f, 'g', -1, 64)
	case box.TagString:
		text, err = v.AsString()
	case box.TagCustom:
		var b []byte
		b, err = v.AsCustom()
		text = hexBytes(b)
	}
	r.fail(st, err)
	if errors.Is(err, box.ErrShortBuffer) {
		return nil
	}
	return r.println(text)
}

func (r *Runner) option(st Stmt) {
	switch st.Option {
	case OptErrors:
		r.env.SetErrorReporting(st.On)
	case OptWarnings:
		r.env.SetWarnReporting(st.On)
	case OptWarnAsError:
		r.env.SetWarnAsError(st.On)
	case OptExitOnError:
		r.env.SetExitOnError(st.On)
	}
}

// fail reports err unless the box already raised it. Contract violations
// the box only returns (short reads, bad sizes, range) are raised here as
// UnknownError so they honour the same switches.
func (r *Runner) fail(st Stmt, err error) {
	if err == nil {
		return
	}
	if _, raised := diag.CodeOf(err); raised && !contractViolation(err) {
		return
	}
	r.env.Raise(st.Op.String(), err.Error(), diag.UnknownError)
}

func contractViolation(err error) bool {
	for _, target := range []error{box.ErrShortBuffer, box.ErrInvalidSize, box.ErrOutOfRange, box.ErrNotFixedSize} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// printErr separates write failures from box errors. TypeError from a
// corrupted tag has already been raised.
func (r *Runner) printErr(st Stmt, err error) error {
	if _, raised := diag.CodeOf(err); raised {
		return nil
	}
	if contractViolation(err) {
		r.fail(st, err)
		return nil
	}
	return err
}

func (r *Runner) println(s string) error {
	_, err := io.WriteString(r.out, s+"\n")
	return err
}

// hexBytes renders b as space separated lower-case hex pairs.
func hexBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, 0, len(b)*3-1)
	for i, c := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hex.EncodeToString([]byte{c})...)
	}
	return string(out)
}
