package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	Group bool   // list grouped by pending/done
	File  string // snapshot path
	Label string // label for a list that does not exist yet

	Stdout, Stderr io.Writer
	Logger         *log.Logger

	// Interactive runs the TUI; ui.RunInteractive when nil.
	Interactive func(*model.List) (bool, error)
}

func (o *Options) defaults() {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	if o.Interactive == nil {
		o.Interactive = ui.RunInteractive
	}
	if o.File == "" {
		o.File = jsonstore.DefaultFileName
	}
}

type runner struct {
	opt Options
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	opt.defaults()
	r := &runner{opt: opt}

	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := args[0], args[1:]
	r.opt.Logger.Debug("dispatch", "cmd", cmd, "args", len(a))

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ls":
		return r.doList(a)

	case "show":
		return r.doShow()

	case "tui":
		return r.doInteractive()

	case "demo":
		return r.doDemo()

	case "add":
		if len(a) == 0 {
			r.fail("usage: todo add <title...>")
			return 2
		}
		return r.doAdd(strings.Join(a, " "))

	case "done", "undone", "rm":
		if len(a) != 1 {
			r.fail("usage: todo " + cmd + " <index>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			r.fail(cmd + ": not a number: " + a[0])
			return 2
		}
		switch cmd {
		case "done":
			return r.doMark(n, true)
		case "undone":
			return r.doMark(n, false)
		default:
			return r.doRemove(n)
		}

	case "check", "find":
		if len(a) == 0 {
			r.fail("usage: todo " + cmd + " <title...>")
			return 2
		}
		title := strings.Join(a, " ")
		if cmd == "check" {
			return r.doCheck(title)
		}
		return r.doFind(title)

	case "pop":
		return r.doTake("pop", (*model.List).Pop)

	case "shift":
		return r.doTake("shift", (*model.List).Shift)

	case "done-all":
		return r.doMarkAll(true)

	case "undone-all":
		return r.doMarkAll(false)
	}

	r.fail("unknown subcommand: " + cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `todo - a tiny CLI

Usage:
  todo [flags] <subcommand> [args]

Flags:
  -file <path>       Snapshot file (default todos.json)
  -label <text>      Label for a new list
  -theme <name>      classic, neon or mono
  -group             Group ls output by pending/done
  -no-color          Disable colors
  -log-level <lvl>   debug, info, warn or error

Subcommands:
  add <title...>     Add a new item (title can be multiple words)
  ls [-done|-pending]  List items
  show               Print the plain list rendering
  tui                Interactive list
  done <index>       Mark item at 1-based index done
  undone <index>     Mark item at 1-based index not done
  check <title...>   Mark the first item with this exact title done
  find <title...>    Show the first item with this exact title
  rm <index>         Remove item at 1-based index
  pop                Remove the last item
  shift              Remove the first item
  done-all           Mark every item done
  undone-all         Mark every item not done
  demo               Print a sample list (does not touch the file)

Examples:
  todo add "Buy milk"
  todo ls
  todo done 2
  todo rm 3
`)
}

func (r *runner) ok(msg string)   { ui.OK(r.opt.Stdout, msg) }
func (r *runner) fail(msg string) { ui.Fail(r.opt.Stderr, msg) }

func (r *runner) load() (*model.List, bool) {
	l, err := jsonstore.Load(r.opt.File, r.opt.Label)
	if err != nil {
		r.opt.Logger.Error("load failed", "file", r.opt.File, "err", err)
		r.fail("load: " + err.Error())
		return nil, false
	}
	r.opt.Logger.Debug("loaded", "file", r.opt.File, "items", l.Size())
	return l, true
}

func (r *runner) save(l *model.List) bool {
	if err := jsonstore.Save(r.opt.File, l); err != nil {
		r.opt.Logger.Error("save failed", "file", r.opt.File, "err", err)
		r.fail("save: " + err.Error())
		return false
	}
	r.opt.Logger.Debug("saved", "file", r.opt.File, "items", l.Size())
	return true
}

// indexFail reports a bad 1-based index. Returns the usage exit code.
func (r *runner) indexFail(err error, userIndex, size int) int {
	if !errors.Is(err, model.ErrIndexOutOfRange) {
		r.fail(err.Error())
		return 1
	}
	r.fail(fmt.Sprintf("index out of range: have %d, got %d", size, userIndex))
	ui.Hint(r.opt.Stderr, "Hint: run `todo ls` to see valid indexes")
	return 2
}

// -------------- subcommand impls ----------------

func (r *runner) doList(args []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(r.opt.Stderr)
	onlyDone := fs.Bool("done", false, "only done items")
	onlyPending := fs.Bool("pending", false, "only pending items")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *onlyDone && *onlyPending {
		r.fail("ls: -done and -pending are exclusive")
		return 2
	}

	l, ok := r.load()
	if !ok {
		return 1
	}
	view := l
	switch {
	case *onlyDone:
		view = l.AllDone()
	case *onlyPending:
		view = l.AllNotDone()
	}

	t := ui.Current()
	d, p := l.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, l.Label()),
		ui.C(t.Success, t.SymDone), d,
		ui.C(t.Pending, t.SymUnchecked), p,
		ui.C(t.Accent, "Total"), l.Size(),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if r.opt.Group {
		lines = append(lines, groupLines(l, view)...)
	} else {
		lines = append(lines, flatLines(l, view)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `todo add \"Buy milk\"`"))
	ui.Panel(r.opt.Stdout, lines)
	return 0
}

func (r *runner) doShow() int {
	l, ok := r.load()
	if !ok {
		return 1
	}
	fmt.Fprintln(r.opt.Stdout, l.String())
	return 0
}

func (r *runner) doInteractive() int {
	l, ok := r.load()
	if !ok {
		return 1
	}
	changed, err := r.opt.Interactive(l)
	if err != nil {
		r.fail("tui: " + err.Error())
		return 1
	}
	if changed {
		if !r.save(l) {
			return 1
		}
		r.ok("saved")
	}
	return 0
}

func (r *runner) doAdd(title string) int {
	l, ok := r.load()
	if !ok {
		return 1
	}
	title = strings.TrimSpace(title)
	if title == "" {
		r.fail("add: empty title")
		return 2
	}
	if err := l.Add(model.NewItem(title)); err != nil {
		r.fail("add: " + err.Error())
		return 1
	}
	if !r.save(l) {
		return 1
	}
	r.ok("added")
	return 0
}

func (r *runner) doMark(userIndex int, done bool) int {
	l, ok := r.load()
	if !ok {
		return 1
	}
	var err error
	if done {
		err = l.MarkDoneAt(userIndex - 1)
	} else {
		err = l.MarkUndoneAt(userIndex - 1)
	}
	if err != nil {
		return r.indexFail(err, userIndex, l.Size())
	}
	if !r.save(l) {
		return 1
	}
	if done {
		r.ok("marked done")
	} else {
		r.ok("marked undone")
	}
	return 0
}

func (r *runner) doRemove(userIndex int) int {
	l, ok := r.load()
	if !ok {
		return 1
	}
	it, err := l.RemoveAt(userIndex - 1)
	if err != nil {
		return r.indexFail(err, userIndex, l.Size())
	}
	if !r.save(l) {
		return 1
	}
	r.ok("removed " + it.String())
	return 0
}

func (r *runner) doCheck(title string) int {
	l, ok := r.load()
	if !ok {
		return 1
	}
	if !l.MarkDoneByTitle(title) {
		r.fail(fmt.Sprintf("no item titled %q", title))
		return 1
	}
	if !r.save(l) {
		return 1
	}
	r.ok("marked done")
	return 0
}

func (r *runner) doFind(title string) int {
	l, ok := r.load()
	if !ok {
		return 1
	}
	it, found := l.FindByTitle(title)
	if !found {
		r.fail(fmt.Sprintf("no item titled %q", title))
		return 1
	}
	fmt.Fprintf(r.opt.Stdout, "%d. %s\n", positions(l)[it]+1, it)
	return 0
}

func (r *runner) doTake(name string, take func(*model.List) (*model.Item, bool)) int {
	l, ok := r.load()
	if !ok {
		return 1
	}
	it, found := take(l)
	if !found {
		r.fail(name + ": list is empty")
		return 1
	}
	if !r.save(l) {
		return 1
	}
	r.ok("removed " + it.String())
	return 0
}

func (r *runner) doMarkAll(done bool) int {
	l, ok := r.load()
	if !ok {
		return 1
	}
	if done {
		l.MarkAllDone()
	} else {
		l.MarkAllUndone()
	}
	if !r.save(l) {
		return 1
	}
	r.ok(fmt.Sprintf("updated %d items", l.Size()))
	return 0
}

// doDemo prints a fixed sample list and its done subset.
func (r *runner) doDemo() int {
	l := model.NewList("Today")
	for _, title := range []string{"Buy milk", "Clean room", "Go to the gym", "Go shopping", "Feed the cats", "Study"} {
		if err := l.Add(model.NewItem(title)); err != nil {
			r.fail("demo: " + err.Error())
			return 1
		}
	}
	_ = l.MarkDoneAt(0)
	_ = l.MarkDoneAt(4)

	fmt.Fprintln(r.opt.Stdout, l.String())
	fmt.Fprintln(r.opt.Stdout)
	fmt.Fprintln(r.opt.Stdout, l.AllDone().String())
	return 0
}

// -------------- rendering helpers --------------

const maxTitleWidth = 80

// positions maps each item of src to its 0-based position.
func positions(src *model.List) map[*model.Item]int {
	pos := make(map[*model.Item]int, src.Size())
	for i, it := range src.All() {
		if _, seen := pos[it]; !seen {
			pos[it] = i
		}
	}
	return pos
}

// flatLines renders view with indexes taken from src so they can be fed
// back to done/rm.
func flatLines(src, view *model.List) []string {
	t := ui.Current()
	if view.Size() == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	pos := positions(src)
	out := make([]string, 0, view.Size())
	view.ForEach(func(it *model.Item) {
		idx := fmt.Sprintf("%2d.", pos[it]+1)
		box, color := t.BoxUnchecked, t.Muted
		if it.IsDone() {
			box, color = t.BoxChecked, t.Success
		}
		out = append(out, fmt.Sprintf("%s %s %s", ui.Dim(idx), ui.C(color, box), truncateTitle(it.Title())))
	})
	return out
}

// truncateTitle caps a title at maxTitleWidth terminal cells.
func truncateTitle(title string) string {
	return ansi.Truncate(title, maxTitleWidth, "...")
}

func groupLines(src, view *model.List) []string {
	t := ui.Current()
	var lines []string
	section := func(name string, part *model.List) {
		lines = append(lines, ui.C(t.Accent, name))
		if part.Size() == 0 {
			lines = append(lines, ui.C(t.Muted, "(none)"))
			return
		}
		lines = append(lines, flatLines(src, part)...)
	}
	section("Pending", view.AllNotDone())
	lines = append(lines, "")
	section("Done", view.AllDone())
	return lines
}
