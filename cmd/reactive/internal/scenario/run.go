package scenario

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-drift/reactive/pkg/collections"
	"github.com/go-drift/reactive/pkg/core"
	"github.com/go-drift/reactive/pkg/normalize"
	reactivetest "github.com/go-drift/reactive/pkg/testing"
)

// Result is the outcome of replaying a scenario.
type Result struct {
	Items            []string
	ListEvents       []string
	Updates          []normalize.Update
	Reset            bool
	Projection       []string
	IndexMap         []int
	ProjectionEvents []string
	Errors           []string
}

// Run replays s against a fresh list built with opts. Steps that fail, for
// example with an index out of range, are recorded in Result.Errors and the
// replay continues.
func Run(s *Scenario, opts collections.ListOptions[string]) (*Result, error) {
	r := &runner{
		list:   collections.NewListWithOptions(opts, s.Source...),
		resync: core.NewNotifier(),
		res:    &Result{},
	}
	defer r.dispose()

	listRec := reactivetest.Record[string](r.list)
	batch := normalize.Record[string](r.list)
	r.own(core.DisposeFunc(listRec.Stop), batch)

	var (
		projection *collections.Projection[string, string]
		projRec    *reactivetest.Recorder[string]
	)
	if s.Projection != nil {
		p, err := derive(r.list, s.Projection, r.resync)
		if err != nil {
			return nil, err
		}
		projection = p
		projRec = reactivetest.Record[string](p)
		r.own(p, core.DisposeFunc(projRec.Stop))
	}

	r.replay(s.Steps, "")

	res := r.res
	res.Items = r.list.Items()
	res.ListEvents = lines(listRec.Transcript())
	res.Updates, res.Reset = batch.Flush()
	if projection != nil {
		res.Projection = projection.Items()
		res.IndexMap = projection.IndexMap()
		res.ProjectionEvents = lines(projRec.Transcript())
	}
	return res, nil
}

type runner struct {
	list     *collections.List[string]
	resync   *core.Notifier
	res      *Result
	disposes []core.Disposable
}

func (r *runner) own(d ...core.Disposable) {
	r.disposes = append(r.disposes, d...)
}

// dispose releases everything in reverse order of acquisition.
func (r *runner) dispose() {
	for i := len(r.disposes) - 1; i >= 0; i-- {
		r.disposes[i].Dispose()
	}
	r.disposes = nil
}

func (r *runner) replay(steps []Step, prefix string) {
	for i, step := range steps {
		label := prefix + strconv.Itoa(i)
		if err := r.apply(step, label); err != nil {
			r.res.Errors = append(r.res.Errors, fmt.Sprintf("step %s: %v", label, err))
		}
	}
}

func (r *runner) apply(step Step, label string) error {
	kind, err := step.Kind()
	if err != nil {
		return err
	}
	list := r.list
	switch kind {
	case "add":
		list.Add(*step.Add)
	case "add_range":
		list.AddRange(step.AddRange)
	case "insert":
		return list.Insert(step.Insert.Index, step.Insert.Item)
	case "insert_range":
		return list.InsertRange(step.InsertRange.Index, step.InsertRange.Items)
	case "remove_at":
		return list.RemoveAt(*step.RemoveAt)
	case "remove":
		if !list.Remove(*step.Remove) {
			return fmt.Errorf("item %q not found", *step.Remove)
		}
	case "remove_range":
		return list.RemoveRange(step.RemoveRange.Index, step.RemoveRange.Count)
	case "set":
		return list.Set(step.Set.Index, step.Set.Item)
	case "move":
		return list.Move(step.Move.From, step.Move.To)
	case "clear":
		list.Clear()
	case "sort":
		list.Sort(strings.Compare)
	case "reset":
		list.Reset()
	case "resync":
		if r.resync.ListenerCount() == 0 {
			return fmt.Errorf("resync needs a projection")
		}
		r.resync.Notify()
	case "suppress":
		release := list.SuppressChangeNotifications()
		r.replay(step.Suppress, label+".")
		release()
	}
	return nil
}

func derive(list *collections.List[string], p *Projection, resync core.Listenable) (*collections.Projection[string, string], error) {
	opts := collections.DeriveOptions[string, string]{Resync: resync}
	if len(p.Exclude) > 0 || p.Prefix != "" {
		exclude := slices.Clone(p.Exclude)
		prefix := p.Prefix
		opts.Filter = func(s string) bool {
			return !slices.Contains(exclude, s) && strings.HasPrefix(s, prefix)
		}
	}
	switch p.Order {
	case "asc":
		opts.Order = strings.Compare
	case "desc":
		opts.Order = func(a, b string) int { return strings.Compare(b, a) }
	}
	return collections.Derive(collections.Source[string](list), selector(p.Select), opts)
}

func selector(name string) func(string) string {
	switch name {
	case "upper":
		return strings.ToUpper
	case "lower":
		return strings.ToLower
	case "length":
		return func(s string) string { return strconv.Itoa(len(s)) }
	default:
		return func(s string) string { return s }
	}
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
