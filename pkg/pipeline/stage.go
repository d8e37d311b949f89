package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/l7mp/relate/pkg/group"
	"github.com/l7mp/relate/pkg/join"
	"github.com/l7mp/relate/pkg/record"
	"github.com/l7mp/relate/pkg/util"
)

// Stage is a single pipeline op. On the wire a stage is a single-key object
// whose key names the op: @attach, @attachComposite, @attachFiltered or
// @group.
type Stage struct {
	Op              string
	Attach          *AttachStage
	AttachComposite *AttachCompositeStage
	AttachFiltered  *AttachFilteredStage
	Group           *GroupStage
}

// AttachStage runs a flat join between two named collections.
type AttachStage struct {
	Parents     string           `json:"parents"`
	Children    string           `json:"children"`
	ParentKey   string           `json:"parentKey"`
	ChildKey    string           `json:"childKey"`
	As          string           `json:"as"`
	Cardinality join.Cardinality `json:"cardinality,omitempty"`
	Output      string           `json:"output"`
}

// AttachCompositeStage runs a composite-key join between two named
// collections, with a selectable index strategy.
type AttachCompositeStage struct {
	Parents     string           `json:"parents"`
	Children    string           `json:"children"`
	ParentKeys  []string         `json:"parentKeys"`
	ChildKeys   []string         `json:"childKeys"`
	As          string           `json:"as"`
	Cardinality join.Cardinality `json:"cardinality,omitempty"`
	// Strategy is "serialized" (default) or "nested". The two produce
	// identical results; the knob exists for benchmarking and debugging.
	Strategy string `json:"strategy,omitempty"`
	Output   string `json:"output"`
}

// AttachFilteredStage runs a three-level filtered join over three named
// collections.
type AttachFilteredStage struct {
	Parents  string `json:"parents"`
	Middle   string `json:"middle"`
	Children string `json:"children"`
	join.FilteredConfig
	Output string `json:"output"`
}

// GroupStage groups a named collection and emits one record per group of
// the form {"key": ..., "records": [...]}. Either a single field or a
// composite field tuple can be given.
type GroupStage struct {
	Source string   `json:"source"`
	Field  string   `json:"field,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Output string   `json:"output"`
}

// UnmarshalJSON parses a stage from a single-key object naming the op.
func (s *Stage) UnmarshalJSON(b []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("stage must be a single-key object naming the op")
	}

	for op, arg := range raw {
		s.Op = op
		switch op {
		case "@attach":
			s.Attach = &AttachStage{}
			return json.Unmarshal(arg, s.Attach)
		case "@attachComposite":
			s.AttachComposite = &AttachCompositeStage{}
			return json.Unmarshal(arg, s.AttachComposite)
		case "@attachFiltered":
			s.AttachFiltered = &AttachFilteredStage{}
			return json.Unmarshal(arg, s.AttachFiltered)
		case "@group":
			s.Group = &GroupStage{}
			return json.Unmarshal(arg, s.Group)
		default:
			return NewUnknownOpError(op)
		}
	}
	return nil
}

// Output returns the name of the collection the stage writes.
func (s *Stage) Output() string {
	switch {
	case s.Attach != nil:
		return s.Attach.Output
	case s.AttachComposite != nil:
		return s.AttachComposite.Output
	case s.AttachFiltered != nil:
		return s.AttachFiltered.Output
	case s.Group != nil:
		return s.Group.Output
	default:
		return ""
	}
}

func (s *Stage) run(state map[string][]record.Record) ([]record.Record, string, error) {
	switch {
	case s.Attach != nil:
		out, err := s.Attach.run(state)
		return out, s.Attach.Output, err
	case s.AttachComposite != nil:
		out, err := s.AttachComposite.run(state)
		return out, s.AttachComposite.Output, err
	case s.AttachFiltered != nil:
		out, err := s.AttachFiltered.run(state)
		return out, s.AttachFiltered.Output, err
	case s.Group != nil:
		out, err := s.Group.run(state)
		return out, s.Group.Output, err
	default:
		return nil, "", NewUnknownOpError(s.Op)
	}
}

func (s *AttachStage) run(state map[string][]record.Record) ([]record.Record, error) {
	parents, err := collection(state, s.Parents)
	if err != nil {
		return nil, err
	}
	children, err := collection(state, s.Children)
	if err != nil {
		return nil, err
	}
	if s.Output == "" {
		return nil, NewStageConfigError("@attach", "empty output collection")
	}
	return join.AttachBySelectors(parents, children,
		record.FieldSelector(s.ParentKey), record.FieldSelector(s.ChildKey),
		s.As, orMany(s.Cardinality))
}

func (s *AttachCompositeStage) run(state map[string][]record.Record) ([]record.Record, error) {
	parents, err := collection(state, s.Parents)
	if err != nil {
		return nil, err
	}
	children, err := collection(state, s.Children)
	if err != nil {
		return nil, err
	}
	if s.Output == "" {
		return nil, NewStageConfigError("@attachComposite", "empty output collection")
	}

	nested := false
	switch s.Strategy {
	case "", "serialized":
	case "nested":
		nested = true
	default:
		return nil, NewStageConfigError("@attachComposite",
			fmt.Sprintf("unknown strategy %q", s.Strategy))
	}

	one := orMany(s.Cardinality) == join.CardinalityOne
	switch {
	case nested && one:
		return join.AttachOneNested(parents, children, s.ParentKeys, s.ChildKeys, s.As)
	case nested:
		return join.AttachManyNested(parents, children, s.ParentKeys, s.ChildKeys, s.As)
	case one:
		return join.AttachOneComposite(parents, children, s.ParentKeys, s.ChildKeys, s.As)
	default:
		return join.AttachManyComposite(parents, children, s.ParentKeys, s.ChildKeys, s.As)
	}
}

func (s *AttachFilteredStage) run(state map[string][]record.Record) ([]record.Record, error) {
	parents, err := collection(state, s.Parents)
	if err != nil {
		return nil, err
	}
	middle, err := collection(state, s.Middle)
	if err != nil {
		return nil, err
	}
	children, err := collection(state, s.Children)
	if err != nil {
		return nil, err
	}
	if s.Output == "" {
		return nil, NewStageConfigError("@attachFiltered", "empty output collection")
	}
	return join.AttachFiltered(parents, middle, children, s.FilteredConfig)
}

func (s *GroupStage) run(state map[string][]record.Record) ([]record.Record, error) {
	records, err := collection(state, s.Source)
	if err != nil {
		return nil, err
	}
	if s.Output == "" {
		return nil, NewStageConfigError("@group", "empty output collection")
	}

	var groups *group.Map
	switch {
	case len(s.Fields) > 0:
		groups, err = group.ByComposite(records, s.Fields)
	case s.Field != "":
		groups, err = group.ByField(records, s.Field)
	default:
		return nil, NewStageConfigError("@group", "either field or fields must be set")
	}
	if err != nil {
		return nil, err
	}

	ret := make([]record.Record, 0, groups.Len())
	for _, k := range groups.Keys() {
		recs, _ := groups.Get(k)
		ret = append(ret, record.Record{
			"key": k,
			"records": util.Map(func(r record.Record) any {
				return record.DeepCopy(r)
			}, recs),
		})
	}
	return ret, nil
}

func collection(state map[string][]record.Record, name string) ([]record.Record, error) {
	if name == "" {
		return nil, NewUnknownCollectionError("(empty)")
	}
	recs, ok := state[name]
	if !ok {
		return nil, NewUnknownCollectionError(name)
	}
	return recs, nil
}

func orMany(c join.Cardinality) join.Cardinality {
	if c == "" {
		return join.CardinalityMany
	}
	return c
}
