// Package pipeline provides a declarative front end to the join and
// grouping operators: a pipeline is an ordered list of stages parsed from
// YAML or JSON, each stage reading named record collections from a working
// set and writing its result back under a new name.
package pipeline

import (
	"github.com/go-logr/logr"
	"sigs.k8s.io/yaml"

	"github.com/l7mp/relate/pkg/record"
)

// Pipeline is an ordered list of stages evaluated over a working set of
// named record collections.
type Pipeline struct {
	Stages []Stage
	log    logr.Logger
}

// New creates an empty pipeline.
func New() *Pipeline {
	return &Pipeline{Stages: []Stage{}, log: logr.Discard()}
}

// Unmarshal parses a pipeline from a YAML or JSON stage list.
func Unmarshal(data []byte) (*Pipeline, error) {
	stages := []Stage{}
	if err := yaml.Unmarshal(data, &stages); err != nil {
		return nil, NewPipelineError(err)
	}
	p := New()
	p.Stages = stages
	return p, nil
}

// WithLogger sets the pipeline logger.
func (p *Pipeline) WithLogger(log logr.Logger) *Pipeline {
	p.log = log
	return p
}

// Run evaluates the stages in order. The input map is never modified: stage
// outputs accumulate in a copy of the working set, which is returned with
// the inputs still in place. Referencing an unknown collection or an
// unknown op is an error and aborts the whole run.
func (p *Pipeline) Run(views map[string][]record.Record) (map[string][]record.Record, error) {
	state := make(map[string][]record.Record, len(views))
	for name, recs := range views {
		state[name] = recs
	}

	for i := range p.Stages {
		stage := &p.Stages[i]
		p.log.V(2).Info("running stage", "index", i, "op", stage.Op, "output", stage.Output())

		out, name, err := stage.run(state)
		if err != nil {
			return nil, NewPipelineError(err)
		}

		p.log.V(4).Info("stage ready", "index", i, "op", stage.Op, "output", name,
			"records", len(out))
		state[name] = out
	}

	return state, nil
}
