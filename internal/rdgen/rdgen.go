// Package rdgen loads task sets produced by the RD-Gen random DAG generator.
//
// RD-Gen writes networkx node-link graphs. Every node becomes one reactor and
// every link one topic published by the link's source and subscribed by its
// target. All times in the file are milliseconds; nodes with a period are
// timer-driven, nodes without one are released by their incoming links.
package rdgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ruth561/DAG-BPF/internal/config"
	"github.com/ruth561/DAG-BPF/internal/ctxlog"
	"github.com/ruth561/DAG-BPF/internal/dag"
	"github.com/ruth561/DAG-BPF/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// TIDBase is added to node ids to form reactor TIDs.
const TIDBase dag.TID = 1000

const millisecond = int64(1_000_000)

// ErrInvalidGraph is wrapped by every structural problem found in a file.
var ErrInvalidGraph = errors.New("invalid RD-Gen graph")

// Graph mirrors the node-link document written by RD-Gen.
type Graph struct {
	Directed   bool   `yaml:"directed"`
	Multigraph bool   `yaml:"multigraph"`
	Nodes      []Node `yaml:"nodes"`
	Links      []Link `yaml:"links"`
}

// Node is a job of the generated task set. Times are in milliseconds.
type Node struct {
	ID               int    `yaml:"id"`
	ExecutionTime    int64  `yaml:"execution_time"`
	Period           *int64 `yaml:"period,omitempty"`
	EndToEndDeadline *int64 `yaml:"end_to_end_deadline,omitempty"`
}

// Link is a precedence constraint between two nodes.
type Link struct {
	Source int `yaml:"source"`
	Target int `yaml:"target"`
}

// Loader is the RD-Gen implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new RD-Gen loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .yaml and .yml file under paths. Each file is an
// independent task set; TIDs of later files are shifted past those of
// earlier ones so that they never collide.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ExpandPaths(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered RD-Gen files.", "count", len(files))

	model := &config.Model{}
	base := TIDBase
	for _, file := range files {
		g, err := ReadFile(file)
		if err != nil {
			return nil, err
		}
		reactors, err := g.Reactors(base)
		if err != nil {
			return nil, fmt.Errorf("failed to translate %s: %w", file, err)
		}
		model.Reactors = append(model.Reactors, reactors...)
		base += dag.TID(len(g.Nodes))
		logger.Debug("RD-Gen file loaded.", "file", file, "nodes", len(g.Nodes), "links", len(g.Links))
	}
	return model, nil
}

// ReadFile decodes and checks a single RD-Gen file.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var g Graph
	if err := yaml.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := g.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &g, nil
}

// normalize sorts nodes by id and checks that the ids are exactly 0..n-1.
func (g *Graph) normalize() error {
	if !g.Directed {
		return fmt.Errorf("%w: graph is not directed", ErrInvalidGraph)
	}
	if g.Multigraph {
		return fmt.Errorf("%w: multigraphs are not supported", ErrInvalidGraph)
	}
	sort.SliceStable(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
	for i, n := range g.Nodes {
		if n.ID != i {
			return fmt.Errorf("%w: node ids must be 0..%d, found %d at position %d", ErrInvalidGraph, len(g.Nodes)-1, n.ID, i)
		}
	}
	return nil
}

// Reactors translates the graph into reactors whose TIDs start at base.
// Link i becomes topic "topic<i>".
func (g *Graph) Reactors(base dag.TID) ([]*config.Reactor, error) {
	reactors := make([]*config.Reactor, len(g.Nodes))
	for i, n := range g.Nodes {
		r := &config.Reactor{
			Name:             fmt.Sprintf("reactor%d", i),
			TID:              base + dag.TID(i),
			Weight:           n.ExecutionTime * millisecond,
			Period:           -1,
			RelativeDeadline: -1,
		}
		if n.Period != nil {
			r.Period = *n.Period * millisecond
			r.RelativeDeadline = r.Period
		}
		if n.EndToEndDeadline != nil {
			r.RelativeDeadline = *n.EndToEndDeadline * millisecond
		}
		reactors[i] = r
	}

	for i, link := range g.Links {
		if link.Source < 0 || link.Target >= len(reactors) {
			return nil, fmt.Errorf("%w: link %d (%d -> %d) references an unknown node", ErrInvalidGraph, i, link.Source, link.Target)
		}
		if link.Source >= link.Target {
			return nil, fmt.Errorf("%w: link %d (%d -> %d) must point to a higher node id", ErrInvalidGraph, i, link.Source, link.Target)
		}
		target := reactors[link.Target]
		if target.TimerDriven() {
			return nil, fmt.Errorf("%w: link %d targets timer-driven node %d", ErrInvalidGraph, i, link.Target)
		}
		topic := fmt.Sprintf("topic%d", i)
		reactors[link.Source].Publishes = append(reactors[link.Source].Publishes, topic)
		target.Subscribes = append(target.Subscribes, topic)
	}
	return reactors, nil
}
