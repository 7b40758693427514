// Package schema holds the gohcl decoding targets for reactor configuration
// files. The types mirror the file layout one to one and carry no behavior;
// the hcl package translates them into the config model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File is the top-level structure of a configuration file. Every block is
// optional, so settings and reactors may be spread over several files.
// Unknown blocks and attributes are rejected.
type File struct {
	Settings *Settings `hcl:"settings,block"`
	Reactors []*Reactor `hcl:"reactor,block"`
}

// Settings represents the `settings` block. Unset attributes stay nil.
type Settings struct {
	PoolCapacity *int    `hcl:"pool_capacity,optional"`
	Units        *int    `hcl:"units,optional"`
	Algorithm    *string `hcl:"algorithm,optional"`
}

// Reactor represents a `reactor "name" { ... }` block.
//
// Time attributes are kept as expressions so they can use the unit variables
// (`3 * ms`) and so a missing attribute can be told apart from zero.
type Reactor struct {
	Name             string         `hcl:"name,label"`
	TID              int32          `hcl:"tid"`
	Weight           hcl.Expression `hcl:"weight"`
	Period           hcl.Expression `hcl:"period,optional"`
	RelativeDeadline hcl.Expression `hcl:"relative_deadline,optional"`
	Subscribes       []string       `hcl:"subscribes,optional"`
	Publishes        []string       `hcl:"publishes,optional"`
}
