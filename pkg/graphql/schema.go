package graphql

import (
	"encoding/json"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-codegraph/pkg/codegraph"
	"github.com/dd0wney/cluso-codegraph/pkg/community"
	"github.com/dd0wney/cluso-codegraph/pkg/recommend"
)

// Resolver holds what the schema resolves against: one read-only graph, a
// detection engine and a recommendation engine.
type Resolver struct {
	Graph   *codegraph.Graph
	Engine  *community.Engine
	Advisor *recommend.Engine
}

// GenerateSchema builds the query schema over r. Nil engines are replaced by
// defaults.
func GenerateSchema(r *Resolver) (graphql.Schema, error) {
	if r == nil || r.Graph == nil {
		return graphql.Schema{}, fmt.Errorf("resolver requires a graph")
	}
	if r.Engine == nil {
		r.Engine = community.NewEngine()
	}
	if r.Advisor == nil {
		r.Advisor = recommend.NewEngine(recommend.DefaultThresholds())
	}

	types := newSchemaTypes()
	paramArgs := graphql.FieldConfigArgument{
		"resolution":    &graphql.ArgumentConfig{Type: graphql.Float},
		"k":             &graphql.ArgumentConfig{Type: graphql.Int},
		"maxIterations": &graphql.ArgumentConfig{Type: graphql.Int},
	}

	detectArgs := graphql.FieldConfigArgument{
		"algorithm": &graphql.ArgumentConfig{
			Type:         graphql.String,
			DefaultValue: string(community.Leiden),
		},
	}
	compareArgs := graphql.FieldConfigArgument{
		"algorithms": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
	}
	for name, arg := range paramArgs {
		detectArgs[name] = arg
		compareArgs[name] = arg
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"graph": &graphql.Field{
				Type:    types.graph,
				Resolve: r.resolveGraph,
			},
			"node": &graphql.Field{
				Type: types.node,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveNode,
			},
			"bridges": &graphql.Field{
				Type: graphql.NewList(types.bridge),
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: r.resolveBridges,
			},
			"algorithms": &graphql.Field{
				Type:    graphql.NewList(types.algorithm),
				Resolve: r.resolveAlgorithms,
			},
			"detect": &graphql.Field{
				Type:    types.detection,
				Args:    detectArgs,
				Resolve: r.resolveDetect,
			},
			"compare": &graphql.Field{
				Type:    types.comparison,
				Args:    compareArgs,
				Resolve: r.resolveCompare,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

type schemaTypes struct {
	node       *graphql.Object
	link       *graphql.Object
	graph      *graphql.Object
	bridge     *graphql.Object
	algorithm  *graphql.Object
	detection  *graphql.Object
	comparison *graphql.Object
}

func newSchemaTypes() *schemaTypes {
	t := &schemaTypes{}

	t.node = graphql.NewObject(graphql.ObjectConfig{
		Name: "Node",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"kind":      &graphql.Field{Type: graphql.String},
			"name":      &graphql.Field{Type: graphql.String},
			"degree":    &graphql.Field{Type: graphql.Int},
			"neighbors": &graphql.Field{Type: graphql.NewList(graphql.String)},
			// Attributes are opaque, so they are exposed as a JSON string
			"attributes": &graphql.Field{Type: graphql.String},
		},
	})

	t.link = graphql.NewObject(graphql.ObjectConfig{
		Name: "Link",
		Fields: graphql.Fields{
			"source": &graphql.Field{Type: graphql.String},
			"target": &graphql.Field{Type: graphql.String},
			"weight": &graphql.Field{Type: graphql.Float},
		},
	})

	t.graph = graphql.NewObject(graphql.ObjectConfig{
		Name: "Graph",
		Fields: graphql.Fields{
			"nodeCount":         &graphql.Field{Type: graphql.Int},
			"edgeCount":         &graphql.Field{Type: graphql.Int},
			"linkCount":         &graphql.Field{Type: graphql.Int},
			"components":        &graphql.Field{Type: graphql.Int},
			"triangles":         &graphql.Field{Type: graphql.Int},
			"averageClustering": &graphql.Field{Type: graphql.Float},
			"nodes":             &graphql.Field{Type: graphql.NewList(t.node)},
			"links":             &graphql.Field{Type: graphql.NewList(t.link)},
		},
	})

	// Links ranked by betweenness are the likeliest cross-community bridges
	t.bridge = graphql.NewObject(graphql.ObjectConfig{
		Name: "Bridge",
		Fields: graphql.Fields{
			"source":      &graphql.Field{Type: graphql.String},
			"target":      &graphql.Field{Type: graphql.String},
			"betweenness": &graphql.Field{Type: graphql.Float},
		},
	})

	t.algorithm = graphql.NewObject(graphql.ObjectConfig{
		Name: "Algorithm",
		Fields: graphql.Fields{
			"name":      &graphql.Field{Type: graphql.String},
			"available": &graphql.Field{Type: graphql.Boolean},
		},
	})

	assignment := graphql.NewObject(graphql.ObjectConfig{
		Name: "Assignment",
		Fields: graphql.Fields{
			"node":      &graphql.Field{Type: graphql.String},
			"community": &graphql.Field{Type: graphql.Int},
		},
	})

	communityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Community",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.Int},
			"size":          &graphql.Field{Type: graphql.Int},
			"members":       &graphql.Field{Type: graphql.NewList(graphql.String)},
			"internalEdges": &graphql.Field{Type: graphql.Int},
			"externalEdges": &graphql.Field{Type: graphql.Int},
			"totalEdges":    &graphql.Field{Type: graphql.Int},
			"cohesion":      &graphql.Field{Type: graphql.Float},
			"coupling":      &graphql.Field{Type: graphql.Float},
			"clustering":    &graphql.Field{Type: graphql.Float},
		},
	})

	fallback := graphql.NewObject(graphql.ObjectConfig{
		Name: "Fallback",
		Fields: graphql.Fields{
			"algorithm": &graphql.Field{Type: graphql.String},
			"reason":    &graphql.Field{Type: graphql.String},
			"error":     &graphql.Field{Type: graphql.String},
		},
	})

	parameters := graphql.NewObject(graphql.ObjectConfig{
		Name: "Parameters",
		Fields: graphql.Fields{
			"resolution":    &graphql.Field{Type: graphql.Float},
			"k":             &graphql.Field{Type: graphql.Int},
			"maxIterations": &graphql.Field{Type: graphql.Int},
		},
	})

	t.detection = graphql.NewObject(graphql.ObjectConfig{
		Name: "Detection",
		Fields: graphql.Fields{
			"algorithm":       &graphql.Field{Type: graphql.String},
			"requested":       &graphql.Field{Type: graphql.String},
			"modularity":      &graphql.Field{Type: graphql.Float},
			"numCommunities":  &graphql.Field{Type: graphql.Int},
			"partition":       &graphql.Field{Type: graphql.NewList(assignment)},
			"communities":     &graphql.Field{Type: graphql.NewList(communityType)},
			"recommendations": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"fallbacks":       &graphql.Field{Type: graphql.NewList(fallback)},
			"parameters":      &graphql.Field{Type: parameters},
		},
	})

	entry := graphql.NewObject(graphql.ObjectConfig{
		Name: "ComparisonEntry",
		Fields: graphql.Fields{
			"requested": &graphql.Field{Type: graphql.String},
			"error":     &graphql.Field{Type: graphql.String},
			"result":    &graphql.Field{Type: t.detection},
		},
	})

	t.comparison = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comparison",
		Fields: graphql.Fields{
			"results":        &graphql.Field{Type: graphql.NewList(entry)},
			"bestAlgorithm":  &graphql.Field{Type: graphql.String},
			"bestModularity": &graphql.Field{Type: graphql.Float},
		},
	})

	return t
}

func nodeMap(g *codegraph.Graph, n *codegraph.Node) (map[string]any, error) {
	attrs, err := json.Marshal(n.Attributes())
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes of %s: %w", n.ID(), err)
	}
	return map[string]any{
		"id":         n.ID(),
		"kind":       string(n.Kind()),
		"name":       n.Name(),
		"degree":     g.Degree(n.ID()),
		"neighbors":  g.Neighbors(n.ID()),
		"attributes": string(attrs),
	}, nil
}
