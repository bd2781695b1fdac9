package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-codegraph/pkg/algorithms"
	"github.com/dd0wney/cluso-codegraph/pkg/community"
)

func (r *Resolver) resolveGraph(p graphql.ResolveParams) (any, error) {
	g := r.Graph
	nodes := make([]map[string]any, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		m, err := nodeMap(g, n)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, m)
	}

	links := make([]map[string]any, 0, g.LinkCount())
	for i := 0; i < g.NodeCount(); i++ {
		for _, l := range g.Links(i) {
			if l.To < i {
				continue
			}
			links = append(links, map[string]any{
				"source": g.NodeAt(i).ID(),
				"target": g.NodeAt(l.To).ID(),
				"weight": l.Weight,
			})
		}
	}

	return map[string]any{
		"nodeCount":         g.NodeCount(),
		"edgeCount":         g.EdgeCount(),
		"linkCount":         g.LinkCount(),
		"components":        algorithms.ConnectedComponents(g).NumCommunities(),
		"triangles":         algorithms.CountTriangles(g).GlobalCount,
		"averageClustering": algorithms.AverageClusteringCoefficient(g),
		"nodes":             nodes,
		"links":             links,
	}, nil
}

func (r *Resolver) resolveBridges(p graphql.ResolveParams) (any, error) {
	limit, _ := p.Args["limit"].(int)
	ranked := algorithms.TopLinks(r.Graph, limit)
	out := make([]map[string]any, len(ranked))
	for i, l := range ranked {
		out[i] = map[string]any{
			"source":      l.Source,
			"target":      l.Target,
			"betweenness": l.Score,
		}
	}
	return out, nil
}

func (r *Resolver) resolveNode(p graphql.ResolveParams) (any, error) {
	id, _ := p.Args["id"].(string)
	n, ok := r.Graph.Node(id)
	if !ok {
		return nil, nil
	}
	return nodeMap(r.Graph, n)
}

func (r *Resolver) resolveAlgorithms(p graphql.ResolveParams) (any, error) {
	out := make([]map[string]any, len(community.FallbackOrder))
	for i, a := range community.FallbackOrder {
		out[i] = map[string]any{
			"name":      string(a),
			"available": r.Engine.Available(a),
		}
	}
	return out, nil
}

func (r *Resolver) resolveDetect(p graphql.ResolveParams) (any, error) {
	name, _ := p.Args["algorithm"].(string)
	alg, err := community.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	result, err := r.Engine.Detect(r.Graph, alg, parametersFromArgs(p.Args))
	if err != nil {
		return nil, err
	}
	return r.detectionMap(result), nil
}

func (r *Resolver) resolveCompare(p graphql.ResolveParams) (any, error) {
	var algs []community.Algorithm
	if raw, ok := p.Args["algorithms"].([]any); ok {
		names := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				names = append(names, s)
			}
		}
		parsed, err := community.ParseAlgorithms(names)
		if err != nil {
			return nil, err
		}
		algs = parsed
	}

	cmp, err := r.Engine.Compare(r.Graph, algs, parametersFromArgs(p.Args))
	if err != nil {
		return nil, err
	}

	results := make([]map[string]any, len(cmp.Entries))
	for i, entry := range cmp.Entries {
		m := map[string]any{"requested": string(entry.Requested)}
		if entry.Result != nil {
			m["result"] = r.detectionMap(entry.Result)
		} else {
			m["error"] = entry.Error
		}
		results[i] = m
	}
	return map[string]any{
		"results":        results,
		"bestAlgorithm":  cmp.BestAlgorithm,
		"bestModularity": cmp.BestModularity,
	}, nil
}

func parametersFromArgs(args map[string]any) community.Parameters {
	var params community.Parameters
	if v, ok := args["resolution"].(float64); ok {
		params.Resolution = v
	}
	if v, ok := args["k"].(int); ok {
		params.K = v
	}
	if v, ok := args["maxIterations"].(int); ok {
		params.MaxIterations = v
	}
	return params
}

func (r *Resolver) detectionMap(result *community.DetectionResult) map[string]any {
	partition := make([]map[string]any, 0, len(result.Partition))
	for _, id := range r.Graph.NodeIDs() {
		if c, ok := result.Partition[id]; ok {
			partition = append(partition, map[string]any{"node": id, "community": c})
		}
	}

	communities := make([]map[string]any, 0, result.NumCommunities)
	if result.Statistics != nil {
		for _, c := range result.Statistics.Communities {
			communities = append(communities, map[string]any{
				"id":            c.ID,
				"size":          c.Size,
				"members":       c.Members,
				"internalEdges": c.InternalEdges,
				"externalEdges": c.ExternalEdges,
				"totalEdges":    c.TotalEdges,
				"cohesion":      c.Cohesion,
				"coupling":      c.Coupling,
				"clustering":    c.Clustering,
			})
		}
	}

	fallbacks := make([]map[string]any, len(result.Fallbacks))
	for i, f := range result.Fallbacks {
		fallbacks[i] = map[string]any{
			"algorithm": string(f.Algorithm),
			"reason":    f.Reason,
			"error":     f.Error,
		}
	}

	return map[string]any{
		"algorithm":       string(result.Algorithm),
		"requested":       string(result.Requested),
		"modularity":      result.Modularity,
		"numCommunities":  result.NumCommunities,
		"partition":       partition,
		"communities":     communities,
		"recommendations": r.Advisor.Recommend(result.Statistics),
		"fallbacks":       fallbacks,
		"parameters": map[string]any{
			"resolution":    result.Parameters.Resolution,
			"k":             result.Parameters.K,
			"maxIterations": result.Parameters.MaxIterations,
		},
	}
}
