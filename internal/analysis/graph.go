package analysis

import (
	"sort"
	"strconv"
	"time"

	"github.com/danizd/licitamonitor/internal/model"
)

// GraphWindow is the trailing window of consortium awards the graph covers.
const GraphWindow = 2 * 365 * 24 * time.Hour

const (
	groupConsortium   = 1
	groupTopPerformer = 2
)

type pairKey struct {
	a, b int64 // a < b, canonical order
}

// BuildGraph turns winning-UTE participation rows into a simple undirected
// weighted graph. Edge weight is the number of distinct lots both companies
// won together; pairs are keyed in canonical order so (A,B) and (B,A)
// accumulate on one edge and (A,A) never appears. Top performers outside any
// consortium are still emitted as isolated nodes.
func BuildGraph(parts []model.ParticipationFact, top []model.Competitor, now time.Time) model.GraphData {
	cutoff := now.Add(-GraphWindow)

	byLot := make(map[int64][]model.ParticipationFact)
	for _, p := range parts {
		if p.AwardedAt.Before(cutoff) {
			continue
		}
		byLot[p.LotResultID] = append(byLot[p.LotResultID], p)
	}

	weights := make(map[pairKey]int)
	names := make(map[int64]string)
	wins := make(map[int64]int)
	for _, members := range byLot {
		members = dedupMembers(members)
		for _, m := range members {
			names[m.BidderID] = m.BidderName
			wins[m.BidderID]++
		}
		// pairwise expansion; k is a handful of consortium members
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := members[i].BidderID, members[j].BidderID
				if a == b {
					continue
				}
				if a > b {
					a, b = b, a
				}
				weights[pairKey{a, b}]++
			}
		}
	}

	inEdge := make(map[int64]bool)
	edges := make([]model.GraphEdge, 0, len(weights))
	for k, w := range weights {
		inEdge[k.a], inEdge[k.b] = true, true
		edges = append(edges, model.GraphEdge{
			Source: nodeID(k.a),
			Target: nodeID(k.b),
			Weight: w,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight > edges[j].Weight
		}
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	nodes := make([]model.GraphNode, 0, len(inEdge)+len(top))
	for id := range inEdge {
		nodes = append(nodes, model.GraphNode{
			ID:    nodeID(id),
			Name:  names[id],
			Group: groupConsortium,
			Wins:  wins[id],
		})
	}
	for _, c := range top {
		if inEdge[c.ID] {
			continue
		}
		nodes = append(nodes, model.GraphNode{
			ID:     nodeID(c.ID),
			Name:   c.Name,
			Group:  groupTopPerformer,
			Wins:   c.Wins,
			IsPyme: c.IsPyme,
		})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Wins != nodes[j].Wins {
			return nodes[i].Wins > nodes[j].Wins
		}
		return nodes[i].ID < nodes[j].ID
	})

	return model.GraphData{Nodes: nodes, Edges: edges}
}

func dedupMembers(members []model.ParticipationFact) []model.ParticipationFact {
	seen := make(map[int64]bool, len(members))
	out := members[:0]
	for _, m := range members {
		if seen[m.BidderID] {
			continue
		}
		seen[m.BidderID] = true
		out = append(out, m)
	}
	return out
}

func nodeID(bidderID int64) string {
	return strconv.FormatInt(bidderID, 10)
}
