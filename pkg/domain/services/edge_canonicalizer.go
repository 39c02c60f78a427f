package services

import "github.com/tbadun/co327-corona-lp/pkg/domain/entities"

// DuplicateEdge records a shipping row that lost canonicalization to another row for the same lane
type DuplicateEdge struct {
	Kept      entities.Edge
	Discarded entities.Edge
}

// CanonicalizeEdges collapses shipping rows that describe the same lane.
// The cheapest row wins; on equal cost the larger capacity wins. Lanes keep
// the position of their first appearance so the result does not depend on
// which duplicate came first.
func CanonicalizeEdges(rows []entities.ShippingRecord) ([]entities.Edge, []DuplicateEdge) {
	index := make(map[entities.EdgeID]int, len(rows))
	edges := make([]entities.Edge, 0, len(rows))
	var duplicates []DuplicateEdge

	for _, row := range rows {
		edge := entities.Edge{
			Origin:      row.Origin,
			Destination: row.Destination,
			Capacity:    row.Capacity,
			Cost:        row.Cost,
		}
		pos, exists := index[edge.ID()]
		if !exists {
			index[edge.ID()] = len(edges)
			edges = append(edges, edge)
			continue
		}
		if edge.Preferred(edges[pos]) {
			duplicates = append(duplicates, DuplicateEdge{Kept: edge, Discarded: edges[pos]})
			edges[pos] = edge
		} else {
			duplicates = append(duplicates, DuplicateEdge{Kept: edges[pos], Discarded: edge})
		}
	}

	return edges, duplicates
}
