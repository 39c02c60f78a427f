package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tbadun/co327-corona-lp/pkg/domain/entities"
)

// Objective prices every aggregate shipment at its edge cost and every
// day-zero seed at its reserve edge cost. Zero costs are omitted.
//
// Seeds only enter day-1 demand rows, the one place nothing else can reach,
// so their price does not change the optimal plan. It makes the objective
// count day-zero reserve draw at the same rate as later reserve shipments.
func Objective(topo *Topology, vars []entities.VarKey) (map[entities.VarKey]decimal.Decimal, error) {
	objective := make(map[entities.VarKey]decimal.Decimal)
	for _, v := range vars {
		if v.Kind != entities.TotalShipped && v.Kind != entities.ReserveSeed {
			continue
		}
		edge, ok := topo.Edge(v.Edge())
		if !ok {
			return nil, fmt.Errorf("variable %s: edge %s: %w", v, v.Edge(), entities.ErrUnknownLocation)
		}
		if edge.Cost.IsZero() {
			continue
		}
		objective[v] = edge.Cost
	}
	return objective, nil
}
