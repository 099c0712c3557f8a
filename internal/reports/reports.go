// Package reports computes the dashboard rollups. Every function here is a
// pure function of its input slice: no I/O, no retained state, identical
// output for identical input.
package reports

import (
	"sort"
	"strings"

	"laundry-backend/internal/models"
)

// Summary holds the headline KPIs for a filtered set of entries.
type Summary struct {
	FactoryShipPct   float64 `json:"factory_ship_pct"`
	UKShipPct        float64 `json:"uk_ship_pct"`
	TotalShipmentQty int     `json:"total_shipment_qty"`
}

// LaundryPerformance is one per-laundry rollup row.
type LaundryPerformance struct {
	LaundryName          string  `json:"laundry_name"`
	FactoryOrderQty      int     `json:"factory_order_qty"`
	CustomerOrderQty     int     `json:"customer_order_qty"`
	ShipmentQty          int     `json:"shipment_qty"`
	ShipmentVsFactoryPct float64 `json:"shipment_vs_factory_pct"`
	ShipmentVsUKPct      float64 `json:"shipment_vs_uk_pct"`
}

// IssueCount is one (laundry, issue) frequency row.
type IssueCount struct {
	LaundryName string `json:"laundry_name"`
	Issue       string `json:"issue"`
	Count       int    `json:"count"`
}

// pct returns num/den*100, or 0 for a zero denominator. Never NaN.
func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

// Filter keeps entries matching the exact factory and laundry names; an
// empty filter value matches everything.
func Filter(entries []models.Entry, factory, laundry string) []models.Entry {
	if factory == "" && laundry == "" {
		return entries
	}
	var out []models.Entry
	for _, e := range entries {
		if factory != "" && e.FactoryName != factory {
			continue
		}
		if laundry != "" && e.LaundryName != laundry {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SummaryKPIs sums the order and shipment quantities across entries and
// derives the two shipment percentages.
func SummaryKPIs(entries []models.Entry) Summary {
	var factoryOrder, ukOrder, shipment int
	for _, e := range entries {
		factoryOrder += e.FactoryOrderQty
		ukOrder += e.CustomerOrderQty
		shipment += e.TotalShipmentQty
	}
	return Summary{
		FactoryShipPct:   pct(shipment, factoryOrder),
		UKShipPct:        pct(shipment, ukOrder),
		TotalShipmentQty: shipment,
	}
}

// PerLaundryPerformance groups entries by laundry name, sums quantities per
// group and sorts descending by shipment-vs-factory percentage. Ties keep
// first-seen order.
func PerLaundryPerformance(entries []models.Entry) []LaundryPerformance {
	index := make(map[string]int)
	var rows []LaundryPerformance
	for _, e := range entries {
		i, ok := index[e.LaundryName]
		if !ok {
			i = len(rows)
			index[e.LaundryName] = i
			rows = append(rows, LaundryPerformance{LaundryName: e.LaundryName})
		}
		rows[i].FactoryOrderQty += e.FactoryOrderQty
		rows[i].CustomerOrderQty += e.CustomerOrderQty
		rows[i].ShipmentQty += e.TotalShipmentQty
	}

	for i := range rows {
		rows[i].ShipmentVsFactoryPct = pct(rows[i].ShipmentQty, rows[i].FactoryOrderQty)
		rows[i].ShipmentVsUKPct = pct(rows[i].ShipmentQty, rows[i].CustomerOrderQty)
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].ShipmentVsFactoryPct > rows[b].ShipmentVsFactoryPct
	})
	return rows
}

// TopIssues flattens each entry's up-to-four issue mentions, counts them per
// (laundry, issue) pair and keeps the topN issues per laundry. Rows come out
// grouped by laundry name ascending, counts descending within a laundry.
func TopIssues(entries []models.Entry, topN int) []IssueCount {
	type key struct{ laundry, issue string }
	counts := make(map[key]int)
	for _, e := range entries {
		laundry := strings.TrimSpace(e.LaundryName)
		for _, issue := range []string{e.Issue1, e.Issue2, e.Issue3, e.OtherIssueText} {
			issue = strings.TrimSpace(issue)
			if issue == "" {
				continue
			}
			counts[key{laundry, issue}]++
		}
	}

	perLaundry := make(map[string][]IssueCount)
	for k, n := range counts {
		perLaundry[k.laundry] = append(perLaundry[k.laundry], IssueCount{
			LaundryName: k.laundry,
			Issue:       k.issue,
			Count:       n,
		})
	}

	laundries := make([]string, 0, len(perLaundry))
	for name := range perLaundry {
		laundries = append(laundries, name)
	}
	sort.Strings(laundries)

	var out []IssueCount
	for _, name := range laundries {
		rows := perLaundry[name]
		sort.Slice(rows, func(a, b int) bool {
			if rows[a].Count != rows[b].Count {
				return rows[a].Count > rows[b].Count
			}
			return rows[a].Issue < rows[b].Issue
		})
		if len(rows) > topN {
			rows = rows[:topN]
		}
		out = append(out, rows...)
	}
	return out
}
