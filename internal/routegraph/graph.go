// Package routegraph models the inter-city road network as a weighted
// directed graph with two weight channels (driving distance and driving
// duration) and answers shortest-path queries from a precomputed
// all-pairs Dijkstra index.
package routegraph

import (
	"container/heap"
	"math"
	"sort"
	"sync"

	"trip-planner-service/internal/domain"
)

// Channel selects which edge weight a query runs against.
type Channel int

const (
	Distance Channel = iota // kilometres
	Duration                // minutes
)

// EdgeWeight holds both weight channels for a direct edge.
type EdgeWeight struct {
	KM      float64
	Minutes float64
}

// Neighbor is a direct edge out of a city.
type Neighbor struct {
	City   string
	Weight EdgeWeight
}

// Graph is an immutable road network. Construction precomputes
// single-source shortest paths from every city on both channels, since the
// planner issues many queries per run.
type Graph struct {
	cities    []string
	citySet   map[string]struct{}
	adjacency map[string]map[string]EdgeWeight
	neighbors map[string][]Neighbor
	shortest  map[Channel]map[string]map[string]float64
}

// New builds a graph from raw distance records. Missing entries and
// records without a known route become infinite weights, which removes
// the edge for shortest-path purposes.
func New(records map[string]map[string]domain.DistanceRecord) *Graph {
	g := &Graph{
		adjacency: make(map[string]map[string]EdgeWeight, len(records)),
		neighbors: make(map[string][]Neighbor, len(records)),
	}

	for origin, destinations := range records {
		row := make(map[string]EdgeWeight, len(destinations))
		for dest, record := range destinations {
			w := EdgeWeight{KM: math.Inf(1), Minutes: math.Inf(1)}
			if record.Usable() {
				w = EdgeWeight{KM: record.DistanceKM, Minutes: record.DurationMinutes}
			}
			row[dest] = w
		}
		g.adjacency[origin] = row
	}

	// The city set is the union of origins and destinations, so one-way
	// edges into a city without outgoing records still resolve.
	g.citySet = make(map[string]struct{}, len(g.adjacency))
	for origin, row := range g.adjacency {
		g.citySet[origin] = struct{}{}
		for dest := range row {
			g.citySet[dest] = struct{}{}
		}
	}
	g.cities = make([]string, 0, len(g.citySet))
	for city := range g.citySet {
		g.cities = append(g.cities, city)
	}
	sort.Strings(g.cities)

	// Sorted neighbor lists keep every traversal order-stable, so planning
	// runs are reproducible under a fixed random seed.
	for origin, row := range g.adjacency {
		ns := make([]Neighbor, 0, len(row))
		for dest, w := range row {
			ns = append(ns, Neighbor{City: dest, Weight: w})
		}
		sort.Slice(ns, func(i, j int) bool { return ns[i].City < ns[j].City })
		g.neighbors[origin] = ns
	}

	g.shortest = map[Channel]map[string]map[string]float64{
		Distance: g.allPairs(Distance),
		Duration: g.allPairs(Duration),
	}

	return g
}

// Cities returns every city in the graph, sorted.
func (g *Graph) Cities() []string {
	out := make([]string, len(g.cities))
	copy(out, g.cities)
	return out
}

// HasCity reports whether the city appears anywhere in the graph.
func (g *Graph) HasCity(city string) bool {
	_, ok := g.citySet[city]
	return ok
}

// Neighbors returns the direct edges out of a city in stable order.
func (g *Graph) Neighbors(city string) []Neighbor {
	return g.neighbors[city]
}

// ShortestFrom returns the precomputed minimal accumulated weight from the
// origin to every city on the given channel (+Inf when unreachable).
// The result is nil when the origin is not in the graph.
func (g *Graph) ShortestFrom(origin string, ch Channel) map[string]float64 {
	return g.shortest[ch][origin]
}

// Shortest returns the minimal accumulated weight between two cities on
// the given channel, or +Inf when no path exists.
func (g *Graph) Shortest(origin, dest string, ch Channel) float64 {
	row := g.ShortestFrom(origin, ch)
	if row == nil {
		return math.Inf(1)
	}
	if d, ok := row[dest]; ok {
		return d
	}
	return math.Inf(1)
}

// allPairs runs the single-source computation from every city with bounded
// concurrency. City counts are in the tens, so this is a startup nicety
// rather than a correctness requirement.
func (g *Graph) allPairs(ch Channel) map[string]map[string]float64 {
	result := make(map[string]map[string]float64, len(g.cities))

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, 4)

	for _, origin := range g.cities {
		wg.Add(1)
		go func(origin string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			dist := g.dijkstra(origin, ch)

			mu.Lock()
			result[origin] = dist
			mu.Unlock()
		}(origin)
	}

	wg.Wait()
	return result
}

// dijkstra computes single-source shortest weights over non-negative
// edges, skipping infinite ones, with a lazy-decrease-key min-heap.
func (g *Graph) dijkstra(origin string, ch Channel) map[string]float64 {
	dist := make(map[string]float64, len(g.cities))
	for _, city := range g.cities {
		dist[city] = math.Inf(1)
	}
	dist[origin] = 0

	pq := &minHeap{{city: origin, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(heapItem)
		if item.dist > dist[item.city] {
			continue // stale entry
		}
		for _, n := range g.neighbors[item.city] {
			w := n.Weight.KM
			if ch == Duration {
				w = n.Weight.Minutes
			}
			if math.IsInf(w, 1) {
				continue
			}
			if next := item.dist + w; next < dist[n.City] {
				dist[n.City] = next
				heap.Push(pq, heapItem{city: n.City, dist: next})
			}
		}
	}
	return dist
}

type heapItem struct {
	city string
	dist float64
}

type minHeap []heapItem

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(heapItem)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
