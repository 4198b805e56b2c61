// Package metrics records query and feedback statistics with Prometheus
// instruments registered on a private registry.
//
// A Collector plugs into the ranking engine as its monitor:
//
//	c := metrics.NewCollector()
//	engine, err := search.NewEngine(corpus, search.WithMonitor(c))
//	...
//	fmt.Println(c.Summary().AvgLatency)
package metrics
