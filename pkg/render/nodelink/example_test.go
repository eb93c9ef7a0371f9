package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/render/nodelink"
)

func ExampleToDOT() {
	nodes := []chart.Node{{ID: "app"}, {ID: "database"}, {ID: "auth"}}
	links := []chart.Link{{Source: "app", Target: "database", Value: 20}, {Source: "app", Target: "auth"}}

	dot := nodelink.ToDOT(nodes, links, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "app" -> "database" [penwidth=2];
	// "app" -> "auth" [penwidth=1];
}
