package graph

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
)

// Viewer visual contract: author nodes blue, mentioned-only nodes red,
// dark canvas, directed edges.
const (
	AuthorColor    = "#00a1e4"
	MentionedColor = "#ff756e"
	viewerBG       = "#222222"
)

type viewerNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	Color string `json:"color"`
	Group int    `json:"group"`
}

type viewerEdge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value int    `json:"value"`
}

var viewerTmpl = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Mention Network</title>
<script src="https://unpkg.com/vis-network/standalone/umd/vis-network.min.js"></script>
<style>
  body { margin: 0; background-color: {{.BG}}; }
  #network { width: 100%; height: 750px; }
</style>
</head>
<body>
<div id="network"></div>
<script>
  var nodes = new vis.DataSet({{.Nodes}});
  var edges = new vis.DataSet({{.Edges}});
  var container = document.getElementById("network");
  var options = {
    nodes: { font: { color: "white" } },
    edges: { arrows: "to", color: { opacity: 0.7 } },
    physics: { stabilization: true }
  };
  new vis.Network(container, { nodes: nodes, edges: edges }, options);
</script>
</body>
</html>
`))

// WriteViewer renders the graph as a self-contained interactive HTML
// document. Author nodes and mentioned-only nodes are distinguished by
// color; node groups carry the community assignment.
func WriteViewer(g *Graph, path string) error {
	nodes := make([]viewerNode, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		vn := viewerNode{
			ID:    n.ID,
			Label: n.ID,
			Color: MentionedColor,
			Title: "Mentioned User: @" + n.ID,
			Group: n.Community,
		}
		if n.Author {
			vn.Color = AuthorColor
			vn.Title = "Author ID: " + n.ID
		}
		nodes = append(nodes, vn)
	}

	edges := make([]viewerEdge, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		edges = append(edges, viewerEdge{From: e.From, To: e.To, Value: e.Weight})
	}

	nodesJSON, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("marshal viewer nodes: %w", err)
	}
	edgesJSON, err := json.Marshal(edges)
	if err != nil {
		return fmt.Errorf("marshal viewer edges: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create viewer %s: %w", path, err)
	}
	defer f.Close()

	data := struct {
		BG           string
		Nodes, Edges template.JS
	}{
		BG:    viewerBG,
		Nodes: template.JS(nodesJSON),
		Edges: template.JS(edgesJSON),
	}
	if err := viewerTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render viewer %s: %w", path, err)
	}
	return nil
}
