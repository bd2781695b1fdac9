package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-codegraph/pkg/report"
)

const pathDocument = `{
  "nodes": [
    {"id": "A", "kind": "module", "attributes": {"name": "alpha"}},
    {"id": "B", "kind": "module"}, {"id": "C", "kind": "class"}, {"id": "D", "kind": "class"},
    {"id": "E", "kind": "function"}, {"id": "F", "kind": "function"},
    {"id": "G", "kind": "function"}, {"id": "H", "kind": "function"}
  ],
  "edges": [
    {"source": "A", "target": "B", "kind": "import"},
    {"source": "B", "target": "C", "kind": "compose"},
    {"source": "C", "target": "D", "kind": "inherit"},
    {"source": "D", "target": "E", "kind": "call"},
    {"source": "E", "target": "F", "kind": "call"},
    {"source": "F", "target": "G", "kind": "call"},
    {"source": "G", "target": "H", "kind": "call", "weight": 1.0}
  ]
}`

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_Detect(t *testing.T) {
	out, err := runCLI(t, pathDocument, "-graph", "-", "-algorithm", "label_propagation", "-describe", "-min-size", "4")
	require.NoError(t, err)

	var decoded struct {
		Algorithm      string          `json:"algorithm"`
		NumCommunities int             `json:"num_communities"`
		Partition      map[string]int  `json:"partition"`
		Descriptions   []report.Digest `json:"descriptions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "label_propagation", decoded.Algorithm)
	assert.Equal(t, 2, decoded.NumCommunities)
	assert.Len(t, decoded.Partition, 8)
	require.Len(t, decoded.Descriptions, 2)
	assert.Equal(t, "alpha", decoded.Descriptions[0].MemberViews[0].Name)
}

func TestRun_Compare(t *testing.T) {
	out, err := runCLI(t, pathDocument, "-graph", "-", "-compare", "-algorithms", "girvan_newman, louvain")
	require.NoError(t, err)

	var decoded report.ComparisonReport
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Entries, 2)
	assert.Equal(t, "girvan_newman", decoded.Entries[0].Requested)
	assert.Equal(t, "girvan_newman", decoded.BestAlgorithm)
}

func TestRun_ConfigAndOutputs(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "graph.json")
	configPath := filepath.Join(dir, "config.yaml")
	snapshotPath := filepath.Join(dir, "report.snap")
	metricsPath := filepath.Join(dir, "metrics.txt")
	require.NoError(t, os.WriteFile(graphPath, []byte(pathDocument), 0o600))
	require.NoError(t, os.WriteFile(configPath, []byte("detection:\n  algorithm: leiden\n  disabled: [leiden]\n"), 0o600))

	out, err := runCLI(t, "", "-graph", graphPath, "-config", configPath,
		"-snapshot", snapshotPath, "-metrics", metricsPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"algorithm": "louvain"`)

	data, err := os.ReadFile(snapshotPath)
	require.NoError(t, err)
	r, err := report.DecodeCompressed(data)
	require.NoError(t, err)
	assert.Equal(t, "louvain", r.Algorithm)
	require.Len(t, r.Fallbacks, 1)

	text, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(text), "codegraph_fallbacks_total")
	assert.Contains(t, string(text), "codegraph_graph_nodes 8")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"missing graph flag", "", nil},
		{"unknown algorithm", pathDocument, []string{"-graph", "-", "-algorithm", "spectral"}},
		{"negative resolution", pathDocument, []string{"-graph", "-", "-resolution", "-1"}},
		{"empty graph", `{"nodes": [], "edges": []}`, []string{"-graph", "-"}},
		{"dangling edge", `{"nodes": [{"id": "A", "kind": "module"}], "edges": [{"source": "A", "target": "Z", "kind": "call"}]}`, []string{"-graph", "-"}},
		{"unknown compare entry", pathDocument, []string{"-graph", "-", "-compare", "-algorithms", "fast"}},
		{"missing file", "", []string{"-graph", "/nonexistent/graph.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.stdin, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("  "))
	assert.Equal(t, []string{"leiden", "louvain"}, splitList("leiden, louvain,,"))
}
