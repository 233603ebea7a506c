package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/born-ml/safeinfer/internal/graph"
	"github.com/born-ml/safeinfer/internal/planner"
	"github.com/born-ml/safeinfer/internal/tensor"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	return table
}

// renderTensors prints the given arena slots.
func renderTensors(w io.Writer, g *graph.Graph, tensors []*tensor.Tensor, ids []graph.TensorID) {
	var data [][]string
	for _, id := range ids {
		data = append(data, []string{
			fmt.Sprintf("t%d", id),
			g.TensorShapes[id].String(),
			formatValues(tensors[id].Data()),
		})
	}

	table := newTable(w, "TENSOR", "SHAPE", "VALUES")
	table.AppendBulk(data)
	table.Render()
}

// renderPlan prints order one node per row.
func renderPlan(w io.Writer, g *graph.Graph, order planner.Plan) {
	var data [][]string
	for step, nid := range order {
		node := &g.Nodes[nid]
		data = append(data, []string{
			strconv.Itoa(step),
			strconv.Itoa(int(nid)),
			node.Code().String(),
			formatIDs(node.Inputs),
			formatIDs(node.Outputs),
		})
	}

	table := newTable(w, "STEP", "NODE", "OP", "INPUTS", "OUTPUTS")
	table.AppendBulk(data)
	table.Render()
}

func formatValues(values []float32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func formatIDs(ids []graph.TensorID) string {
	if len(ids) == 0 {
		return "-"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("t%d", id)
	}
	return strings.Join(parts, ",")
}
