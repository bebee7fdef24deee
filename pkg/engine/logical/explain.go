package logical

import "strings"

// Format renders the plan as an EXPLAIN tree, one line per node. The
// root has no connector; children use "└── " when they are the last
// child at their level and "├── " otherwise; indentation continues with
// "    " under a last child and "│   " otherwise. In verbose mode every
// line appends the node's output schema as name:type pairs in brackets.
//
//	Projection: #id, #name
//	└── Filter: (#state = 'CO')
//	    └── Scan: employee.csv; projection=None
func Format(plan Plan, verbose bool) string {
	var sb strings.Builder
	sb.WriteString(formatLine(plan, verbose))
	children := plan.Children()
	for i, child := range children {
		writeSubtree(&sb, child, "", i == len(children)-1, verbose)
	}
	return sb.String()
}

func formatLine(plan Plan, verbose bool) string {
	if !verbose {
		return plan.String()
	}
	return plan.String() + "  [" + plan.Schema().String() + "]"
}

func writeSubtree(sb *strings.Builder, plan Plan, prefix string, last bool, verbose bool) {
	connector := "├── "
	if last {
		connector = "└── "
	}
	sb.WriteString("\n" + prefix + connector + formatLine(plan, verbose))

	childPrefix := prefix + "│   "
	if last {
		childPrefix = prefix + "    "
	}
	children := plan.Children()
	for i, child := range children {
		writeSubtree(sb, child, childPrefix, i == len(children)-1, verbose)
	}
}
