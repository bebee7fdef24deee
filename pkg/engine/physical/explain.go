package physical

import "strings"

// Format renders the operator tree as an EXPLAIN tree using the same
// connector layout as the logical printer: root without a connector,
// "└── "/"├── " for children and "    "/"│   " continuation. Verbose
// mode appends each node's output schema in brackets.
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
