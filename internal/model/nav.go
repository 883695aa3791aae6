package model

// NavNode is a closed tagged union describing the console's navigation tree.
// The sealed marker keeps UI code from inventing node shapes with untyped
// field access; rendering switches exhaustively on the two variants.
type NavNode interface{ navNode() }

type NavLeaf struct {
	Title    string
	Resource Resource
}

type NavGroup struct {
	Title    string
	Children []NavNode
}

func (NavLeaf) navNode()  {}
func (NavGroup) navNode() {}

// DefaultNav is the console sidebar. Leaves map one-to-one onto the remote
// collections; groups are purely presentational.
func DefaultNav() []NavNode {
	return []NavNode{
		NavGroup{Title: "Marketplace", Children: []NavNode{
			NavLeaf{Title: "Properties", Resource: ResourceProperties},
			NavLeaf{Title: "Subscriptions", Resource: ResourceSubscriptions},
		}},
		NavGroup{Title: "Accounts", Children: []NavNode{
			NavLeaf{Title: "Users", Resource: ResourceUsers},
		}},
	}
}

// NavLeaves flattens a nav tree into its leaves in render order.
func NavLeaves(nodes []NavNode) []NavLeaf {
	var out []NavLeaf
	for _, n := range nodes {
		switch t := n.(type) {
		case NavLeaf:
			out = append(out, t)
		case NavGroup:
			out = append(out, NavLeaves(t.Children)...)
		}
	}
	return out
}
