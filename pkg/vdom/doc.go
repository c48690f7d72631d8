// Package vdom provides the node model for the reconciler.
//
// A VNode is an immutable description of one node in a rendered tree: either
// an element (tag, optional key, props, children) or a text node. VNodes are
// pure values; building them has no effect on any host tree. The reconcile
// package consumes VNode trees to mount and patch a host tree.
//
// # Building trees
//
// Create mirrors the classic hyperscript signature:
//
//	Create("ul", Props{"class": String("list")},
//	    Create("li", Props{"key": String("a")}, "A"),
//	    Create("li", Props{"key": String("b")}, "B"),
//	)
//
// The element factories accept attributes and children in any order:
//
//	Ul(Class("list"),
//	    Li(Key("a"), StyleProp("background", "red"), "A"),
//	    Li(Key("b"), "B"),
//	)
//
// # Props
//
// Props map names to a closed Value variant: string, number, bool or a nested
// Style mapping. The "style" prop is always a Style; a string given for it is
// parsed as inline CSS declarations.
//
// # Keys
//
// A key identifies a node among its siblings across renders. Keys are pulled
// out of props at construction and never reach the host. Duplicate keys among
// siblings are invalid input; Validate reports them.
package vdom
