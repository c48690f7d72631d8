// Package errors provides structured, coded errors for vdom tooling.
//
// Library code returns these errors when input is invalid (tree files,
// duplicate keys, malformed mutation batches, configuration). The CLI prints
// them with Format, which shows the source location of the offending tree
// file line when one is known.
//
// # Error Categories
//
//   - tree: invalid node descriptions (duplicate keys, malformed nodes)
//   - host: host tree capability failures
//   - protocol: mutation journal encoding/decoding
//   - config: vdom.json / vdom.toml problems
//   - archive: journal archive sinks
//   - cli: command line usage
//
// # Usage
//
//	err := errors.New("E101").
//	    WithLocation("trees/list.yaml", 12, 7).
//	    WithDetail(`key "A" appears 2 times under <ul>`)
//
//	fmt.Println(err.Format())
package errors
