package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/htmlhost"
	"github.com/vango-dev/vdom/pkg/journal"
	"github.com/vango-dev/vdom/pkg/memhost"
	"github.com/vango-dev/vdom/pkg/protocol"
	"github.com/vango-dev/vdom/pkg/reconcile"
	"github.com/vango-dev/vdom/pkg/treefile"
	"github.com/vango-dev/vdom/pkg/vdom"
)

type patchOptions struct {
	html      bool
	mutations bool
	wire      bool
}

func patchCmd() *cobra.Command {
	var opts patchOptions

	cmd := &cobra.Command{
		Use:   "patch <old> <new>",
		Short: "Diff two tree files",
		Long: `Render the old tree, patch it to the new one and report what changed.

Tree files are YAML or JSON documents. The output shows the markup before
and after the patch and the host operation counts of the patch pass.

Examples:
  vdom patch old.yaml new.yaml
  vdom patch old.yaml new.yaml --mutations
  vdom patch old.yaml new.yaml --html --wire`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.html, "html", false, "Render through the HTML host instead of the in-memory host")
	cmd.Flags().BoolVarP(&opts.mutations, "mutations", "m", false, "List the recorded mutations")
	cmd.Flags().BoolVar(&opts.wire, "wire", false, "Print the encoded batch size")

	return cmd
}

// loadTree reads and validates a tree file.
func loadTree(path string) (*vdom.VNode, error) {
	tree, err := treefile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := vdom.Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// target is a host with a container and a way to print it.
type target struct {
	host      host.Host
	container host.Node
	markup    func() (string, error)
}

func newTarget(useHTML bool) target {
	if useHTML {
		h := htmlhost.New()
		root := h.NewContainer("body")
		return target{
			host:      h,
			container: root,
			markup:    func() (string, error) { return htmlhost.InnerHTML(root) },
		}
	}
	d := memhost.New()
	root := d.NewContainer("body")
	return target{
		host:      d,
		container: root,
		markup:    func() (string, error) { return memhost.InnerMarkup(root), nil },
	}
}

func runPatch(w io.Writer, oldPath, newPath string, opts patchOptions) error {
	oldTree, err := loadTree(oldPath)
	if err != nil {
		return err
	}
	newTree, err := loadTree(newPath)
	if err != nil {
		return err
	}

	t := newTarget(opts.html)
	j := journal.New(t.host)
	j.Bind(t.container)
	r := reconcile.New(j)

	inst := r.Render(t.container, oldTree)
	j.Flush()
	before, err := t.markup()
	if err != nil {
		return err
	}

	r.Patch(inst, newTree)
	stats := r.LastPass()
	batch := j.Flush()
	after, err := t.markup()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "before: %s\n", before)
	fmt.Fprintf(w, "after:  %s\n", after)
	fmt.Fprintln(w)
	printStats(w, stats)

	if batch == nil {
		fmt.Fprintln(w, "\nno mutations")
		return nil
	}
	if opts.wire {
		frame := protocol.NewMutationsFrame(batch).Encode()
		fmt.Fprintf(w, "\nwire: %d mutations, %d bytes\n", len(batch.Mutations), len(frame))
	}
	if opts.mutations {
		fmt.Fprintln(w)
		for _, m := range batch.Mutations {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
	return nil
}

func printStats(w io.Writer, s reconcile.Stats) {
	rows := []struct {
		name string
		n    int
	}{
		{"mounted", s.Mounted},
		{"inserted", s.Inserted},
		{"moved", s.Moved},
		{"removed", s.Removed},
		{"replaced", s.Replaced},
		{"cleared", s.Cleared},
		{"text", s.TextSet},
		{"props set", s.PropsSet},
		{"props removed", s.PropsRemoved},
		{"style", s.StyleSet},
	}
	for _, row := range rows {
		if row.n > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", row.name, row.n)
		}
	}
	fmt.Fprintf(w, "  %-14s %d\n", "host ops", s.HostOps())
}
