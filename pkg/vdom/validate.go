package vdom

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/vango-dev/vdom/internal/errors"
)

// Validate checks a tree for input the reconciler does not define behavior
// for. It returns the first problem found in document order:
//
//   - E101 when two children of one element share a key
//   - E102 when a node is malformed (empty tag, text node with element
//     fields, nil child)
//
// The reconciler itself never calls Validate; duplicate keys are resolved
// last-wins there.
func Validate(v *VNode) error {
	return validate(v, "")
}

func validate(v *VNode, path string) error {
	if v == nil {
		return errors.New("E102").WithDetailf("nil node at %s", pathOrRoot(path))
	}

	switch v.Kind {
	case KindText:
		if v.Tag != "" || v.Key != "" || len(v.Props) > 0 || len(v.Children) > 0 {
			return errors.New("E102").WithDetailf("text node at %s carries element fields", pathOrRoot(path))
		}
		return nil
	case KindElement:
	default:
		return errors.New("E102").WithDetailf("unknown node kind %d at %s", v.Kind, pathOrRoot(path))
	}

	if v.Tag == "" {
		return errors.New("E102").WithDetailf("element at %s has an empty tag", pathOrRoot(path))
	}
	if _, ok := v.Props[KeyProp]; ok {
		return errors.New("E102").WithDetailf("<%s> at %s has a key prop; use VNode.Key", v.Tag, pathOrRoot(path))
	}

	if dups := DuplicateKeys(v.Children); len(dups) > 0 {
		return errors.New("E101").WithDetailf("<%s> at %s repeats key(s) %s",
			v.Tag, pathOrRoot(path), strings.Join(dups, ", "))
	}

	here := path + "/" + v.Tag
	for i, child := range v.Children {
		if err := validate(child, here+"["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}
	return nil
}

// DuplicateKeys returns the keys that appear more than once among children,
// in order of first appearance. Unkeyed children are ignored.
func DuplicateKeys(children []*VNode) []string {
	keys := lo.FilterMap(children, func(c *VNode, _ int) (string, bool) {
		if c == nil {
			return "", false
		}
		return c.Key, c.HasKey()
	})
	return lo.FindDuplicates(keys)
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
