package scan

import (
	"fmt"
	"sort"
	"strings"
)

// maxTreeEntries caps how many children one directory renders before the
// remainder is summarized.
const maxTreeEntries = 12

// treeNode represents a node in a directory tree.
type treeNode struct {
	name     string
	children map[string]*treeNode
	isFile   bool
}

func newTreeNode(name string) *treeNode {
	return &treeNode{
		name:     name,
		children: make(map[string]*treeNode),
	}
}

// buildTree constructs a directory tree from slash-separated file paths.
func buildTree(paths []string) *treeNode {
	root := newTreeNode("")
	for _, p := range paths {
		parts := strings.Split(p, "/")
		cur := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			child, ok := cur.children[part]
			if !ok {
				child = newTreeNode(part)
				cur.children[part] = child
			}
			if i == len(parts)-1 {
				child.isFile = true
			}
			cur = child
		}
	}
	return root
}

// RenderTree renders paths as an indented directory tree, directories first,
// both sorted by name. maxDepth limits nesting (0 = top level only). Each
// directory shows at most a fixed number of children, followed by a
// "… N more" line.
func RenderTree(paths []string, maxDepth int) string {
	var b strings.Builder
	renderTree(&b, buildTree(paths), "", 0, maxDepth)
	return b.String()
}

func renderTree(b *strings.Builder, node *treeNode, indent string, depth, maxDepth int) {
	if maxDepth >= 0 && depth > maxDepth {
		return
	}

	var dirs, files []string
	for _, name := range sortedChildren(node) {
		child := node.children[name]
		if child.isFile && len(child.children) == 0 {
			files = append(files, name)
		} else {
			dirs = append(dirs, name)
		}
	}

	shown := 0
	for _, name := range dirs {
		if shown == maxTreeEntries {
			break
		}
		shown++
		b.WriteString(indent)
		b.WriteString(name)
		b.WriteString("/\n")
		renderTree(b, node.children[name], indent+"  ", depth+1, maxDepth)
	}
	for _, name := range files {
		if shown == maxTreeEntries {
			break
		}
		shown++
		b.WriteString(indent)
		b.WriteString(name)
		b.WriteString("\n")
	}
	if rest := len(dirs) + len(files) - shown; rest > 0 {
		fmt.Fprintf(b, "%s… %d more\n", indent, rest)
	}
}

// sortedChildren returns the child names in sorted order for deterministic output.
func sortedChildren(node *treeNode) []string {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
