package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RebaseLinks rewrites relative img[src] and a[href] values in an HTML
// fragment written for fromDir so they resolve the same way from pageDir.
// With either directory empty the fragment is returned unchanged.
//
// URLs with a scheme, protocol-relative and absolute paths, and anchors
// are left alone, as is anything that cannot be made relative.
func RebaseLinks(fragment, fromDir, pageDir string) (string, error) {
	if fromDir == "" || pageDir == "" {
		return fragment, nil
	}
	from, err := filepath.Abs(fromDir)
	if err != nil {
		return "", err
	}
	page, err := filepath.Abs(pageDir)
	if err != nil {
		return "", err
	}
	if from == page {
		return fragment, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		rebaseNode(n, from, page)
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func rebaseNode(n *html.Node, from, page string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rebaseAttr(n, "src", from, page)
		case atom.A:
			rebaseAttr(n, "href", from, page)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rebaseNode(c, from, page)
	}
}

func rebaseAttr(n *html.Node, key, from, page string) {
	for i, attr := range n.Attr {
		if attr.Key != key {
			continue
		}
		if rebased, ok := rebaseRef(attr.Val, from, page); ok {
			n.Attr[i].Val = rebased
		}
	}
}

// rebaseRef rebases one reference, keeping its query and fragment.
func rebaseRef(ref, from, page string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" ||
		strings.HasPrefix(u.Path, "/") || filepath.IsAbs(u.Path) {
		return "", false
	}

	target := filepath.Join(from, filepath.FromSlash(u.Path))
	rel, err := filepath.Rel(page, target)
	if err != nil {
		return "", false
	}
	u.Path = filepath.ToSlash(rel)
	return u.String(), true
}
