package reader

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is a numbered hyperlink found while converting a document.
type Link struct {
	Index int
	Text  string
	URL   string
}

// converter turns an HTML fragment into markdown, numbering links as it
// goes. Relative hrefs are resolved against base when it is set.
type converter struct {
	base  *url.URL
	links []Link
}

var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "blockquote": true, "pre": true, "hr": true, "table": true,
	"div": true, "article": true, "section": true, "main": true, "header": true,
	"footer": true, "figure": true, "figcaption": true, "body": true, "html": true,
}

// toMarkdown converts an HTML document or fragment.
func toMarkdown(html string, base *url.URL) (string, []Link, error) {
	c := &converter{base: base}
	md, err := c.convert(html)
	if err != nil {
		return "", nil, err
	}
	return md, c.links, nil
}

// convert converts one fragment. Link numbering carries on from earlier
// calls on the same converter.
func (c *converter) convert(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}
	return strings.TrimSpace(c.blocks(doc.Find("body"), 0)) + "\n", nil
}

// blocks converts the children of s. Runs of inline content between
// block elements become paragraphs, which is how comment bodies arrive.
func (c *converter) blocks(s *goquery.Selection, depth int) string {
	var out, run strings.Builder
	flush := func() {
		if text := strings.TrimSpace(run.String()); text != "" {
			out.WriteString(text + "\n\n")
		}
		run.Reset()
	}

	s.Contents().Each(func(_ int, n *goquery.Selection) {
		if blockTags[goquery.NodeName(n)] {
			flush()
			out.WriteString(c.block(n, depth))
			return
		}
		c.inline(n, &run)
	})
	flush()
	return out.String()
}

func (c *converter) block(s *goquery.Selection, depth int) string {
	tag := goquery.NodeName(s)
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return ""
		}
		return strings.Repeat("#", int(tag[1]-'0')) + " " + text + "\n\n"
	case "p":
		var sb strings.Builder
		c.inlineChildren(s, &sb)
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text + "\n\n"
		}
		return ""
	case "ul", "ol":
		return c.list(s, tag == "ol", depth) + "\n"
	case "blockquote":
		var sb strings.Builder
		for _, line := range strings.Split(strings.TrimSpace(c.blocks(s, 0)), "\n") {
			sb.WriteString("> " + line + "\n")
		}
		return sb.String() + "\n"
	case "pre":
		return c.codeBlock(s)
	case "hr":
		return "---\n\n"
	case "table":
		return c.table(s)
	case "figcaption":
		if text := strings.TrimSpace(s.Text()); text != "" {
			return "*" + text + "*\n\n"
		}
		return ""
	}
	return c.blocks(s, depth)
}

func (c *converter) inlineChildren(s *goquery.Selection, sb *strings.Builder) {
	s.Contents().Each(func(_ int, n *goquery.Selection) {
		c.inline(n, sb)
	})
}

func (c *converter) inline(n *goquery.Selection, sb *strings.Builder) {
	switch goquery.NodeName(n) {
	case "#text":
		sb.WriteString(n.Text())
	case "a":
		sb.WriteString(c.link(n))
	case "strong", "b":
		sb.WriteString("**")
		c.inlineChildren(n, sb)
		sb.WriteString("**")
	case "em", "i":
		sb.WriteString("*")
		c.inlineChildren(n, sb)
		sb.WriteString("*")
	case "code":
		sb.WriteString("`" + n.Text() + "`")
	case "br":
		sb.WriteString("  \n")
	case "img":
		alt, _ := n.Attr("alt")
		if alt == "" {
			alt = "image"
		}
		src, _ := n.Attr("src")
		fmt.Fprintf(sb, "![%s](%s)", alt, c.resolve(src))
	case "script", "style", "#comment":
	default:
		c.inlineChildren(n, sb)
	}
}

func (c *converter) link(s *goquery.Selection) string {
	href, _ := s.Attr("href")
	href = c.resolve(href)
	text := strings.TrimSpace(s.Text())
	if text == "" {
		text = href
	}
	if href == "" {
		return text
	}

	idx := len(c.links) + 1
	c.links = append(c.links, Link{Index: idx, Text: text, URL: href})
	return fmt.Sprintf("[%s](%s) **[%d]**", text, href, idx)
}

func (c *converter) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || c.base == nil {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return c.base.ResolveReference(u).String()
}

func (c *converter) list(s *goquery.Selection, ordered bool, depth int) string {
	var sb strings.Builder
	indent := strings.Repeat("  ", depth)

	s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", i+1)
		}

		var item strings.Builder
		li.Contents().Each(func(_ int, n *goquery.Selection) {
			if tag := goquery.NodeName(n); tag != "ul" && tag != "ol" {
				c.inline(n, &item)
			}
		})
		sb.WriteString(indent + marker + strings.TrimSpace(item.String()) + "\n")

		li.ChildrenFiltered("ul, ol").Each(func(_ int, nested *goquery.Selection) {
			sb.WriteString(c.list(nested, goquery.NodeName(nested) == "ol", depth+1))
		})
	})
	return sb.String()
}

func (c *converter) codeBlock(s *goquery.Selection) string {
	code := s.Find("code").First()
	lang := ""
	text := s.Text()
	if code.Length() > 0 {
		text = code.Text()
		class, _ := code.Attr("class")
		if _, after, ok := strings.Cut(class, "language-"); ok {
			if f := strings.Fields(after); len(f) > 0 {
				lang = f[0]
			}
		}
	}
	return "```" + lang + "\n" + strings.TrimRight(text, "\n") + "\n```\n\n"
}

func (c *converter) table(s *goquery.Selection) string {
	var rows [][]string
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	if len(rows) == 0 {
		return ""
	}

	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}

	var sb strings.Builder
	writeRow := func(r []string) {
		for len(r) < cols {
			r = append(r, "")
		}
		sb.WriteString("| " + strings.Join(r, " | ") + " |\n")
	}
	writeRow(rows[0])
	writeRow(strings.Split(strings.Repeat("---,", cols-1)+"---", ","))
	for _, r := range rows[1:] {
		writeRow(r)
	}
	return sb.String() + "\n"
}
