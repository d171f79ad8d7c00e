package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	str "lookalike/internal/platform/strings"
	"lookalike/internal/services/dedupe/domain"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// render writes v in the selected format; text falls back to the given printer
func render(w io.Writer, v any, text func(io.Writer)) error {
	switch rootFlags.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		node, err := yamlNode(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	}
	text(w)
	return nil
}

// yamlNode goes through JSON so yaml output keeps the json field names and
// reason codes, then drops the flow styles the JSON parse leaves behind
func yamlNode(v any) (*yaml.Node, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	var plain func(n *yaml.Node)
	plain = func(n *yaml.Node) {
		n.Style = 0
		for _, c := range n.Content {
			plain(c)
		}
	}
	plain(&doc)
	return &doc, nil
}

func describe(m domain.Match) string {
	parts := []string{m.ID}
	if n := str.Deref(m.FullName); n != "" {
		parts = append(parts, n)
	}
	if p := str.Deref(m.PhoneNumber); p != "" {
		parts = append(parts, p)
	}
	if e := str.Deref(m.Email); e != "" {
		parts = append(parts, e)
	}
	return strings.Join(parts, "  ")
}

func printMatches(w io.Writer, res domain.CheckResult) {
	if res.Status != domain.StatusOK {
		fmt.Fprintf(w, "%s\n", yellow("check "+res.Status))
		return
	}
	if len(res.Matches) == 0 {
		fmt.Fprintf(w, "%s\n", green("no likely duplicates"))
		return
	}
	fmt.Fprintf(w, "%s\n", cyan(fmt.Sprintf("%d likely duplicate(s)", len(res.Matches))))
	for _, m := range res.Matches {
		fmt.Fprintf(w, "  %.2f  %s\n", m.Similarity, describe(m))
		fmt.Fprintf(w, "        %s\n", gray(strings.Join(m.Labels, ", ")))
	}
}

func printAnalysis(w io.Writer, res domain.AnalyzeResult) {
	for i, c := range res.Clusters {
		fmt.Fprintf(w, "%s %s\n", cyan(fmt.Sprintf("cluster %d", i+1)), gray(fmt.Sprintf("(%.2f)", c.Similarity)))
		for j, m := range c.Members {
			marker := "  dup   "
			if j == 0 {
				marker = "  anchor"
			}
			fmt.Fprintf(w, "%s %s\n", marker, describe(m))
		}
		labels := make([]string, 0, len(c.Reasons))
		for _, r := range c.Reasons {
			labels = append(labels, r.String())
		}
		fmt.Fprintf(w, "         %s\n", gray(strings.Join(labels, ", ")))
	}
	fmt.Fprintf(w, "%s\n", green(fmt.Sprintf("%d cluster(s), %d duplicate(s), %d of %d records processed",
		len(res.Clusters), res.TotalDuplicates, res.ProcessedCount, res.RecordCount)))
}
