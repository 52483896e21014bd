package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HoloTheDrunk/eray/eraylang"
)

var astCmd = &cobra.Command{
	Use:   "ast <file.eray>",
	Short: "Dump the parse tree of a shader graph file",
	Long:  "Parse an .eray file and print its syntax tree, without resolving or validating it. Useful when debugging grammar issues in node files.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAst,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAst(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading shader file: %w", err)
	}

	file, err := eraylang.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	printFile(os.Stdout, file)
	return nil
}

func printFile(w *os.File, file *eraylang.File) {
	fmt.Fprintln(w, "signature")
	for _, v := range file.Signature.Inputs {
		fmt.Fprintf(w, "  input %s: %s\n", v.Name, v.Type)
	}
	for _, v := range file.Signature.Outputs {
		if v.Name == "" {
			fmt.Fprintf(w, "  output (unnamed): %s\n", v.Type)
			continue
		}
		fmt.Fprintf(w, "  output %s: %s\n", v.Name, v.Type)
	}

	for _, imp := range file.Imports {
		fmt.Fprintf(w, "import %s = %s\n", imp.Alias, imp.Target)
		for _, v := range imp.Signature.Inputs {
			fmt.Fprintf(w, "  input %s: %s\n", v.Name, v.Type)
		}
		for _, v := range imp.Signature.Outputs {
			fmt.Fprintf(w, "  output %s: %s\n", v.Name, v.Type)
		}
	}

	for _, node := range file.Nodes {
		marker := ""
		if node.Custom {
			marker = "$"
		}
		fmt.Fprintf(w, "node %s: %s%s\n", node.Name, marker, node.Type)
	}

	for _, link := range file.Links {
		fmt.Fprintf(w, "link %s -> %s\n", linkSource(link), link.Target)
	}
}

func linkSource(link eraylang.LinkDecl) string {
	if link.Expr == nil {
		return link.Source.String()
	}
	e := link.Expr
	var inner string
	if e.Literal != nil {
		parts := make([]string, len(e.Literal.Values))
		for i, v := range e.Literal.Values {
			parts[i] = fmt.Sprintf("%g", v)
		}
		inner = strings.Join(parts, ", ")
	} else {
		inner = e.Field.String()
	}
	s := fmt.Sprintf("%s(%s)", e.Constructor, inner)
	for _, t := range e.Trailing {
		s += "." + t
	}
	return s
}
