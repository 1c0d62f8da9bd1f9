package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/heathj/goxml/parser"
	"github.com/heathj/goxml/parser/spec"
)

func main() {
	var (
		tabSize   = flag.Int("tabsize", 4, "tab stop for row/column reporting; 0 disables")
		keepSpace = flag.Bool("keep-space", false, "preserve whitespace in text nodes")
		pathExpr  = flag.String("path", "", "print elements matching a path query instead of the whole tree")
		indent    = flag.Bool("indent", false, "pretty-print with indentation")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	doc, err := load(flag.Arg(0), *tabSize, !*keepSpace)
	if err != nil {
		d := doc
		if d != nil && d.Document.Error() {
			logrus.WithFields(logrus.Fields{
				"code": int(d.Document.ErrorID()),
				"row":  d.Document.ErrorRow(),
				"col":  d.Document.ErrorCol(),
			}).Error(d.Document.ErrorDesc())
		} else {
			logrus.Error(err)
		}
		os.Exit(1)
	}

	if *pathExpr != "" {
		p, err := spec.CompilePath(*pathExpr)
		if err != nil {
			logrus.Error(errors.Wrapf(err, "compiling %q", *pathExpr))
			os.Exit(1)
		}
		for _, e := range doc.FindElementsPath(p) {
			fmt.Println(e.String())
		}
		return
	}

	if *indent {
		if err := doc.WriteIndented(os.Stdout); err != nil {
			logrus.Error(err)
			os.Exit(1)
		}
		return
	}
	if err := doc.WriteTo(os.Stdout); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
	fmt.Println()
}

func load(path string, tabSize int, condense bool) (*spec.Node, error) {
	opts := []parser.Option{
		parser.WithTabSize(tabSize),
		parser.WithCondenseWhiteSpace(condense),
	}
	if path == "" || path == "-" {
		return parser.ParseReader(os.Stdin, opts...)
	}
	return parser.LoadFile(path, opts...)
}
