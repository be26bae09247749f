// Command taggle reads tag-soup HTML and re-serializes it as well-formed
// XML, driving a Parser with a ContentHandler/LexicalHandler that prints
// the SAX event stream instead of building a tree, the streaming
// counterpart to the teacher's GenericNode.PrintXML/PrintXMLPretty.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/taggle-go/taggle"
)

func main() {
	pretty := flag.Bool("pretty", true, "indent nested elements")
	ignoreBogons := flag.Bool("ignore-bogons", false, "drop unrecognised elements instead of registering them")
	noNamespaces := flag.Bool("no-namespaces", false, "disable namespace processing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	in := os.Stdin
	name := ""
	if flag.NArg() > 0 {
		name = flag.Arg(0)
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, "taggle:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	ser := newSerializer(out, *pretty)
	p := taggle.NewParser(
		taggle.WithContentHandler(ser),
		taggle.WithLexicalHandler(ser),
		taggle.WithErrorHandler(ser),
		taggle.WithFeature(taggle.FeatureIgnoreBogons, *ignoreBogons),
		taggle.WithFeature(taggle.FeatureNamespaces, !*noNamespaces),
	)

	if err := p.Parse(bufio.NewReader(in), name, name); err != nil {
		out.Flush()
		fmt.Fprintln(os.Stderr, "taggle:", err)
		os.Exit(1)
	}
}
