package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/term"

	"github.com/doubleforge/entity-doubles/backend"
	"github.com/doubleforge/entity-doubles/capability"
	"github.com/doubleforge/entity-doubles/definition"
	"github.com/doubleforge/entity-doubles/factory"
)

// pairList collects repeatable name=value flags in order.
type pairList struct {
	pairs [][2]string
}

func (p *pairList) String() string {
	var parts []string
	for _, kv := range p.pairs {
		parts = append(parts, kv[0]+"="+kv[1])
	}
	return strings.Join(parts, ",")
}

func (p *pairList) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	p.pairs = append(p.pairs, [2]string{name, value})
	return nil
}

func main() {
	var (
		entityType  = flag.String("type", "node", "Entity type id")
		bundle      = flag.String("bundle", "", "Bundle (defaults to the entity type)")
		id          = flag.String("id", "", "Entity id")
		label       = flag.String("label", "", "Entity label")
		caps        = flag.String("caps", capability.Fieldable, "Requested capabilities (comma-separated)")
		backendName = flag.String("backend", "proxy", "Backend: proxy or adapter")
		mutable     = flag.Bool("mutable", false, "Construct a mutable double")
		lenient     = flag.Bool("lenient", false, "Return neutral nil instead of guardrail errors")
		list        = flag.Bool("list", false, "List wired methods and exit")
		call        = flag.String("call", "", "Method to call")
		callArgs    = flag.String("args", "", "Call arguments (comma-separated)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	var fields, overrides pairList
	flag.Var(&fields, "field", "Field value (name=value, repeatable)")
	flag.Var(&overrides, "override", "Method override (name=value, repeatable)")
	flag.Parse()

	d, def, err := build(*entityType, *bundle, *id, *label, *caps, *backendName,
		*mutable, *lenient, fields, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(d); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := inspect(d, def, *list, *call, *callArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func build(entityType, bundle, id, label, caps, backendName string,
	mutable, lenient bool, fields, overrides pairList) (*backend.Double, *definition.Entity, error) {

	var b backend.Backend
	switch backendName {
	case "proxy":
		b = backend.NewProxy()
	case "adapter":
		b = backend.NewAdapter()
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (proxy or adapter)", backendName)
	}

	db := definition.NewBuilder(entityType)
	if bundle != "" {
		db.Bundle(bundle)
	}
	if id != "" {
		db.ID(parseScalar(id))
	}
	if label != "" {
		db.Label(label)
	}
	if caps != "" {
		db.Interfaces(strings.Split(caps, ",")...)
	}
	for _, kv := range fields.pairs {
		db.Field(kv[0], parseScalar(kv[1]))
	}
	for _, kv := range overrides.pairs {
		db.Override(kv[0], parseScalar(kv[1]))
	}
	if mutable {
		db.Mutable()
	}
	if lenient {
		db.Lenient()
	}

	def, err := db.Build()
	if err != nil {
		return nil, nil, err
	}
	d, err := factory.New(b).Create(def)
	if err != nil {
		return nil, nil, err
	}
	return d, def, nil
}

func inspect(d *backend.Double, def *definition.Entity, listOnly bool, call, callArgs string) error {
	fmt.Printf("Double: %s (backend: %s)\n", d.EntityType(), d.Backend())
	fmt.Printf("Capabilities: %s\n", strings.Join(d.Capabilities(), ", "))
	if d.Synthesized() != "" {
		fmt.Printf("Synthesized: %s\n", d.Synthesized())
	}

	if names := def.FieldNames(); len(names) > 0 {
		fmt.Printf("\nFields:\n")
		for _, name := range names {
			fl, err := d.Get(name)
			if err != nil {
				return err
			}
			fmt.Printf("  %s = %v\n", name, fl.Value(def.Context()))
		}
	}

	fmt.Printf("\nWired methods:\n")
	for _, m := range d.Methods() {
		fmt.Printf("  %s\n", m)
	}

	if listOnly || call == "" {
		return nil
	}

	var args []any
	if callArgs != "" {
		for _, a := range strings.Split(callArgs, ",") {
			args = append(args, parseScalar(a))
		}
	}

	fmt.Printf("\nCalling %s(%s)...\n", call, callArgs)
	result, err := d.Call(call, args...)
	if err != nil {
		return err
	}
	fmt.Printf("Result: %s", spew.Sdump(result))
	return nil
}

// parseScalar reads a flag value as bool, int, or float before falling back
// to the raw string.
func parseScalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}
