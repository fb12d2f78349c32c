package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/branched-services/go-abikit"
	"github.com/spf13/cobra"
)

// itemFlags select one item out of a multi-item ABI.
type itemFlags struct {
	kind string
	id   string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "", `Item kind to pick from an ABI: "function", "event", "error" or "constructor"`)
	cmd.Flags().StringVar(&f.id, "id", "", `Name, canonical signature, selector or topic of the ABI item`)
}

// resolve reads a signature or ABI JSON. A source starting with "@" names a
// file to read it from.
func (f *itemFlags) resolve(source string) (abikit.Item, error) {
	if path, ok := strings.CutPrefix(source, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		source = string(data)
	}

	if f.kind == "" && f.id == "" {
		return abikit.Parse(source)
	}

	kind := abikit.KindFunction
	if f.kind != "" {
		k, ok := abikit.ParseKind(f.kind)
		if !ok || k == abikit.KindTuple {
			return nil, fmt.Errorf("unknown item kind %q", f.kind)
		}
		kind = k
	}
	item, found, err := abikit.LookupABI([]byte(source), kind, f.id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s %q", abikit.ErrNotFound, kind, f.id)
	}
	return item, nil
}
