package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"MiniShop/internal/apperr"
)

var ErrNoItems = errors.New("catalog: document has no items list")

const nullTag = "!!null"

type fileDoc struct {
	Items yaml.Node `yaml:"items"`
}

// ReadFile parses a catalog definition of the form
//
//	items:
//	  - name: Widget
//	    price: 9.99
//	    description: A widget
//	    stock: 4
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) ([]Record, error) {
	var doc fileDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoItems
		}
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if doc.Items.Kind != yaml.SequenceNode {
		return nil, ErrNoItems
	}

	out := make([]Record, 0, len(doc.Items.Content))
	for i, n := range doc.Items.Content {
		rec, err := parseRecord(i, n)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRecord(i int, n *yaml.Node) (Record, error) {
	if n.Kind != yaml.MappingNode {
		return Record{}, apperr.InvalidRecord(i, "record is not a mapping")
	}

	fields := make(map[string]*yaml.Node, 4)
	for k := 0; k+1 < len(n.Content); k += 2 {
		fields[strings.ToLower(n.Content[k].Value)] = deref(n.Content[k+1])
	}

	for _, key := range []string{"name", "price", "description", "stock"} {
		v, ok := fields[key]
		if !ok || v.Kind != yaml.ScalarNode {
			return Record{}, apperr.InvalidRecord(i, "missing "+key)
		}
		if v.Tag == nullTag && key != "description" {
			return Record{}, apperr.InvalidRecord(i, "missing "+key)
		}
	}

	desc := fields["description"].Value
	if fields["description"].Tag == nullTag {
		desc = ""
	}

	price, err := decimal.NewFromString(fields["price"].Value)
	if err != nil {
		return Record{}, apperr.InvalidRecord(i, "price is not a number")
	}
	stock, err := strconv.Atoi(fields["stock"].Value)
	if err != nil {
		return Record{}, apperr.InvalidRecord(i, "stock is not an integer")
	}

	return Record{
		Name:        fields["name"].Value,
		Price:       price,
		Description: desc,
		Stock:       stock,
	}, nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
