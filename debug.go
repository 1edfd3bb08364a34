package entity

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	ireflect "github.com/danpasecinic/entity/internal/reflect"
)

// Plan describes how a target is built: which callable runs and the ordered
// parameters it is given.
type Plan struct {
	Target    string
	Callable  string
	Separator string
	Params    []ParamInfo
}

type ParamInfo struct {
	Name     string
	Type     string
	Kind     string
	Optional bool
}

const (
	KindPrimitive   = "primitive"
	KindValueObject = "value object"
)

// Describe returns the plan ByConstructor follows for T.
func Describe[T any](b *Builder) (Plan, error) {
	c, err := b.constructorFor(ireflect.TypeOf[T]())
	if err != nil {
		return Plan{}, err
	}
	return b.plan(c), nil
}

// DescribeFactory returns the plan ByStaticConstructor follows for T and name.
func DescribeFactory[T any](b *Builder, name string) (Plan, error) {
	key := ireflect.TypeKey[T]()
	c, ok := b.factories.Get(factoryKey(key, name))
	if !ok {
		return Plan{}, errFactoryNotFound(key, name)
	}
	return b.plan(c), nil
}

func (b *Builder) plan(c *callable) Plan {
	p := Plan{
		Target:    c.target,
		Callable:  c.name,
		Separator: b.config.separator,
		Params:    make([]ParamInfo, len(c.params)),
	}

	for i, param := range c.params {
		kind := KindPrimitive
		if b.isValueObject(param.typ) {
			kind = KindValueObject
		}
		if isOptionalType(param.typ) && b.isValueObject(optionalElem(param.typ)) {
			kind = KindValueObject
		}

		p.Params[i] = ParamInfo{
			Name:     param.name,
			Type:     param.typ.String(),
			Kind:     kind,
			Optional: param.optional,
		}
	}

	return p
}

// Keys lists the record keys the plan reads under prefix.
func (p Plan) Keys(prefix string) []string {
	keys := make([]string, len(p.Params))
	for i, param := range p.Params {
		keys[i] = param.Name
		if prefix != "" {
			keys[i] = prefix + p.Separator + param.Name
		}
	}
	return keys
}

func (p Plan) Print() {
	p.Fprint(os.Stdout)
}

func (p Plan) Fprint(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s via %s\n", escapeLabel(p.Target), p.Callable)

	if len(p.Params) == 0 {
		_, _ = fmt.Fprintln(w, "(no parameters)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Parameter", "Type", "Kind", "Optional"})

	for i, param := range p.Params {
		optional := ""
		if param.Optional {
			optional = "yes"
		}
		t.AppendRow(table.Row{i + 1, param.Name, param.Type, param.Kind, optional})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
}

func (p Plan) Sprint() string {
	var sb strings.Builder
	p.Fprint(&sb)
	return sb.String()
}

func escapeLabel(s string) string {
	prefix := ""
	for strings.HasPrefix(s, "*") {
		prefix += "*"
		s = s[1:]
	}
	if idx := strings.LastIndex(s, "/"); idx != -1 {
		s = s[idx+1:]
	}
	return prefix + s
}
