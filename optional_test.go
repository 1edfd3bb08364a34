package entity_test

import (
	"testing"

	"github.com/danpasecinic/entity"
)

type Profile struct {
	Name  string
	Nick  entity.Optional[string]
	Owner entity.Optional[ModelID]
}

func TestOptionalAbsent(t *testing.T) {
	t.Parallel()

	b := entity.New()
	if err := entity.RegisterValueObject[ModelID](b, ModelIDFromPrimitive); err != nil {
		t.Fatalf("RegisterValueObject failed: %v", err)
	}

	p, err := entity.ByConstructor[Profile](b, map[string]any{"name": "neo"})
	if err != nil {
		t.Fatalf("ByConstructor failed: %v", err)
	}

	if p.Nick.Present() {
		t.Error("expected nick to be absent")
	}
	if p.Owner.Present() {
		t.Error("expected owner to be absent")
	}
	if got := p.Nick.OrElse("anonymous"); got != "anonymous" {
		t.Errorf("expected default nick, got %q", got)
	}
}

func TestOptionalPresent(t *testing.T) {
	t.Parallel()

	b := entity.New()
	if err := entity.RegisterValueObject[ModelID](b, ModelIDFromPrimitive); err != nil {
		t.Fatalf("RegisterValueObject failed: %v", err)
	}

	p, err := entity.ByConstructor[Profile](b, map[string]any{"name": "neo", "nick": "the one", "owner": 7})
	if err != nil {
		t.Fatalf("ByConstructor failed: %v", err)
	}

	nick, ok := p.Nick.Get()
	if !ok || nick != "the one" {
		t.Errorf("expected nick %q, got %q (present=%v)", "the one", nick, ok)
	}

	owner, ok := p.Owner.Get()
	if !ok || !owner.EqualsTo(ModelIDFromPrimitive(7)) {
		t.Errorf("expected owner 7, got %d (present=%v)", owner.Int(), ok)
	}
}

func TestOptionalConstructorParameter(t *testing.T) {
	t.Parallel()

	type Greeting struct {
		Text string
	}

	b := entity.New()
	err := entity.RegisterConstructor[Greeting](
		b, func(name string, title entity.Optional[string]) Greeting {
			return Greeting{Text: title.OrElseFunc(func() string { return "Mx." }) + " " + name}
		}, "name", "title",
	)
	if err != nil {
		t.Fatalf("RegisterConstructor failed: %v", err)
	}

	g, err := entity.ByConstructor[Greeting](b, map[string]any{"name": "Anderson"})
	if err != nil {
		t.Fatalf("ByConstructor failed: %v", err)
	}
	if g.Text != "Mx. Anderson" {
		t.Errorf("unexpected greeting %q", g.Text)
	}

	g, err = entity.ByConstructor[Greeting](b, map[string]any{"name": "Anderson", "title": "Mr."})
	if err != nil {
		t.Fatalf("ByConstructor failed: %v", err)
	}
	if g.Text != "Mr. Anderson" {
		t.Errorf("unexpected greeting %q", g.Text)
	}
}

func TestOptionalHelpers(t *testing.T) {
	t.Parallel()

	some := entity.Some(3)
	if v, ok := some.Get(); !ok || v != 3 {
		t.Errorf("Some(3).Get() = %d, %v", v, ok)
	}
	if some.Value() != 3 {
		t.Errorf("Some(3).Value() = %d", some.Value())
	}

	none := entity.None[int]()
	if none.Present() {
		t.Error("None should not be present")
	}
	if none.OrElse(9) != 9 {
		t.Error("None.OrElse should return the default")
	}
}
