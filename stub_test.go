package entity_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/danpasecinic/entity"
)

type ModelID struct {
	v int
}

func ModelIDFromPrimitive(v int) ModelID {
	return ModelID{v: v}
}

func (id ModelID) Int() int {
	return id.v
}

func (id ModelID) EqualsTo(other ModelID) bool {
	return id.v == other.v
}

type ModelAddress struct {
	city   string
	street string
}

func NewModelAddress(city, street string) *ModelAddress {
	return &ModelAddress{city: city, street: street}
}

func (a *ModelAddress) City() string {
	return a.city
}

func (a *ModelAddress) Street() string {
	return a.street
}

type Model struct {
	id                  ModelID
	primitiveID         int
	primitiveString     string
	nullablePrimitiveID *int
	nullableAddress     *ModelAddress
}

func NewModel(
	id ModelID, primitiveID int, primitiveString string, nullablePrimitiveID *int, nullableAddress *ModelAddress,
) *Model {
	return &Model{
		id:                  id,
		primitiveID:         primitiveID,
		primitiveString:     primitiveString,
		nullablePrimitiveID: nullablePrimitiveID,
		nullableAddress:     nullableAddress,
	}
}

func CreateModel(id ModelID, primitiveID int, primitiveString string) *Model {
	return NewModel(id, primitiveID, primitiveString, nil, nil)
}

func (m *Model) ID() ModelID                    { return m.id }
func (m *Model) PrimitiveID() int               { return m.primitiveID }
func (m *Model) PrimitiveString() string        { return m.primitiveString }
func (m *Model) NullablePrimitiveID() *int      { return m.nullablePrimitiveID }
func (m *Model) NullableAddress() *ModelAddress { return m.nullableAddress }

var modelParams = []string{
	"id", "primitive_id", "primitive_string", "nullable_primitive_id", "nullable_address",
}

// Address is built as a struct literal.
type Address struct {
	City   string
	Street string
	Zip    *string
	Note   string `entity:",optional"`
	Cache  string `entity:"-"`
}

// Email implements ValueObject instead of registering a factory.
type Email struct {
	local  string
	domain string
}

var errInvalidEmail = errors.New("invalid email")

func (e *Email) FromPrimitive(raw any) error {
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%w: %T is not a string", errInvalidEmail, raw)
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" || domain == "" {
		return fmt.Errorf("%w: %q", errInvalidEmail, s)
	}
	e.local, e.domain = local, domain
	return nil
}

func (e Email) String() string {
	return e.local + "@" + e.domain
}

// Contact is coerced through Email.
type Contact struct {
	email Email
}

func NewContact(e Email) Contact {
	return Contact{email: e}
}

func newModelBuilder(t testing.TB, opts ...entity.Option) *entity.Builder {
	t.Helper()

	b := entity.New(opts...)
	if err := entity.RegisterValueObject[ModelID](b, ModelIDFromPrimitive); err != nil {
		t.Fatalf("RegisterValueObject failed: %v", err)
	}
	if err := entity.RegisterConstructor[*Model](b, NewModel, modelParams...); err != nil {
		t.Fatalf("RegisterConstructor failed: %v", err)
	}
	if err := entity.RegisterFactory[*Model](
		b, "create", CreateModel, "id", "primitive_id", "primitive_string",
	); err != nil {
		t.Fatalf("RegisterFactory failed: %v", err)
	}
	if err := entity.RegisterConstructor[*ModelAddress](b, NewModelAddress, "city", "street"); err != nil {
		t.Fatalf("RegisterConstructor failed: %v", err)
	}
	return b
}
