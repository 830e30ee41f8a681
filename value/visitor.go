package value

// Visitor receives the contents of a single value. Exactly one method is
// called per visit. Composite methods receive the children as [Value]s and
// recurse by calling [Value.Serialize] on them with a visitor of their own.
type Visitor interface {
	VisitNull() error
	VisitBool(b bool) error
	VisitNumber(n float64) error
	VisitString(s string) error
	VisitSequence(items []Value) error
	VisitMapping(fields map[string]Value) error
}

// Serializer is implemented by anything that can describe itself to a
// [Visitor]. It is the only capability the environment requires of the
// values it stores.
type Serializer interface {
	Serialize(vis Visitor) error
}

// Materialize visits s and returns the [Value] it describes.
func Materialize(s Serializer) (Value, error) {
	if s == nil {
		return Null(), nil
	}

	if v, ok := s.(Value); ok {
		return v, nil
	}

	var b builder

	err := s.Serialize(&b)
	if err != nil {
		return Null(), err
	}

	return b.out, nil
}

// builder is a Visitor that records what it was shown.
type builder struct{ out Value }

func (b *builder) VisitNull() error { b.out = Null(); return nil }

func (b *builder) VisitBool(v bool) error { b.out = Bool(v); return nil }

func (b *builder) VisitNumber(n float64) error { b.out = Number(n); return nil }

func (b *builder) VisitString(s string) error { b.out = String(s); return nil }

func (b *builder) VisitSequence(items []Value) error {
	b.out = Sequence(items...)

	return nil
}

func (b *builder) VisitMapping(fields map[string]Value) error {
	b.out = Mapping(fields)

	return nil
}
