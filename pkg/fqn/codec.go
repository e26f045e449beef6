/*

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fqn

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// MaxEncodedElements is the largest Fqn that can be encoded.
const MaxEncodedElements = math.MaxInt16

var (
	_ msgpack.CustomEncoder = Fqn[string]{}
	_ msgpack.CustomDecoder = (*Fqn[string])(nil)
)

const nilTypeName = "nil"

var (
	elementTypesMux sync.RWMutex
	elementTypes    = map[string]reflect.Type{}
)

func init() {
	for _, v := range []any{
		"", false,
		int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0),
		float32(0), float64(0),
	} {
		RegisterElementType(v)
	}
}

// RegisterElementType records the dynamic type of value so that Fqns with an
// interface element type, such as Fqn[any], can decode elements of that type.
// Built-in string, bool and numeric types are registered already. Values of
// a registered type must survive msgpack, so structs need exported fields.
func RegisterElementType(value any) {
	t := reflect.TypeOf(value)
	elementTypesMux.Lock()
	defer elementTypesMux.Unlock()
	elementTypes[typeName(t)] = t
}

func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

func registeredType(name string) (reflect.Type, bool) {
	elementTypesMux.RLock()
	defer elementTypesMux.RUnlock()
	t, ok := elementTypes[name]
	return t, ok
}

func isInterface[E any]() bool {
	return reflect.TypeFor[E]().Kind() == reflect.Interface
}

// encodeTyped writes e as a [type name, value] pair.
func encodeTyped(enc *msgpack.Encoder, e any) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if e == nil {
		if err := enc.EncodeString(nilTypeName); err != nil {
			return err
		}
		return enc.EncodeNil()
	}
	name := typeName(reflect.TypeOf(e))
	if _, ok := registeredType(name); !ok {
		return fmt.Errorf("%w: element type %s is not registered", ErrInvalidArgument, name)
	}
	if err := enc.EncodeString(name); err != nil {
		return err
	}
	return enc.Encode(e)
}

func decodeTyped[E comparable](dec *msgpack.Decoder) (E, error) {
	var zero E
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return zero, err
	}
	if n != 2 {
		return zero, fmt.Errorf("%w: typed element has %d fields, want 2", ErrInvalidArgument, n)
	}
	name, err := dec.DecodeString()
	if err != nil {
		return zero, err
	}
	if name == nilTypeName {
		return zero, dec.DecodeNil()
	}
	t, ok := registeredType(name)
	if !ok {
		return zero, fmt.Errorf("%w: element type %s is not registered", ErrInvalidArgument, name)
	}
	v := reflect.New(t).Elem()
	if err := dec.DecodeValue(v); err != nil {
		return zero, err
	}
	e, ok := v.Interface().(E)
	if !ok {
		return zero, fmt.Errorf("%w: element type %s does not implement %s", ErrInvalidArgument, name, reflect.TypeFor[E]())
	}
	return e, nil
}

// EncodeMsgpack writes the element count as a msgpack uint16 followed by each
// element. When E is an interface type each element is written with the name
// of its dynamic type, which must be registered with RegisterElementType.
func (f Fqn[E]) EncodeMsgpack(enc *msgpack.Encoder) error {
	elements := f.elements()
	if len(elements) > MaxEncodedElements {
		return fmt.Errorf("%w: %d elements, limit is %d", ErrOverflow, len(elements), MaxEncodedElements)
	}
	if err := enc.EncodeUint16(uint16(len(elements))); err != nil {
		return err
	}
	typed := isInterface[E]()
	for _, e := range elements {
		var err error
		if typed {
			err = encodeTyped(enc, any(e))
		} else {
			err = enc.Encode(e)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack reads an Fqn written by EncodeMsgpack into f.
func (f *Fqn[E]) DecodeMsgpack(dec *msgpack.Decoder) error {
	size, err := dec.DecodeUint64()
	if err != nil {
		return err
	}
	if size > MaxEncodedElements {
		return fmt.Errorf("%w: %d elements, limit is %d", ErrOverflow, size, MaxEncodedElements)
	}
	typed := isInterface[E]()
	elements := make([]E, size)
	for i := range elements {
		if typed {
			elements[i], err = decodeTyped[E](dec)
		} else {
			err = dec.Decode(&elements[i])
		}
		if err != nil {
			return err
		}
	}
	*f = newFqn(elements)
	return nil
}

// Encode writes f to w. Errors from w are returned as they are.
func (f Fqn[E]) Encode(w io.Writer) error {
	return f.EncodeMsgpack(msgpack.NewEncoder(w))
}

// Decode reads an Fqn written by Encode. Unless r is an io.ByteScanner the
// decoder buffers r and may read past the end of the Fqn.
func Decode[E comparable](r io.Reader) (Fqn[E], error) {
	var f Fqn[E]
	if err := f.DecodeMsgpack(msgpack.NewDecoder(r)); err != nil {
		return Fqn[E]{}, err
	}
	return f, nil
}
