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
	"cmp"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	hashSeed       = 19
	hashMultiplier = 31
	// degenerateHash stands in for a computed hash of zero, which marks an
	// unset hash cell.
	degenerateHash = 0xDEADBEEF
)

// elementString returns strings as they are and formats anything else.
func elementString[E comparable](e E) string {
	if s, ok := any(e).(string); ok {
		return s
	}
	return fmt.Sprint(e)
}

func hashElements[E comparable](elements []E) uint64 {
	var h uint64 = hashSeed
	for _, e := range elements {
		h = hashMultiplier*h + elementHash(e)
	}
	if h == 0 {
		h = degenerateHash
	}
	return h
}

// elementHash must agree with ==: equal elements hash the same.
func elementHash[E comparable](e E) uint64 {
	switch v := any(e).(type) {
	case nil:
		return 0
	case string:
		return xxhash.Sum64String(v)
	case bool:
		if v {
			return 1
		}
		return 2
	case int:
		return uint64(v)
	case int8:
		return uint64(v)
	case int16:
		return uint64(v)
	case int32:
		return uint64(v)
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case float32:
		return floatBits(float64(v))
	case float64:
		return floatBits(v)
	default:
		return hashValue(reflect.ValueOf(v))
	}
}

// floatBits hashes -0 and +0 alike since they are ==.
func floatBits(f float64) uint64 {
	if f == 0 {
		f = 0
	}
	return math.Float64bits(f)
}

// hashValue hashes the comparable kinds the type switch in elementHash does
// not name: named basic types, pointers and channels by identity, arrays and
// structs field by field.
func hashValue(v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.String:
		return xxhash.Sum64String(v.String())
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 2
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return floatBits(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return hashMultiplier*floatBits(real(c)) + floatBits(imag(c))
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return uint64(v.Pointer())
	case reflect.Interface:
		if v.IsNil() {
			return 0
		}
		return hashValue(v.Elem())
	case reflect.Array:
		var h uint64 = hashSeed
		for i := range v.Len() {
			h = hashMultiplier*h + hashValue(v.Index(i))
		}
		return h
	case reflect.Struct:
		var h uint64 = hashSeed
		t := v.Type()
		for i := range v.NumField() {
			// blank fields take no part in ==
			if t.Field(i).Name == "_" {
				continue
			}
			h = hashMultiplier*h + hashValue(v.Field(i))
		}
		return h
	}
	// invalid, or a kind that == rejects
	return 0
}

// compareElements orders elements of different dynamic types by type, nil
// first. Within one type it uses the natural order when there is one, then
// a Compare method, then the string forms. Unequal elements never compare
// as 0.
func compareElements[E comparable](a, b E) int {
	if a == b {
		return 0
	}
	if c := compareTypes(reflect.TypeOf(a), reflect.TypeOf(b)); c != 0 {
		return c
	}
	if c, ok := compareOrdered(any(a), any(b)); ok && c != 0 {
		return c
	}
	if x, ok := any(a).(interface{ Compare(E) int }); ok {
		if c := x.Compare(b); c != 0 {
			return c
		}
	}
	if c := strings.Compare(elementString(a), elementString(b)); c != 0 {
		return c
	}
	return strings.Compare(fmt.Sprintf("%#v", a), fmt.Sprintf("%#v", b))
}

func compareTypes(a, b reflect.Type) int {
	switch {
	case a == b:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := strings.Compare(a.String(), b.String()); c != 0 {
		return c
	}
	return strings.Compare(a.PkgPath(), b.PkgPath())
}

func compareOrdered(a, b any) (int, bool) {
	switch x := a.(type) {
	case string:
		return compareAs(x, b)
	case int:
		return compareAs(x, b)
	case int8:
		return compareAs(x, b)
	case int16:
		return compareAs(x, b)
	case int32:
		return compareAs(x, b)
	case int64:
		return compareAs(x, b)
	case uint:
		return compareAs(x, b)
	case uint8:
		return compareAs(x, b)
	case uint16:
		return compareAs(x, b)
	case uint32:
		return compareAs(x, b)
	case uint64:
		return compareAs(x, b)
	case float32:
		return compareAs(x, b)
	case float64:
		return compareAs(x, b)
	case bool:
		y, ok := b.(bool)
		if !ok || x == y {
			return 0, ok
		}
		if x {
			return 1, true
		}
		return -1, true
	}
	return 0, false
}

func compareAs[T cmp.Ordered](x T, b any) (int, bool) {
	y, ok := b.(T)
	if !ok {
		return 0, false
	}
	return cmp.Compare(x, y), true
}
