package catalog

import (
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
	IsSlice   bool
	IsMap     bool
}

// FieldCache memoizes the exported fields of struct types
type FieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewFieldCache() *FieldCache {
	return &FieldCache{
		fields: make(map[reflect.Type][]FieldInfo),
	}
}

// Fields returns the exported fields of t; non-struct types have none
func (c *FieldCache) Fields(t reflect.Type) []FieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
				IsStruct:  fieldType.Kind() == reflect.Struct,
				IsSlice:   fieldType.Kind() == reflect.Slice,
				IsMap:     fieldType.Kind() == reflect.Map,
			})
		}
	}

	c.fields[t] = fields
	return fields
}

// Fields is the shared cache used by the inspector windows
var Fields = NewFieldCache()

// SetField writes value into field index of the struct component points to.
// value is converted to the field's kind: int64 for signed, uint64 for
// unsigned, float64 for floats, bool and string as is. It reports whether the
// field was written.
func SetField(component any, index int, value any) bool {
	v := reflect.ValueOf(component)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return false
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct || index < 0 || index >= v.NumField() {
		return false
	}

	field := v.Field(index)
	if !field.CanSet() {
		return false
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := value.(int64)
		if !ok || field.OverflowInt(n) {
			return false
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := value.(uint64)
		if !ok || field.OverflowUint(n) {
			return false
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, ok := value.(float64)
		if !ok {
			return false
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return false
		}
		field.SetBool(b)
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return false
		}
		field.SetString(s)
	default:
		return false
	}
	return true
}
