package shape_test

import (
	"fmt"
	"reflect"
	"time"

	"beanpath/shape"
)

func Example() {
	type Status string
	type Person struct{ Name string }

	fmt.Println(shape.Of(reflect.TypeFor[int]()))
	fmt.Println(shape.Of(reflect.TypeFor[Status]()))
	fmt.Println(shape.Of(reflect.TypeFor[time.Time]()))
	fmt.Println(shape.Of(reflect.TypeFor[time.Duration]()))
	fmt.Println(shape.Of(reflect.TypeFor[Person]()))
	fmt.Println(shape.Of(reflect.TypeFor[**Person]()))
	fmt.Println(shape.Of(reflect.TypeFor[[]Person]()))
	fmt.Println(shape.Of(reflect.TypeFor[[4]byte]()))
	fmt.Println(shape.Of(reflect.TypeFor[map[string]int]()))
	fmt.Println(shape.Of(reflect.TypeFor[chan int]()))
	fmt.Println(shape.Of(nil))
	// Output:
	// Leaf
	// Leaf
	// Leaf
	// Leaf
	// Bean
	// Bean
	// List
	// Array
	// Map
	// Opaque
	// Unknown
}

func ExampleEnum_IsBase() {
	fmt.Println(shape.Bean.IsBase(), shape.List.IsBase(), shape.Map.IsBase())
	fmt.Println(shape.Leaf.IsBase(), shape.Opaque.IsBase(), shape.Unknown.IsBase())
	// Output:
	// true true true
	// false false false
}

func ExampleOfValue() {
	var v any = map[string]any{}
	fmt.Println(shape.OfValue(reflect.ValueOf(&v).Elem()))

	var nothing any
	fmt.Println(shape.OfValue(reflect.ValueOf(&nothing).Elem()))
	// Output:
	// Map
	// Opaque
}
